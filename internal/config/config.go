package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 引擎默认参数
const (
	DefaultShardCount    = 8
	DefaultQueueCapacity = 128
)

// Config 全局配置结构
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
	Log    LogConfig    `mapstructure:"log"`
}

type EngineConfig struct {
	ShardCount    int  `mapstructure:"shard_count"`    // 分片数量，同一客户永远命中同一分片
	QueueCapacity int  `mapstructure:"queue_capacity"` // 单分片队列容量，队列满时投递方阻塞
	StrictDispute bool `mapstructure:"strict_dispute"` // 存款争议把可用余额打成负数时是否拒绝
}

type LogConfig struct {
	Rejections bool `mapstructure:"rejections"` // 是否打印被拒绝事件的诊断日志
}

var GlobalConfig *Config

// LoadConfig 加载配置文件
// configPath 为空时跳过文件读取，全部使用默认值
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("engine.shard_count", DefaultShardCount)
	v.SetDefault("engine.queue_capacity", DefaultQueueCapacity)
	v.SetDefault("engine.strict_dispute", false)
	v.SetDefault("log.rejections", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	GlobalConfig = config
	return config, nil
}

// Default 全默认值配置
func Default() *Config {
	config, _ := LoadConfig("")
	return config
}
