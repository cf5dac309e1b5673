package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ledgerengine/internal/config"
	"ledgerengine/internal/engine"
	"ledgerengine/internal/infrastructure/csvio"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（可选，不指定时使用默认配置）")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config config.yaml] <input_file.csv>\n", os.Args[0])
		os.Exit(1)
	}

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 打开输入文件
	inputFile, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("打开输入文件失败: %v", err)
	}
	defer inputFile.Close()

	// 启动分片引擎并消费输入流
	dispatcher := engine.NewDispatcher(cfg)

	reader := csvio.NewReader(inputFile)
	if err := reader.ReadAll(dispatcher.Submit); err != nil {
		log.Fatalf("读取输入失败: %v", err)
	}

	// 输入耗尽后收敛全部分片，输出最终快照
	snapshots := dispatcher.Shutdown()

	if err := csvio.WriteSnapshots(os.Stdout, snapshots); err != nil {
		log.Fatalf("输出结果失败: %v", err)
	}
}
