package engine

import (
	"ledgerengine/internal/config"
	"ledgerengine/internal/model"
)

// Dispatcher 事件分发器
// 按客户ID把事件路由到固定分片，并在结束时汇总全部分片的钱包快照
//
// 【为什么分片？】
//
// 同一客户的事件永远命中同一个 WalletActor，由单线程按输入顺序处理，
// 这保证了单客户串行一致性；不同客户的钱包相互独立，跨客户顺序无意义，
// 因此整个引擎不需要任何锁就能并发处理多客户负载。
type Dispatcher struct {
	shardCount int
	actors     []*WalletActor
}

// NewDispatcher 创建分发器并启动全部分片 actor
func NewDispatcher(cfg *config.Config) *Dispatcher {
	shardCount := cfg.Engine.ShardCount
	if shardCount <= 0 {
		shardCount = config.DefaultShardCount
	}
	queueCapacity := cfg.Engine.QueueCapacity
	if queueCapacity <= 0 {
		queueCapacity = config.DefaultQueueCapacity
	}

	// 状态机无内部状态，所有分片共用一个实例
	machine := NewStateMachine(cfg.Engine.StrictDispute)

	actors := make([]*WalletActor, 0, shardCount)
	for i := 0; i < shardCount; i++ {
		actor := NewWalletActor(i, machine, queueCapacity, cfg.Log.Rejections)
		actor.Start()
		actors = append(actors, actor)
	}

	return &Dispatcher{
		shardCount: shardCount,
		actors:     actors,
	}
}

// Submit 把事件投递到所属分片，队列满时阻塞
// 分片函数固定为 client mod shardCount，同一客户永远命中同一分片
func (d *Dispatcher) Submit(ev model.Event) {
	shard := int(ev.Client) % d.shardCount
	d.actors[shard].Submit(ev)
}

// Shutdown 通知全部 actor 结束并合并各分片的钱包快照
// 各分片的客户集合互不相交，合并不会冲突；快照只在本方法返回后可见
func (d *Dispatcher) Shutdown() map[uint16]model.WalletSnapshot {
	merged := make(map[uint16]model.WalletSnapshot)
	for _, actor := range d.actors {
		for client, snapshot := range actor.Flush() {
			merged[client] = snapshot
		}
	}
	return merged
}
