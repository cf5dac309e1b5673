package engine

import (
	"log"

	"ledgerengine/internal/model"
)

// WalletActor 钱包执行器
// 独占一个客户分片内的所有钱包，从有界队列中按 FIFO 顺序串行消费事件
//
// 队列是唯一的同步原语：actor 内部单线程处理，钱包不需要任何锁。
// 队列满时投递方阻塞，形成背压。
type WalletActor struct {
	id            int
	machine       *StateMachine
	wallets       map[uint16]*model.Wallet
	events        chan model.Event
	result        chan map[uint16]model.WalletSnapshot
	logRejections bool
}

// NewWalletActor 创建钱包执行器
func NewWalletActor(id int, machine *StateMachine, queueCapacity int, logRejections bool) *WalletActor {
	return &WalletActor{
		id:            id,
		machine:       machine,
		wallets:       make(map[uint16]*model.Wallet),
		events:        make(chan model.Event, queueCapacity),
		result:        make(chan map[uint16]model.WalletSnapshot, 1),
		logRejections: logRejections,
	}
}

// Start 启动事件循环
func (a *WalletActor) Start() {
	go a.run()
}

func (a *WalletActor) run() {
	for ev := range a.events {
		a.handleEvent(ev)
	}

	// 队列关闭后输出全部钱包快照并退出
	snapshots := make(map[uint16]model.WalletSnapshot, len(a.wallets))
	for client, wallet := range a.wallets {
		snapshots[client] = wallet.Snapshot()
	}
	a.result <- snapshots
}

func (a *WalletActor) handleEvent(ev model.Event) {
	wallet, exists := a.wallets[ev.Client]
	if !exists {
		// 首个事件到达时惰性创建钱包
		wallet = model.NewWallet(ev.Client)
		a.wallets[ev.Client] = wallet
	}

	if err := a.machine.Apply(wallet, ev); err != nil && a.logRejections {
		log.Printf("[WalletActor-%d] 事件被拒绝: type=%s, client=%d, tx=%d, 原因=%v",
			a.id, ev.Type, ev.Client, ev.Tx, err)
	}
}

// Submit 投递事件，队列满时阻塞
func (a *WalletActor) Submit(ev model.Event) {
	a.events <- ev
}

// Flush 关闭队列，等待 actor 处理完剩余事件后返回其全部钱包快照
// 只能调用一次，且调用后不允许再 Submit
func (a *WalletActor) Flush() map[uint16]model.WalletSnapshot {
	close(a.events)
	return <-a.result
}
