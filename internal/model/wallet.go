package model

// Wallet 客户钱包
// 记录单个客户的可用余额、冻结金额和历史交易账本
//
// 每个钱包在整个运行期间只归属一个 WalletActor，单线程访问，无需加锁
type Wallet struct {
	Client    uint16
	Available Money                         // 可用余额
	Held      Money                         // 冻结金额（争议中的资金）
	Locked    bool                          // 退单后锁定，锁定后拒绝一切事件
	Ledger    map[uint32]*TransactionRecord // 交易号 -> 历史交易
}

// NewWallet 创建空钱包
func NewWallet(client uint16) *Wallet {
	return &Wallet{
		Client: client,
		Ledger: make(map[uint32]*TransactionRecord),
	}
}

// Total 总余额 = 可用 + 冻结，按需计算不单独存储
func (w *Wallet) Total() Money {
	return w.Available + w.Held
}

// WalletSnapshot 运行结束时输出的钱包快照
type WalletSnapshot struct {
	Client    uint16
	Available Money
	Held      Money
	Total     Money
	Locked    bool
}

// Snapshot 生成当前钱包的快照
func (w *Wallet) Snapshot() WalletSnapshot {
	return WalletSnapshot{
		Client:    w.Client,
		Available: w.Available,
		Held:      w.Held,
		Total:     w.Total(),
		Locked:    w.Locked,
	}
}
