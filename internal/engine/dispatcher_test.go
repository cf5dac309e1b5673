package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerengine/internal/config"
	"ledgerengine/internal/model"
)

func testConfig(shardCount int) *config.Config {
	cfg := config.Default()
	cfg.Engine.ShardCount = shardCount
	cfg.Engine.QueueCapacity = 16
	return cfg
}

func runEvents(shardCount int, events []model.Event) map[uint16]model.WalletSnapshot {
	dispatcher := NewDispatcher(testConfig(shardCount))
	for _, ev := range events {
		dispatcher.Submit(ev)
	}
	return dispatcher.Shutdown()
}

// 场景：基本存取款，客户2的超额取款被拒绝
func TestDispatcherBasicTransactions(t *testing.T) {
	snapshots := runEvents(4, []model.Event{
		depositEvent(1, 1, "1.0"),
		depositEvent(2, 2, "2.0"),
		depositEvent(1, 3, "2.0"),
		withdrawalEvent(1, 4, "1.5"),
		withdrawalEvent(2, 5, "3.0"),
	})

	require.Len(t, snapshots, 2)

	assert.Equal(t, mustMoney(t, "1.5"), snapshots[1].Available)
	assert.Equal(t, model.MoneyZero(), snapshots[1].Held)
	assert.Equal(t, mustMoney(t, "1.5"), snapshots[1].Total)
	assert.False(t, snapshots[1].Locked)

	assert.Equal(t, mustMoney(t, "2.0"), snapshots[2].Available)
	assert.Equal(t, model.MoneyZero(), snapshots[2].Held)
	assert.Equal(t, mustMoney(t, "2.0"), snapshots[2].Total)
	assert.False(t, snapshots[2].Locked)
}

// 场景：争议后解除，余额恢复原状
func TestDispatcherDisputeResolve(t *testing.T) {
	snapshots := runEvents(2, []model.Event{
		depositEvent(1, 1, "10.0"),
		disputeEvent(1, 1),
		resolveEvent(1, 1),
	})

	s := snapshots[1]
	assert.Equal(t, mustMoney(t, "10.0"), s.Available)
	assert.Equal(t, model.MoneyZero(), s.Held)
	assert.Equal(t, mustMoney(t, "10.0"), s.Total)
	assert.False(t, s.Locked)
}

// 场景：退单锁定钱包，之后的存款被忽略
func TestDispatcherChargebackLocks(t *testing.T) {
	snapshots := runEvents(2, []model.Event{
		depositEvent(1, 1, "5.0"),
		depositEvent(1, 2, "3.0"),
		disputeEvent(1, 1),
		chargebackEvent(1, 1),
		depositEvent(1, 3, "100.0"),
	})

	s := snapshots[1]
	assert.Equal(t, mustMoney(t, "3.0"), s.Available)
	assert.Equal(t, model.MoneyZero(), s.Held)
	assert.Equal(t, mustMoney(t, "3.0"), s.Total)
	assert.True(t, s.Locked)
}

// 场景：取款争议在退单时整笔冲正
func TestDispatcherWithdrawalChargeback(t *testing.T) {
	snapshots := runEvents(2, []model.Event{
		depositEvent(1, 1, "10.0"),
		withdrawalEvent(1, 2, "4.0"),
		disputeEvent(1, 2),
		chargebackEvent(1, 2),
	})

	s := snapshots[1]
	assert.Equal(t, mustMoney(t, "10.0"), s.Available)
	assert.Equal(t, model.MoneyZero(), s.Held)
	assert.True(t, s.Locked)
}

// 场景：争议不存在的交易号是无效操作
func TestDispatcherDisputeUnknownTx(t *testing.T) {
	snapshots := runEvents(2, []model.Event{
		depositEvent(1, 1, "1.0"),
		disputeEvent(1, 999),
	})

	s := snapshots[1]
	assert.Equal(t, mustMoney(t, "1.0"), s.Available)
	assert.Equal(t, model.MoneyZero(), s.Held)
	assert.False(t, s.Locked)
}

// 场景：客户2争议客户1的交易，账本按钱包隔离，表现为交易不存在
func TestDispatcherClientMismatch(t *testing.T) {
	snapshots := runEvents(4, []model.Event{
		depositEvent(1, 1, "5.0"),
		disputeEvent(2, 1),
	})

	require.Contains(t, snapshots, uint16(1))
	assert.Equal(t, mustMoney(t, "5.0"), snapshots[1].Available)
	assert.False(t, snapshots[1].Locked)

	// 客户2的钱包因首个事件惰性创建，保持零余额
	require.Contains(t, snapshots, uint16(2))
	assert.Equal(t, model.MoneyZero(), snapshots[2].Available)
	assert.Equal(t, model.MoneyZero(), snapshots[2].Held)
}

// 同一客户的事件严格按提交顺序处理
func TestDispatcherPerClientOrdering(t *testing.T) {
	events := make([]model.Event, 0, 101)
	for i := 0; i < 100; i++ {
		events = append(events, depositEvent(1, uint32(i+1), "0.0001"))
	}
	// 恰好取出全部100笔存款，顺序错乱时会因余额不足被拒绝
	events = append(events, withdrawalEvent(1, 200, "0.0100"))

	snapshots := runEvents(4, events)
	assert.Equal(t, model.MoneyZero(), snapshots[1].Available)
}

// 单分片与多分片在同一输入上必须产出完全相同的快照
func TestDispatcherShardCountInvariance(t *testing.T) {
	events := make([]model.Event, 0, 600)
	for client := uint16(1); client <= 50; client++ {
		base := uint32(client) * 100
		events = append(events,
			depositEvent(client, base+1, "10.0"),
			depositEvent(client, base+2, "5.5"),
			withdrawalEvent(client, base+3, "2.25"),
			disputeEvent(client, base+1),
		)
		if client%3 == 0 {
			events = append(events, resolveEvent(client, base+1))
		}
		if client%5 == 0 {
			events = append(events, chargebackEvent(client, base+1))
		}
	}

	single := runEvents(1, events)
	sharded := runEvents(8, events)

	require.Len(t, sharded, len(single))
	for client, want := range single {
		got, exists := sharded[client]
		require.True(t, exists, "client=%d", client)
		assert.Equal(t, want, got, "client=%d", client)
	}
}

// 分片数不整除客户数时依然覆盖全部客户
func TestDispatcherShardAssignment(t *testing.T) {
	events := make([]model.Event, 0, 16)
	for client := uint16(0); client < 16; client++ {
		events = append(events, depositEvent(client, uint32(client)+1, "1.0"))
	}

	snapshots := runEvents(5, events)
	require.Len(t, snapshots, 16)
	for client := uint16(0); client < 16; client++ {
		assert.Equal(t, mustMoney(t, "1.0"), snapshots[client].Available, "client=%d", client)
	}
}

// 快照的 total 恒等于 available + held
func TestDispatcherTotalInvariant(t *testing.T) {
	snapshots := runEvents(4, []model.Event{
		depositEvent(1, 1, "10.0"),
		withdrawalEvent(1, 2, "4.0"),
		disputeEvent(1, 2),
		depositEvent(2, 3, "7.0"),
		disputeEvent(2, 3),
	})

	for client, s := range snapshots {
		assert.Equal(t, s.Available+s.Held, s.Total, "client=%d", client)
	}
}

// 队列容量小于事件数时背压生效，投递方阻塞但不丢事件
func TestDispatcherBackpressure(t *testing.T) {
	cfg := testConfig(2)
	cfg.Engine.QueueCapacity = 1

	dispatcher := NewDispatcher(cfg)
	for i := 0; i < 1000; i++ {
		dispatcher.Submit(depositEvent(uint16(i%10), uint32(i+1), "0.0001"))
	}
	snapshots := dispatcher.Shutdown()

	require.Len(t, snapshots, 10)
	for client, s := range snapshots {
		assert.Equal(t, model.Money(100), s.Available, "client=%d", client)
	}
}

func TestDispatcherDefaultsApplied(t *testing.T) {
	cfg := &config.Config{}

	dispatcher := NewDispatcher(cfg)
	dispatcher.Submit(depositEvent(1, 1, "1.0"))
	snapshots := dispatcher.Shutdown()

	assert.Equal(t, config.DefaultShardCount, dispatcher.shardCount)
	assert.Equal(t, mustMoney(t, "1.0"), snapshots[1].Available)
}

func ExampleDispatcher() {
	cfg := config.Default()
	cfg.Engine.ShardCount = 2

	dispatcher := NewDispatcher(cfg)
	amount, _ := model.ParseMoney("1.5")
	dispatcher.Submit(model.Event{Type: model.EventTypeDeposit, Client: 1, Tx: 1, Amount: amount, HasAmount: true})

	snapshots := dispatcher.Shutdown()
	fmt.Println(snapshots[1].Available)
	// Output: 1.5000
}
