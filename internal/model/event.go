package model

// ============================================================================
// 输入事件类型常量
// ============================================================================

const (
	EventTypeDeposit    = "deposit"    // 存款
	EventTypeWithdrawal = "withdrawal" // 取款
	EventTypeDispute    = "dispute"    // 发起争议
	EventTypeResolve    = "resolve"    // 争议解除
	EventTypeChargeback = "chargeback" // 争议退单
)

var validEventTypes = map[string]bool{
	EventTypeDeposit:    true,
	EventTypeWithdrawal: true,
	EventTypeDispute:    true,
	EventTypeResolve:    true,
	EventTypeChargeback: true,
}

// IsValidEventType 事件类型是否合法
func IsValidEventType(eventType string) bool {
	return validEventTypes[eventType]
}

// Event 输入事件，构造后不再修改
//
// Amount 仅对存款/取款有意义，HasAmount 标记输入中是否给出了金额（该列省略或为空时为 false）
type Event struct {
	Type      string
	Client    uint16
	Tx        uint32
	Amount    Money
	HasAmount bool
}

// RequiresAmount 该事件类型是否必须携带金额
func (e Event) RequiresAmount() bool {
	return e.Type == EventTypeDeposit || e.Type == EventTypeWithdrawal
}
