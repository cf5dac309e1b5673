package model

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 定点金额
// ============================================================================
//
// 【为什么不用浮点数？】
//
// 浮点数无法精确表示十进制小数（比如 0.1 + 0.2 != 0.3），
// 资金计算一旦出现精度误差就无法对账。
//
// 【表示方式】
//
//   内部以 int64 存储，单位为万分之一（即金额 × 10^4）：
//     1.5    -> 15000
//     0.0001 -> 1
//
//   所有加减运算都做溢出检查，溢出时返回错误、金额保持不变。
//
// ============================================================================

// moneyScale 小数位数，固定为 4 位
const moneyScale = 4

var (
	ErrAmountParse     = errors.New("金额格式非法")
	ErrAmountPrecision = errors.New("金额小数位数超过4位")
	ErrAmountOverflow  = errors.New("金额溢出")
)

// 解析时的取值范围校验（以万分之一为单位）
var (
	maxMoneyUnits = decimal.NewFromInt(math.MaxInt64)
	minMoneyUnits = decimal.NewFromInt(math.MinInt64)
)

// Money 定点金额，单位为万分之一
type Money int64

// MoneyZero 零金额
func MoneyZero() Money {
	return 0
}

// ParseMoney 解析十进制金额字符串
//
// 允许可选正负号、整数部分、最多4位小数；首尾空白会被去除。
// 超过4位小数、科学计数法、空串都视为非法。
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrAmountParse
	}
	// decimal 能解析科学计数法，这里显式排除
	if strings.ContainsAny(s, "eE") {
		return 0, ErrAmountParse
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrAmountParse
	}

	if d.Exponent() < -moneyScale {
		return 0, ErrAmountPrecision
	}

	units := d.Shift(moneyScale)
	if units.Cmp(maxMoneyUnits) > 0 || units.Cmp(minMoneyUnits) < 0 {
		return 0, ErrAmountOverflow
	}

	return Money(units.IntPart()), nil
}

// CheckedAdd 带溢出检查的加法
func (m Money) CheckedAdd(other Money) (Money, error) {
	sum := m + other
	if (other > 0 && sum < m) || (other < 0 && sum > m) {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}

// CheckedSub 带溢出检查的减法
func (m Money) CheckedSub(other Money) (Money, error) {
	diff := m - other
	if (other > 0 && diff > m) || (other < 0 && diff < m) {
		return 0, ErrAmountOverflow
	}
	return diff, nil
}

// IsNegative 是否为负数
func (m Money) IsNegative() bool {
	return m < 0
}

// IsZero 是否为零
func (m Money) IsZero() bool {
	return m == 0
}

// String 格式化为固定4位小数，负数带前导负号
// 例如 15000 -> "1.5000"
func (m Money) String() string {
	return decimal.New(int64(m), -moneyScale).StringFixed(moneyScale)
}
