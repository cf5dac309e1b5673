package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"ledgerengine/internal/model"
)

// 行级解析错误，携带原因写入诊断日志后该行被丢弃
var (
	ErrTooFewFields  = errors.New("字段数量不足")
	ErrUnknownType   = errors.New("未知事件类型")
	ErrInvalidClient = errors.New("客户ID非法")
	ErrInvalidTx     = errors.New("交易号非法")
	ErrMissingAmount = errors.New("缺少金额")
)

// Reader 事件 CSV 读取器
//
// 输入格式：type,client,tx,amount
// 争议类事件（dispute/resolve/chargeback）的 amount 列为空或省略，
// 各字段允许首尾空白。非法行直接丢弃并记录日志，不中断处理。
type Reader struct {
	csv *csv.Reader
}

// NewReader 创建读取器
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// amount 列可以省略，行字段数不固定
	cr.FieldsPerRecord = -1
	return &Reader{csv: cr}
}

// ReadAll 逐行解析事件并交给 submit 回调，直到输入耗尽
// 返回错误仅代表底层 IO 失败；格式错误的行丢弃后继续
func (r *Reader) ReadAll(submit func(model.Event)) error {
	first := true
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Printf("[CsvReader] 非法行已丢弃: %v", err)
				continue
			}
			return fmt.Errorf("读取输入失败: %w", err)
		}

		// 跳过表头
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "type") {
				continue
			}
		}

		ev, err := parseRecord(record)
		if err != nil {
			log.Printf("[CsvReader] 非法行已丢弃: %v, record=%v", err, record)
			continue
		}

		submit(ev)
	}
}

func parseRecord(record []string) (model.Event, error) {
	if len(record) < 3 {
		return model.Event{}, ErrTooFewFields
	}

	eventType := strings.ToLower(strings.TrimSpace(record[0]))
	if !model.IsValidEventType(eventType) {
		return model.Event{}, fmt.Errorf("%w: %s", ErrUnknownType, eventType)
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %s", ErrInvalidClient, record[1])
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %s", ErrInvalidTx, record[2])
	}

	ev := model.Event{
		Type:   eventType,
		Client: uint16(client),
		Tx:     uint32(tx),
	}

	if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
		amount, err := model.ParseMoney(record[3])
		if err != nil {
			return model.Event{}, fmt.Errorf("解析金额失败: %w", err)
		}
		ev.Amount = amount
		ev.HasAmount = true
	}

	// 存款/取款必须携带金额，缺失视为非法行
	if ev.RequiresAmount() && !ev.HasAmount {
		return model.Event{}, ErrMissingAmount
	}

	return ev, nil
}
