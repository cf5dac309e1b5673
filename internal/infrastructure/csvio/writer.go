package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"ledgerengine/internal/model"
)

// WriteSnapshots 输出全部钱包快照
//
// 格式：client_id,available,held,total,locked
// 金额固定4位小数，locked 输出小写 true/false。
// 行按客户ID升序排列，保证同一输入的输出完全可复现。
func WriteSnapshots(w io.Writer, snapshots map[uint16]model.WalletSnapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client_id", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	clients := make([]uint16, 0, len(snapshots))
	for client := range snapshots {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i] < clients[j] })

	for _, client := range clients {
		s := snapshots[client]
		record := []string{
			strconv.FormatUint(uint64(client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
