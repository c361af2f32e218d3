package model

import "time"

// StockUpdateEvent 库存变更事件
// 每检测并应用一次真实库存增减，同步引擎就发出一条该事件（每行每轮最多一次）。
// Timestamp 为检测时刻的 UTC 时间。
type StockUpdateEvent struct {
	ProductID   int64     `json:"product_id"`
	Platform    string    `json:"platform"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Timestamp   time.Time `json:"timestamp"`
}

// Delta 本次变更的带符号库存差值
func (e StockUpdateEvent) Delta() int {
	return e.NewQuantity - e.OldQuantity
}
