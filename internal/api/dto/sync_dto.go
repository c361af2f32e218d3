package dto

// ==================== 同步报告 ====================

// UpdatedStats 更新类计数
// 同一行可以同时命中 price/status/stock 多个子计数，但 Total 只加一次。
type UpdatedStats struct {
	Price  int `json:"price"`
	Status int `json:"status"`
	Stock  int `json:"stock"`
	Total  int `json:"total"`
}

// UpdatedDetail 更新明细
type UpdatedDetail struct {
	SKU        string   `json:"sku"`
	ExternalID string   `json:"external_id"`
	Changes    []string `json:"changes"` // price / status / stock / brand / description
}

// RowError 行级错误明细
type RowError struct {
	ExternalID string `json:"external_id"`
	Error      string `json:"error"`
}

// SyncDetails 同步明细
type SyncDetails struct {
	Created []string        `json:"created"` // 新建商品的 SKU
	Updated []UpdatedDetail `json:"updated"`
	Errors  []RowError      `json:"errors"`
}

// SyncReport 一轮同步的统计报告
// 这是行级问题唯一的对外通道；整轮致命错误走 error 返回值，不进计数。
type SyncReport struct {
	Created           int          `json:"created"`
	Updated           UpdatedStats `json:"updated"`
	Errors            int          `json:"errors"`
	Unchanged         int          `json:"unchanged"`
	InvalidRows       int          `json:"invalid_rows"`
	ProductsProcessed int          `json:"products_processed"`
	Details           SyncDetails  `json:"details"`
}
