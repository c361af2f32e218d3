package dto

import "time"

// ==================== 商品列表查询 ====================

// ListProductsRequest 商品列表请求
type ListProductsRequest struct {
	Status   string `form:"status"` // DRAFT, ACTIVE, SOLD, ARCHIVED
	Brand    string `form:"brand"`
	Category string `form:"category"`
	Keyword  string `form:"keyword"` // 搜索：品牌、型号
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// ListProductsResponse 商品列表响应
type ListProductsResponse struct {
	Total int64             `json:"total"`
	List  []ProductListItem `json:"list"`
}

// ==================== 商品详情 ====================

// ProductLinkItem 商品在某平台的关联概要
type ProductLinkItem struct {
	Platform      string     `json:"platform"`
	ExternalID    string     `json:"external_id"`
	ListingStatus string     `json:"listing_status"`
	SyncStatus    string     `json:"sync_status"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
}

// ProductDetail 商品详情（含各平台关联）
type ProductDetail struct {
	ProductListItem

	Description string            `json:"description"`
	InInventory bool              `json:"in_inventory"`
	Links       []ProductLinkItem `json:"links"`
}

// ProductListItem 商品列表项
type ProductListItem struct {
	ID        int64     `json:"id"`
	SKU       string    `json:"sku"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Category  string    `json:"category"`
	BasePrice float64   `json:"base_price"`
	Condition string    `json:"condition"`
	Status    string    `json:"status"`
	Year      *int      `json:"year,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
