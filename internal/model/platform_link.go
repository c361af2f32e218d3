package model

import "time"

// ==================== 枚举定义 ====================

// SyncStatus 平台同步状态
type SyncStatus string

const (
	SyncStatusPending    SyncStatus = "PENDING"
	SyncStatusInProgress SyncStatus = "IN_PROGRESS"
	SyncStatusSynced     SyncStatus = "SYNCED"
	SyncStatusOutOfSync  SyncStatus = "OUT_OF_SYNC"
	SyncStatusError      SyncStatus = "ERROR"
)

// 支持的平台名称
const (
	PlatformVR      = "vintageandrare"
	PlatformEbay    = "ebay"
	PlatformShopify = "shopify"
)

// ==================== PlatformLink 平台关联 ====================

// PlatformLink 商品与平台的关联记录，每个 (商品, 平台) 一行
// 约束：(platform_name, external_id) 唯一
// 同步引擎只在本轮确实应用了字段/状态/库存变更时才刷新 SyncStatus 和 LastSyncAt，
// 无变更的行完全不动（不标 OUT_OF_SYNC），这是刻意的策略而非疏漏。
type PlatformLink struct {
	BaseModel

	// --- 关联 ---
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"foreignKey:ProductID"`

	// --- 平台身份 ---
	PlatformName string `gorm:"size:50;not null;uniqueIndex:idx_platform_external"`
	ExternalID   string `gorm:"size:100;not null;uniqueIndex:idx_platform_external"` // 平台侧主键

	// --- 状态 ---
	ListingStatus string     `gorm:"size:30"` // 平台词汇的上架状态 (active/sold/...)
	SyncStatus    SyncStatus `gorm:"size:20;index;default:'PENDING'"`
	LastSyncAt    *time.Time `gorm:"default:null"`
}

func (PlatformLink) TableName() string {
	return "platform_links"
}
