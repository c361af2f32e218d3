package model

import (
	"gorm.io/datatypes"
)

// V&R 平台侧状态字符串
const (
	VRStateActive = "active"
	VRStateSold   = "sold"
)

// ==================== VRListing V&R 扩展记录 ====================

// VRListing Vintage & Rare 平台特有字段，每个 PlatformLink 恰好拥有一条
// InventoryQuantity 是该平台可售件数的唯一事实来源，库存事件的增减都以它为基准。
// 校验通过后 InventoryQuantity 恒为非负整数。
type VRListing struct {
	BaseModel

	// --- 关联 ---
	LinkID int64         `gorm:"index;not null"`
	Link   *PlatformLink `gorm:"foreignKey:LinkID"`

	// --- V&R 身份（冗余 Link.ExternalID，便于直查） ---
	VRListingID string `gorm:"size:100;index"`

	// --- 库存与状态 ---
	InventoryQuantity int    `gorm:"default:0"`
	VRState           string `gorm:"size:30"` // active / sold

	// --- 平台附加属性（年份、成色标签等自由键值） ---
	ExtendedAttributes datatypes.JSONMap `gorm:"type:jsonb"`
}

func (VRListing) TableName() string {
	return "vr_listings"
}
