package model

import (
	"github.com/lib/pq"
)

// ==================== 枚举定义 ====================

// ProductStatus 商品生命周期状态
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusSold     ProductStatus = "SOLD"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// ProductCondition 商品成色
type ProductCondition string

const (
	ConditionNew       ProductCondition = "NEW"
	ConditionExcellent ProductCondition = "EXCELLENT"
	ConditionVeryGood  ProductCondition = "VERY_GOOD"
	ConditionGood      ProductCondition = "GOOD"
	ConditionFair      ProductCondition = "FAIR"
	ConditionPoor      ProductCondition = "POOR"
)

// ==================== Product 商品主档 ====================

// Product 平台无关的商品主档
// 同步引擎只驱动 ACTIVE -> SOLD 一种状态流转，其余状态（DRAFT/ARCHIVED）由人工维护。
// 同步引擎永不删除商品，下架/归档是独立流程。
type Product struct {
	BaseModel

	// --- 身份字段 ---
	SKU string `gorm:"size:100;uniqueIndex;not null"` // 全局唯一 SKU

	// --- 基本信息 ---
	Brand       string `gorm:"size:100;index"`
	Model       string `gorm:"size:150"`
	Category    string `gorm:"size:100;index"`
	Description string `gorm:"type:text"`

	// --- 价格与成色 ---
	BasePrice float64          `gorm:"default:0"` // 基准价（币种隐含）
	Condition ProductCondition `gorm:"size:20;default:'VERY_GOOD'"`

	// --- 状态与库存标记 ---
	Status      ProductStatus `gorm:"size:20;index;default:'ACTIVE'"`
	Year        *int          `gorm:"default:null"`
	InInventory bool          `gorm:"default:true"`

	// --- 标签类数据 (Postgres Array) ---
	Tags pq.StringArray `gorm:"type:text[]"`

	// --- 关联关系 ---
	Links []PlatformLink `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}
