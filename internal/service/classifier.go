package service

import (
	"math"

	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
)

// priceEpsilon 价格比较阈值，差值不超过 1 分钱视为未变
const priceEpsilon = 0.01

// ==================== 变更分类 ====================

// 可更新字段名
const (
	FieldBrand       = "brand"
	FieldDescription = "description"
	FieldPrice       = "price"
)

// FieldUpdate 字段更新
type FieldUpdate struct {
	Field    string
	NewText  string  // brand / description
	NewPrice float64 // price
}

// StatusTransition 状态流转 (active <-> sold)
type StatusTransition struct {
	ToSold bool
}

// StockChange 库存变更
type StockChange struct {
	OldQuantity int
	NewQuantity int
}

// ChangeSet 一行远端数据相对本地状态的变更集合
// 各类变更相互独立、可叠加：同一行常常同时携带价格更新、库存变更和状态翻转。
type ChangeSet struct {
	FieldUpdates []FieldUpdate
	Status       *StatusTransition
	Stock        *StockChange
}

// Empty 是否没有任何变更
func (c ChangeSet) Empty() bool {
	return len(c.FieldUpdates) == 0 && c.Status == nil && c.Stock == nil
}

// Categories 命中的变更类别名，用于报告明细
func (c ChangeSet) Categories() []string {
	var cats []string
	for _, fu := range c.FieldUpdates {
		cats = append(cats, fu.Field)
	}
	if c.Status != nil {
		cats = append(cats, "status")
	}
	if c.Stock != nil {
		cats = append(cats, "stock")
	}
	return cats
}

// ==================== 分类器 ====================

// Classify 对比远端行与本地三元组，产出变更集合
// 纯函数，不做任何持久化；match 为 nil（待新建）的情况由创建路径处理，不走这里。
// 匹配只认外部ID；SKU 二次匹配是创建时防重的窄策略，不参与 diff。
func Classify(row ParsedRow, match *repository.LocalMatch) ChangeSet {
	var cs ChangeSet
	product := match.Product

	// 字段更新：brand / description / price 各自独立比较
	if row.Brand != product.Brand {
		cs.FieldUpdates = append(cs.FieldUpdates, FieldUpdate{Field: FieldBrand, NewText: row.Brand})
	}
	// 远端未提供描述时不视为清空
	if row.Description != "" && row.Description != product.Description {
		cs.FieldUpdates = append(cs.FieldUpdates, FieldUpdate{Field: FieldDescription, NewText: row.Description})
	}
	if math.Abs(row.PriceValue-product.BasePrice) > priceEpsilon {
		cs.FieldUpdates = append(cs.FieldUpdates, FieldUpdate{Field: FieldPrice, NewPrice: row.PriceValue})
	}

	// 状态流转：远端 sold 标记与本地 SOLD 状态不一致时触发
	localSold := product.Status == model.ProductStatusSold
	if row.SoldFlag != localSold {
		cs.Status = &StatusTransition{ToSold: row.SoldFlag}
	}

	// 库存变更：远端提供了数量且与扩展记录不一致时触发
	// 扩展记录缺失按当前数量 0 处理，由应用层补建记录。
	if row.QuantityValue != nil {
		current := 0
		if match.Listing != nil {
			current = match.Listing.InventoryQuantity
		}
		if *row.QuantityValue != current {
			cs.Stock = &StockChange{OldQuantity: current, NewQuantity: *row.QuantityValue}
		}
	}

	return cs
}
