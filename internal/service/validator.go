package service

import (
	"strconv"
	"strings"

	"vr_sync_v1_202608/pkg/vr"
)

// V&R 导出中 sold 标记只接受这两个词，区分大小写
const (
	soldFlagYes = "yes"
	soldFlagNo  = "no"
)

// ==================== 行校验 ====================

// ValidateRow 校验一行远端数据
// 所有规则独立检查、逐条累积（不短路），让运营一次就能看全某行的全部问题。
// defects 非空则该行整体排除出变更流程；warnings 只记录不拦截
// （目前仅分类路径缺少层级分隔符一种，该行仍会以整串作为分类继续处理）。
func ValidateRow(row vr.ListingRow) (defects []string, warnings []string) {
	// 必填字段
	if row.ExternalID == "" {
		defects = append(defects, "missing required field: vr_listing_id")
	}
	if row.Brand == "" {
		defects = append(defects, "missing required field: brand_name")
	}
	if row.Price == "" {
		defects = append(defects, "missing required field: price")
	} else if price, err := strconv.ParseFloat(row.Price, 64); err != nil {
		defects = append(defects, "invalid price format")
	} else if price < 0 {
		defects = append(defects, "invalid price: must be non-negative")
	}

	// sold 标记
	if row.Sold != soldFlagYes && row.Sold != soldFlagNo {
		defects = append(defects, "invalid status value")
	}

	// 分类路径
	if row.CategoryPath != "" && !strings.Contains(row.CategoryPath, vr.CategoryDelimiter) {
		warnings = append(warnings, "category path missing hierarchy delimiter")
	}

	// 库存数量：列存在但该行为空，按严格策略判为缺陷（见 DESIGN.md）
	if row.Quantity != nil {
		if *row.Quantity == "" {
			defects = append(defects, "missing inventory quantity")
		} else if qty, err := strconv.Atoi(*row.Quantity); err != nil {
			defects = append(defects, "invalid inventory quantity format")
		} else if qty < 0 {
			defects = append(defects, "invalid inventory quantity: must be non-negative")
		}
	}

	return defects, warnings
}

// ==================== 解析后的行 ====================

// ParsedRow 校验通过后解析好的行
// QuantityValue 为 nil 表示远端没有提供库存数量。
type ParsedRow struct {
	vr.ListingRow

	PriceValue    float64
	SoldFlag      bool // true = 已售出
	QuantityValue *int
}

// parseRow 把通过校验的行解析为强类型，只允许对 defects 为空的行调用
func parseRow(row vr.ListingRow) ParsedRow {
	parsed := ParsedRow{ListingRow: row}
	parsed.PriceValue, _ = strconv.ParseFloat(row.Price, 64)
	parsed.SoldFlag = row.Sold == soldFlagYes
	if row.Quantity != nil && *row.Quantity != "" {
		if qty, err := strconv.Atoi(*row.Quantity); err == nil {
			parsed.QuantityValue = &qty
		}
	}
	return parsed
}
