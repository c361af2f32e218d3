package vr

import (
	"encoding/csv"
	"io"
	"strings"
)

// CategoryDelimiter V&R 分类路径的层级分隔符
const CategoryDelimiter = "/"

// ==================== ListingRow 规范化行 ====================

// ListingRow 远端库存快照中的一行，已从 V&R 原生列名规范化
// 下游的校验/分类/应用逻辑只认这个形状，不关心平台原生字段名。
//
// Quantity 用指针区分三种情况：
//   - nil        导出文件里根本没有库存列
//   - 指向 ""    有库存列但该行为空（present-but-null）
//   - 指向非空串 正常取值，待解析
type ListingRow struct {
	ExternalID   string // V&R 平台侧主键 (vr_listing_id)
	SKU          string
	Brand        string
	Model        string
	CategoryPath string // 带层级分隔符的分类路径
	Price        string // 原始字符串，解析留给校验层
	Sold         string // "yes" / "no"
	Quantity     *string
	Description  string
	Year         string
	Condition    string
}

// ==================== 列名映射 ====================

// columnAliases V&R 导出列名 -> 规范字段
// 同一字段在不同版本的导出文件里出现过多种写法，这里统一收口。
var columnAliases = map[string]string{
	"product id":          "vr_listing_id",
	"product_id":          "vr_listing_id",
	"vr_listing_id":       "vr_listing_id",
	"sku":                 "sku",
	"external id":         "sku",
	"external_id":         "sku",
	"brand name":          "brand_name",
	"brand_name":          "brand_name",
	"brand":               "brand_name",
	"product model name":  "model",
	"model":               "model",
	"category name":       "category_name",
	"category_name":       "category_name",
	"category":            "category_name",
	"product price":       "price",
	"price":               "price",
	"product sold":        "product_sold",
	"product_sold":        "product_sold",
	"product in stock":    "inventory_quantity",
	"inventory_quantity":  "inventory_quantity",
	"quantity":            "inventory_quantity",
	"product description": "description",
	"description":         "description",
	"product year":        "year",
	"year":                "year",
	"product condition":   "condition",
	"condition":           "condition",
}

// ==================== CSV 解析 ====================

// ParseInventoryCSV 解析 V&R 库存导出并规范化为 ListingRow 序列
// 空文件（只有表头或连表头都没有）返回空切片，由编排器判定为致命。
func ParseInventoryCSV(r io.Reader) ([]ListingRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 导出文件偶见列数不齐的行，宽容读取

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []ListingRow{}, nil
	}

	// 表头规范化
	header := records[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[key]; ok {
			colIndex[canonical] = i
		}
	}
	_, hasQuantityCol := colIndex["inventory_quantity"]

	get := func(record []string, field string) string {
		idx, ok := colIndex[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rows := make([]ListingRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := ListingRow{
			ExternalID:   get(record, "vr_listing_id"),
			SKU:          get(record, "sku"),
			Brand:        get(record, "brand_name"),
			Model:        get(record, "model"),
			CategoryPath: get(record, "category_name"),
			Price:        get(record, "price"),
			Sold:         get(record, "product_sold"),
			Description:  get(record, "description"),
			Year:         get(record, "year"),
			Condition:    get(record, "condition"),
		}
		if hasQuantityCol {
			qty := get(record, "inventory_quantity")
			row.Quantity = &qty
		}
		rows = append(rows, row)
	}
	return rows, nil
}
