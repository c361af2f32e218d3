package vr

import (
	"strings"
	"testing"
)

func TestParseInventoryCSV_NormalizesNativeColumns(t *testing.T) {
	// V&R 原生列名（带空格、大小写混用）
	data := `Product ID,Brand Name,Product Model Name,Category Name,Product Price,Product Sold,Product In Stock,Product Year,Product Condition,SKU
12345,Fender,Telecaster,Guitars/Electric solid body,1500.00,no,2,1965,excellent,X-1
`

	rows, err := ParseInventoryCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("行数 = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.ExternalID != "12345" {
		t.Errorf("external_id = %s, want 12345", row.ExternalID)
	}
	if row.Brand != "Fender" {
		t.Errorf("brand = %s, want Fender", row.Brand)
	}
	if row.Model != "Telecaster" {
		t.Errorf("model = %s, want Telecaster", row.Model)
	}
	if row.CategoryPath != "Guitars/Electric solid body" {
		t.Errorf("category = %s", row.CategoryPath)
	}
	if row.Price != "1500.00" {
		t.Errorf("price = %s, want 1500.00", row.Price)
	}
	if row.Sold != "no" {
		t.Errorf("sold = %s, want no", row.Sold)
	}
	if row.Quantity == nil || *row.Quantity != "2" {
		t.Errorf("quantity = %v, want 2", row.Quantity)
	}
	if row.Year != "1965" {
		t.Errorf("year = %s, want 1965", row.Year)
	}
	if row.Condition != "excellent" {
		t.Errorf("condition = %s, want excellent", row.Condition)
	}
	if row.SKU != "X-1" {
		t.Errorf("sku = %s, want X-1", row.SKU)
	}
}

func TestParseInventoryCSV_QuantityColumnAbsentVsNull(t *testing.T) {
	// 有库存列但某行为空：指针指向空串
	withCol := `product id,brand name,product price,product sold,product in stock
1,Fender,1500,no,
2,Gibson,2400,no,3
`
	rows, err := ParseInventoryCSV(strings.NewReader(withCol))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if rows[0].Quantity == nil || *rows[0].Quantity != "" {
		t.Errorf("空值单元格应解析为指向空串的指针, got %v", rows[0].Quantity)
	}
	if rows[1].Quantity == nil || *rows[1].Quantity != "3" {
		t.Errorf("quantity = %v, want 3", rows[1].Quantity)
	}

	// 整列缺失：指针为 nil
	withoutCol := `product id,brand name,product price,product sold
1,Fender,1500,no
`
	rows, err = ParseInventoryCSV(strings.NewReader(withoutCol))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if rows[0].Quantity != nil {
		t.Errorf("列不存在时 Quantity 应为 nil, got %v", rows[0].Quantity)
	}
}

func TestParseInventoryCSV_HeaderOnlyReturnsEmpty(t *testing.T) {
	rows, err := ParseInventoryCSV(strings.NewReader("product id,brand name,price\n"))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("只有表头应返回空切片, got %d 行", len(rows))
	}

	rows, err = ParseInventoryCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("空文件应返回空切片, got %d 行", len(rows))
	}
}

func TestParseInventoryCSV_RaggedRowsTolerated(t *testing.T) {
	// 列数不齐的行：缺的单元格按空处理，不报错
	data := `product id,brand name,product price,product sold
1,Fender,1500,no
2,Gibson
`
	rows, err := ParseInventoryCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("列数不齐不应报错: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("行数 = %d, want 2", len(rows))
	}
	if rows[1].Price != "" || rows[1].Sold != "" {
		t.Errorf("缺失单元格应为空串: price=%q sold=%q", rows[1].Price, rows[1].Sold)
	}
}

func TestParseInventoryCSV_TrimsWhitespace(t *testing.T) {
	data := `product id, brand name ,product price,product sold
 101 , Fender ,1500,no
`
	rows, err := ParseInventoryCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if rows[0].ExternalID != "101" {
		t.Errorf("external_id = %q, want 101", rows[0].ExternalID)
	}
	if rows[0].Brand != "Fender" {
		t.Errorf("brand = %q, want Fender", rows[0].Brand)
	}
}
