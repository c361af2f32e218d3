package service

import (
	"testing"

	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
	"vr_sync_v1_202608/pkg/vr"
)

func intPtr(n int) *int { return &n }

func baseMatch() *repository.LocalMatch {
	return &repository.LocalMatch{
		Product: &model.Product{
			SKU:         "X-1",
			Brand:       "Fender",
			Description: "Sunburst finish",
			BasePrice:   1500.00,
			Status:      model.ProductStatusActive,
		},
		Link: &model.PlatformLink{
			PlatformName: model.PlatformVR,
			ExternalID:   "EXT-1",
		},
		Listing: &model.VRListing{
			VRListingID:       "EXT-1",
			InventoryQuantity: 2,
		},
	}
}

func baseParsed() ParsedRow {
	return ParsedRow{
		ListingRow: vr.ListingRow{
			ExternalID:  "EXT-1",
			SKU:         "X-1",
			Brand:       "Fender",
			Description: "Sunburst finish",
		},
		PriceValue:    1500.00,
		SoldFlag:      false,
		QuantityValue: intPtr(2),
	}
}

func TestClassify_NoChanges(t *testing.T) {
	cs := Classify(baseParsed(), baseMatch())
	if !cs.Empty() {
		t.Errorf("完全一致的行应无变更: %+v", cs)
	}
}

func TestClassify_PriceEpsilon(t *testing.T) {
	// 一分钱以内的浮动视为未变
	row := baseParsed()
	row.PriceValue = 1500.005
	cs := Classify(row, baseMatch())
	if !cs.Empty() {
		t.Errorf("阈值内的价格浮动不应触发变更: %+v", cs)
	}

	row.PriceValue = 1600.00
	cs = Classify(row, baseMatch())
	if len(cs.FieldUpdates) != 1 || cs.FieldUpdates[0].Field != FieldPrice {
		t.Errorf("应命中价格更新: %+v", cs.FieldUpdates)
	}
	if cs.FieldUpdates[0].NewPrice != 1600.00 {
		t.Errorf("new_price = %.2f, want 1600.00", cs.FieldUpdates[0].NewPrice)
	}
}

func TestClassify_EmptyRemoteDescriptionIgnored(t *testing.T) {
	// 远端没给描述，不能当成清空本地描述
	row := baseParsed()
	row.Description = ""
	cs := Classify(row, baseMatch())
	if !cs.Empty() {
		t.Errorf("空描述不应触发变更: %+v", cs)
	}
}

func TestClassify_StatusTransition(t *testing.T) {
	row := baseParsed()
	row.SoldFlag = true
	cs := Classify(row, baseMatch())
	if cs.Status == nil || !cs.Status.ToSold {
		t.Errorf("应命中流向 SOLD 的状态流转: %+v", cs.Status)
	}

	// 反向：本地已 SOLD、远端重新上架
	match := baseMatch()
	match.Product.Status = model.ProductStatusSold
	cs = Classify(baseParsed(), match)
	if cs.Status == nil || cs.Status.ToSold {
		t.Errorf("应命中流回 ACTIVE 的状态流转: %+v", cs.Status)
	}
}

func TestClassify_StockChange(t *testing.T) {
	row := baseParsed()
	row.QuantityValue = intPtr(5)
	cs := Classify(row, baseMatch())
	if cs.Stock == nil {
		t.Fatal("应命中库存变更")
	}
	if cs.Stock.OldQuantity != 2 || cs.Stock.NewQuantity != 5 {
		t.Errorf("库存变更 %d -> %d, want 2 -> 5", cs.Stock.OldQuantity, cs.Stock.NewQuantity)
	}

	// 远端没提供数量则库存不参与 diff
	row.QuantityValue = nil
	cs = Classify(row, baseMatch())
	if cs.Stock != nil {
		t.Errorf("缺失库存列不应触发库存变更: %+v", cs.Stock)
	}
}

func TestClassify_MissingListingTreatedAsZero(t *testing.T) {
	match := baseMatch()
	match.Listing = nil

	row := baseParsed()
	row.QuantityValue = intPtr(3)
	cs := Classify(row, match)
	if cs.Stock == nil {
		t.Fatal("扩展记录缺失时应按当前 0 触发库存变更")
	}
	if cs.Stock.OldQuantity != 0 || cs.Stock.NewQuantity != 3 {
		t.Errorf("库存变更 %d -> %d, want 0 -> 3", cs.Stock.OldQuantity, cs.Stock.NewQuantity)
	}
}

func TestClassify_AdditiveCategories(t *testing.T) {
	// 品牌 + 价格 + 状态 + 库存同时变化，各类变更互不挤占
	row := baseParsed()
	row.Brand = "Gibson"
	row.PriceValue = 1600.00
	row.SoldFlag = true
	row.QuantityValue = intPtr(0)

	cs := Classify(row, baseMatch())
	if len(cs.FieldUpdates) != 2 {
		t.Errorf("字段更新数 = %d, want 2（brand + price）", len(cs.FieldUpdates))
	}
	if cs.Status == nil {
		t.Error("状态流转丢失")
	}
	if cs.Stock == nil {
		t.Error("库存变更丢失")
	}

	cats := cs.Categories()
	if len(cats) != 4 {
		t.Errorf("变更类别 = %v, want 4 个", cats)
	}
}
