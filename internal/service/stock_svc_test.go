package service

import (
	"context"
	"testing"
	"time"

	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
)

func TestStockService_ProcessStockUpdate(t *testing.T) {
	db := setupSyncTestDB(t)
	ctx := context.Background()

	p := &model.Product{SKU: "X-1", Brand: "Fender"}
	db.Create(p)
	db.Create(&model.PlatformLink{ProductID: p.ID, PlatformName: model.PlatformVR, ExternalID: "EXT-1", SyncStatus: model.SyncStatusSynced})
	db.Create(&model.PlatformLink{ProductID: p.ID, PlatformName: model.PlatformEbay, ExternalID: "EBAY-1", SyncStatus: model.SyncStatusSynced})

	svc := NewStockService(repository.NewPlatformLinkRepository(db))
	event := model.StockUpdateEvent{
		ProductID:   p.ID,
		Platform:    model.PlatformVR,
		OldQuantity: 2,
		NewQuantity: 5,
		Timestamp:   time.Now().UTC(),
	}
	if err := svc.ProcessStockUpdate(ctx, event); err != nil {
		t.Fatalf("处理库存事件失败: %v", err)
	}

	// 来源平台不动，其他平台标为待推送
	var vrLink, ebayLink model.PlatformLink
	db.Where("platform_name = ?", model.PlatformVR).First(&vrLink)
	db.Where("platform_name = ?", model.PlatformEbay).First(&ebayLink)
	if vrLink.SyncStatus != model.SyncStatusSynced {
		t.Errorf("来源平台 sync_status = %s, want SYNCED", vrLink.SyncStatus)
	}
	if ebayLink.SyncStatus != model.SyncStatusOutOfSync {
		t.Errorf("eBay sync_status = %s, want OUT_OF_SYNC", ebayLink.SyncStatus)
	}
}

func TestStockService_RecentEventsNewestFirst(t *testing.T) {
	db := setupSyncTestDB(t)
	ctx := context.Background()

	p := &model.Product{SKU: "X-1", Brand: "Fender"}
	db.Create(p)

	svc := NewStockService(repository.NewPlatformLinkRepository(db))
	for i := 1; i <= 3; i++ {
		event := model.StockUpdateEvent{
			ProductID:   p.ID,
			Platform:    model.PlatformVR,
			OldQuantity: i - 1,
			NewQuantity: i,
			Timestamp:   time.Now().UTC(),
		}
		if err := svc.ProcessStockUpdate(ctx, event); err != nil {
			t.Fatalf("处理库存事件失败: %v", err)
		}
	}

	events := svc.RecentEvents()
	if len(events) != 3 {
		t.Fatalf("事件数 = %d, want 3", len(events))
	}
	if events[0].NewQuantity != 3 {
		t.Errorf("最新事件应排在最前: %+v", events[0])
	}
	if events[2].NewQuantity != 1 {
		t.Errorf("最旧事件应排在最后: %+v", events[2])
	}
}

func TestStockUpdateEvent_Delta(t *testing.T) {
	event := model.StockUpdateEvent{OldQuantity: 2, NewQuantity: 5}
	if event.Delta() != 3 {
		t.Errorf("delta = %d, want 3", event.Delta())
	}

	event = model.StockUpdateEvent{OldQuantity: 5, NewQuantity: 0}
	if event.Delta() != -5 {
		t.Errorf("delta = %d, want -5", event.Delta())
	}
}
