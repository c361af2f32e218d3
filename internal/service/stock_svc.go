package service

import (
	"context"
	"log"
	"sync"

	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
)

// ==================== 通知接口 ====================

// StockEventNotifier 库存事件通知接口
// 同步核心保证：每行每轮最多调用一次，且仅在真实数量变化已落库后调用。
// 通知失败不回传给行处理，更不会让整轮失败。
type StockEventNotifier interface {
	ProcessStockUpdate(ctx context.Context, event model.StockUpdateEvent) error
}

// ==================== StockService 跨平台库存协调 ====================

const recentEventLimit = 200

// StockService 库存事件的默认实现
// 收到事件后把同一商品在其他平台的关联标为 OUT_OF_SYNC，
// 由各平台自己的同步任务负责把新数量推出去；本服务不直接调用任何平台 API。
type StockService struct {
	links repository.PlatformLinkRepository

	mu     sync.RWMutex
	recent []model.StockUpdateEvent // 环形保留最近若干条，供状态接口查看
}

// NewStockService 创建库存协调服务
func NewStockService(links repository.PlatformLinkRepository) *StockService {
	return &StockService{links: links}
}

// ProcessStockUpdate 处理一条库存变更事件
func (s *StockService) ProcessStockUpdate(ctx context.Context, event model.StockUpdateEvent) error {
	affected, err := s.links.MarkOutOfSync(ctx, event.ProductID, event.Platform)
	if err != nil {
		return err
	}

	log.Printf("[StockService] 商品 %d 库存 %d -> %d (来源 %s)，标记待推送关联 %d 条",
		event.ProductID, event.OldQuantity, event.NewQuantity, event.Platform, affected)

	s.mu.Lock()
	s.recent = append(s.recent, event)
	if len(s.recent) > recentEventLimit {
		s.recent = s.recent[len(s.recent)-recentEventLimit:]
	}
	s.mu.Unlock()
	return nil
}

// RecentEvents 最近的库存事件（新到旧）
func (s *StockService) RecentEvents() []model.StockUpdateEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]model.StockUpdateEvent, len(s.recent))
	for i, e := range s.recent {
		events[len(s.recent)-1-i] = e
	}
	return events
}
