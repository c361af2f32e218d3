package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vr_sync_v1_202608/internal/api/dto"
	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
	"vr_sync_v1_202608/pkg/vr"
)

// ==================== 依赖接口 ====================

// SnapshotProvider 远端快照提供者
// 只要求能返回规范化的行序列；抓取、登录、CSV 解析对核心都是不透明的上游输入。
type SnapshotProvider interface {
	FetchInventory(ctx context.Context) ([]vr.ListingRow, error)
}

// ==================== 同步阶段 ====================

// SyncPhase 编排器状态机阶段
type SyncPhase string

const (
	PhaseNotStarted  SyncPhase = "NOT_STARTED"
	PhaseDownloading SyncPhase = "DOWNLOADING"
	PhaseValidating  SyncPhase = "VALIDATING"
	PhaseProcessing  SyncPhase = "PROCESSING"
	PhaseCommitting  SyncPhase = "COMMITTING"
	PhaseDone        SyncPhase = "DONE"
	PhaseFailed      SyncPhase = "FAILED"
)

// ==================== 配置 ====================

// VRSyncConfig 同步服务配置
type VRSyncConfig struct {
	Platform string // 平台名，默认 vintageandrare

	// CategoryFullPath 为 true 时商品分类保留完整路径，
	// 否则只取路径首段（与历史行为一致，子分类信息丢弃）。
	CategoryFullPath bool
}

// ==================== VRSyncService ====================

// VRSyncService V&R 库存对账同步服务
// 一轮同步：下载快照 -> 校验 -> 逐行分类并应用 -> 单次提交 -> 汇总报告。
// 行级错误只计数不中断；快照拉取失败或为空按整轮致命处理。
type VRSyncService struct {
	uow      *repository.SyncUnitOfWork
	provider SnapshotProvider
	notifier StockEventNotifier
	cfg      *VRSyncConfig

	mu         sync.Mutex
	phase      SyncPhase
	lastReport *dto.SyncReport
	lastRunAt  *time.Time
}

// NewVRSyncService 创建同步服务
func NewVRSyncService(
	uow *repository.SyncUnitOfWork,
	provider SnapshotProvider,
	notifier StockEventNotifier,
	cfg *VRSyncConfig,
) *VRSyncService {
	if cfg == nil {
		cfg = &VRSyncConfig{}
	}
	if cfg.Platform == "" {
		cfg.Platform = model.PlatformVR
	}
	return &VRSyncService{
		uow:      uow,
		provider: provider,
		notifier: notifier,
		cfg:      cfg,
		phase:    PhaseNotStarted,
	}
}

// Phase 当前阶段
func (s *VRSyncService) Phase() SyncPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// LastReport 最近一轮的报告和执行时间
func (s *VRSyncService) LastReport() (*dto.SyncReport, *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport, s.lastRunAt
}

func (s *VRSyncService) setPhase(p SyncPhase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// ==================== 同步编排 ====================

// SyncFromRemote 执行一轮完整同步
func (s *VRSyncService) SyncFromRemote(ctx context.Context) (*dto.SyncReport, error) {
	report := &dto.SyncReport{}

	// -------- Downloading --------
	s.setPhase(PhaseDownloading)
	rows, err := s.provider.FetchInventory(ctx)
	if err != nil {
		s.setPhase(PhaseFailed)
		return nil, fmt.Errorf("拉取远端快照失败: %w", err)
	}
	if len(rows) == 0 {
		s.setPhase(PhaseFailed)
		return nil, fmt.Errorf("远端快照为空，放弃本轮同步")
	}
	report.ProductsProcessed = len(rows)

	// -------- Validating --------
	s.setPhase(PhaseValidating)
	var validRows []ParsedRow
	for _, row := range rows {
		defects, warnings := ValidateRow(row)
		for _, w := range warnings {
			log.Printf("[VRSync] 行 %s 校验警告: %s", row.ExternalID, w)
		}
		if len(defects) > 0 {
			report.InvalidRows++
			report.Details.Errors = append(report.Details.Errors, dto.RowError{
				ExternalID: row.ExternalID,
				Error:      strings.Join(defects, "; "),
			})
			continue
		}
		validRows = append(validRows, parseRow(row))
	}
	log.Printf("[VRSync] 校验完成: 有效 %d, 无效 %d", len(validRows), report.InvalidRows)

	// -------- Processing + Committing --------
	// 整个处理阶段共用一个事务，末尾一次提交；行级错误被逐行吞掉、计入报告，
	// 不会让事务失败——要的保证是「一行坏数据不拖垮整轮好数据」。
	s.setPhase(PhaseProcessing)
	err = s.uow.Transaction(ctx, func(tx *repository.SyncUnitOfWork) error {
		state, err := tx.LoadPlatformState(ctx, s.cfg.Platform)
		if err != nil {
			return fmt.Errorf("加载本地状态失败: %w", err)
		}
		log.Printf("[VRSync] 本地状态加载完成: %d 条关联", len(state))

		for _, row := range validRows {
			if rowErr := s.processRow(ctx, tx, state, row, report); rowErr != nil {
				report.Errors++
				report.Details.Errors = append(report.Details.Errors, dto.RowError{
					ExternalID: row.ExternalID,
					Error:      rowErr.Error(),
				})
				log.Printf("[VRSync] 行 %s 处理失败: %v", row.ExternalID, rowErr)
			}
		}

		s.setPhase(PhaseCommitting)
		return nil
	})
	if err != nil {
		s.setPhase(PhaseFailed)
		return nil, fmt.Errorf("同步事务失败: %w", err)
	}

	// -------- Done --------
	s.setPhase(PhaseDone)
	now := time.Now()
	s.mu.Lock()
	s.lastReport = report
	s.lastRunAt = &now
	s.mu.Unlock()

	log.Printf("[VRSync] 同步完成: 新建 %d, 更新 %d (价格 %d/状态 %d/库存 %d), 未变 %d, 无效 %d, 错误 %d",
		report.Created, report.Updated.Total,
		report.Updated.Price, report.Updated.Status, report.Updated.Stock,
		report.Unchanged, report.InvalidRows, report.Errors)
	return report, nil
}

// processRow 处理单行，错误（含 panic）被收敛为返回值，保证不中断整轮
func (s *VRSyncService) processRow(
	ctx context.Context,
	tx *repository.SyncUnitOfWork,
	state map[string]*repository.LocalMatch,
	row ParsedRow,
	report *dto.SyncReport,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("行处理异常: %v", r)
		}
	}()

	match := state[row.ExternalID]
	if match == nil {
		created, createErr := s.createFromRemote(ctx, tx, row)
		if createErr != nil {
			return createErr
		}
		// 同轮内同一外部ID不应重复出现，但真出现时按快照顺序只建一次
		state[row.ExternalID] = created
		report.Created++
		report.Details.Created = append(report.Details.Created, created.Product.SKU)
		return nil
	}

	cs := Classify(row, match)
	if cs.Empty() {
		report.Unchanged++
		return nil
	}

	if err := s.applyUpdate(ctx, tx, match, cs); err != nil {
		return err
	}

	// 子计数独立累加，Total 每行只加一次
	for _, fu := range cs.FieldUpdates {
		if fu.Field == FieldPrice {
			report.Updated.Price++
		}
	}
	if cs.Status != nil {
		report.Updated.Status++
	}
	if cs.Stock != nil {
		report.Updated.Stock++
	}
	report.Updated.Total++
	report.Details.Updated = append(report.Details.Updated, dto.UpdatedDetail{
		SKU:        match.Product.SKU,
		ExternalID: row.ExternalID,
		Changes:    cs.Categories(),
	})
	return nil
}

// ==================== 变更应用 ====================

// applyUpdate 按变更集合就地修改三元组并持久化
// 只有变更集合非空才会走到这里，所以同步书签（SYNCED + LastSyncAt）必然刷新；
// 无变更的行在上游直接跳过，书签保持原样。
func (s *VRSyncService) applyUpdate(
	ctx context.Context,
	tx *repository.SyncUnitOfWork,
	match *repository.LocalMatch,
	cs ChangeSet,
) error {
	product, link, listing := match.Product, match.Link, match.Listing
	now := time.Now().UTC()

	for _, fu := range cs.FieldUpdates {
		switch fu.Field {
		case FieldBrand:
			product.Brand = fu.NewText
		case FieldDescription:
			product.Description = fu.NewText
		case FieldPrice:
			product.BasePrice = fu.NewPrice
		}
	}

	if cs.Status != nil {
		if cs.Status.ToSold {
			product.Status = model.ProductStatusSold
			link.ListingStatus = model.VRStateSold
		} else {
			product.Status = model.ProductStatusActive
			link.ListingStatus = model.VRStateActive
		}
	}

	if cs.Stock != nil {
		if listing == nil {
			// Link 存在但扩展记录缺失：此处补建而不是报错，状态沿用关联当前值
			listing = &model.VRListing{
				LinkID:      link.ID,
				VRListingID: link.ExternalID,
				VRState:     link.ListingStatus,
			}
			match.Listing = listing
		}
		listing.InventoryQuantity = cs.Stock.NewQuantity
		product.InInventory = cs.Stock.NewQuantity > 0
	}
	if listing != nil && cs.Status != nil {
		listing.VRState = link.ListingStatus
	}

	// 同步书签：本轮确实应用了变更
	link.SyncStatus = model.SyncStatusSynced
	link.LastSyncAt = &now

	if err := tx.Products.Update(ctx, product); err != nil {
		return fmt.Errorf("保存商品失败: %w", err)
	}
	if err := tx.Links.Update(ctx, link); err != nil {
		return fmt.Errorf("保存平台关联失败: %w", err)
	}
	if listing != nil {
		var err error
		if listing.ID == 0 {
			err = tx.Listings.Create(ctx, listing)
		} else {
			err = tx.Listings.Update(ctx, listing)
		}
		if err != nil {
			return fmt.Errorf("保存扩展记录失败: %w", err)
		}
	}

	// 库存事件与数据库变更不在同一失败域：通知挂了只记日志，行的落库照常生效
	if cs.Stock != nil {
		s.emitStockEvent(ctx, model.StockUpdateEvent{
			ProductID:   product.ID,
			Platform:    s.cfg.Platform,
			OldQuantity: cs.Stock.OldQuantity,
			NewQuantity: cs.Stock.NewQuantity,
			Timestamp:   now,
		})
	}
	return nil
}

func (s *VRSyncService) emitStockEvent(ctx context.Context, event model.StockUpdateEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.ProcessStockUpdate(ctx, event); err != nil {
		log.Printf("[VRSync] 库存事件通知失败 (商品 %d, %d -> %d): %v",
			event.ProductID, event.OldQuantity, event.NewQuantity, err)
	}
}

// ==================== 新建 ====================

// conditionLabels V&R 成色标签 -> 内部成色枚举
var conditionLabels = map[string]model.ProductCondition{
	"new":       model.ConditionNew,
	"mint":      model.ConditionExcellent,
	"excellent": model.ConditionExcellent,
	"very good": model.ConditionVeryGood,
	"good":      model.ConditionGood,
	"fair":      model.ConditionFair,
	"poor":      model.ConditionPoor,
}

// createFromRemote 远端行没有本地匹配时新建 商品+关联+扩展记录 三件套
// 建商品前先做 SKU 碰撞检查：同一 SKU 已存在但尚无本平台关联时复用既有商品，
// 只补建关联和扩展记录，避免同一件实物从两条入库路径变成两条商品档案。
func (s *VRSyncService) createFromRemote(
	ctx context.Context,
	tx *repository.SyncUnitOfWork,
	row ParsedRow,
) (*repository.LocalMatch, error) {
	now := time.Now().UTC()

	sku := row.SKU
	if sku == "" {
		sku = "VR-" + strings.ToUpper(uuid.NewString()[:8])
	}

	product, err := tx.Products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("SKU 碰撞检查失败: %w", err)
	}
	if product == nil {
		product = s.buildProduct(row, sku)
		if err := tx.Products.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("新建商品失败: %w", err)
		}
	}

	listingStatus := model.VRStateActive
	if row.SoldFlag {
		listingStatus = model.VRStateSold
	}

	link := &model.PlatformLink{
		ProductID:     product.ID,
		PlatformName:  s.cfg.Platform,
		ExternalID:    row.ExternalID,
		ListingStatus: listingStatus,
		SyncStatus:    model.SyncStatusSynced,
		LastSyncAt:    &now,
	}
	if err := tx.Links.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("新建平台关联失败: %w", err)
	}

	quantity := 1
	if row.QuantityValue != nil {
		quantity = *row.QuantityValue
	}
	listing := &model.VRListing{
		LinkID:            link.ID,
		VRListingID:       row.ExternalID,
		InventoryQuantity: quantity,
		VRState:           listingStatus,
		ExtendedAttributes: map[string]interface{}{
			"year":      row.Year,
			"condition": row.Condition,
		},
	}
	if err := tx.Listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("新建扩展记录失败: %w", err)
	}

	return &repository.LocalMatch{Product: product, Link: link, Listing: listing}, nil
}

// buildProduct 从远端行组装商品主档
func (s *VRSyncService) buildProduct(row ParsedRow, sku string) *model.Product {
	status := model.ProductStatusActive
	if row.SoldFlag {
		status = model.ProductStatusSold
	}

	condition := model.ConditionVeryGood
	if c, ok := conditionLabels[strings.ToLower(row.Condition)]; ok {
		condition = c
	}

	product := &model.Product{
		SKU:         sku,
		Brand:       row.Brand,
		Model:       row.Model,
		Category:    s.mapCategory(row.CategoryPath),
		Description: row.Description,
		BasePrice:   row.PriceValue,
		Condition:   condition,
		Status:      status,
		InInventory: !row.SoldFlag,
	}

	if year, err := strconv.Atoi(row.Year); err == nil && year > 0 {
		product.Year = &year
	}
	return product
}

// mapCategory 分类路径映射
// 默认只取路径首段；开启 CategoryFullPath 后保留完整路径，不再丢弃子分类。
func (s *VRSyncService) mapCategory(path string) string {
	if path == "" || s.cfg.CategoryFullPath {
		return path
	}
	if idx := strings.Index(path, vr.CategoryDelimiter); idx >= 0 {
		return strings.TrimSpace(path[:idx])
	}
	return path
}
