package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vr_sync_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// PlatformLinkRepository 平台关联仓储接口
type PlatformLinkRepository interface {
	Create(ctx context.Context, link *model.PlatformLink) error
	GetByExternalID(ctx context.Context, platform, externalID string) (*model.PlatformLink, error)
	Update(ctx context.Context, link *model.PlatformLink) error
	ListByPlatform(ctx context.Context, platform string) ([]model.PlatformLink, error)

	// MarkOutOfSync 把同一商品在其他平台的关联标记为待推送
	MarkOutOfSync(ctx context.Context, productID int64, excludePlatform string) (int64, error)

	WithTx(tx *gorm.DB) PlatformLinkRepository
}

// ==================== 仓储实现 ====================

type platformLinkRepo struct {
	db *gorm.DB
}

// NewPlatformLinkRepository 创建平台关联仓储
func NewPlatformLinkRepository(db *gorm.DB) PlatformLinkRepository {
	return &platformLinkRepo{db: db}
}

func (r *platformLinkRepo) Create(ctx context.Context, link *model.PlatformLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// GetByExternalID 按 (平台, 外部ID) 查询，未找到返回 (nil, nil)
func (r *platformLinkRepo) GetByExternalID(ctx context.Context, platform, externalID string) (*model.PlatformLink, error) {
	var link model.PlatformLink
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("platform_name = ? AND external_id = ?", platform, externalID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *platformLinkRepo) Update(ctx context.Context, link *model.PlatformLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

// ListByPlatform 拉取某平台的全部关联（带商品），本地状态快照的底层查询
func (r *platformLinkRepo) ListByPlatform(ctx context.Context, platform string) ([]model.PlatformLink, error) {
	var links []model.PlatformLink
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("platform_name = ?", platform).
		Find(&links).Error
	return links, err
}

func (r *platformLinkRepo) MarkOutOfSync(ctx context.Context, productID int64, excludePlatform string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PlatformLink{}).
		Where("product_id = ? AND platform_name != ?", productID, excludePlatform).
		Update("sync_status", model.SyncStatusOutOfSync)
	return result.RowsAffected, result.Error
}

func (r *platformLinkRepo) WithTx(tx *gorm.DB) PlatformLinkRepository {
	return &platformLinkRepo{db: tx}
}
