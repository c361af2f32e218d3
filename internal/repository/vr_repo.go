package repository

import (
	"context"

	"gorm.io/gorm"

	"vr_sync_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// VRListingRepository V&R 扩展记录仓储接口
type VRListingRepository interface {
	Create(ctx context.Context, listing *model.VRListing) error
	Update(ctx context.Context, listing *model.VRListing) error
	ListAll(ctx context.Context) ([]model.VRListing, error)

	WithTx(tx *gorm.DB) VRListingRepository
}

// ==================== 仓储实现 ====================

type vrListingRepo struct {
	db *gorm.DB
}

// NewVRListingRepository 创建 V&R 扩展仓储
func NewVRListingRepository(db *gorm.DB) VRListingRepository {
	return &vrListingRepo{db: db}
}

func (r *vrListingRepo) Create(ctx context.Context, listing *model.VRListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *vrListingRepo) Update(ctx context.Context, listing *model.VRListing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *vrListingRepo) ListAll(ctx context.Context) ([]model.VRListing, error) {
	var listings []model.VRListing
	err := r.db.WithContext(ctx).Find(&listings).Error
	return listings, err
}

func (r *vrListingRepo) WithTx(tx *gorm.DB) VRListingRepository {
	return &vrListingRepo{db: tx}
}
