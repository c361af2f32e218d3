package repository

import (
	"context"

	"gorm.io/gorm"

	"vr_sync_v1_202608/internal/model"
)

// ==================== 本地状态 ====================

// LocalMatch 一个外部ID对应的本地三元组
// Listing 允许为 nil：Link 存在但扩展记录缺失时不报错，由变更应用时补建。
type LocalMatch struct {
	Product *model.Product
	Link    *model.PlatformLink
	Listing *model.VRListing
}

// ==================== SyncUnitOfWork 同步工作单元 ====================

// SyncUnitOfWork 同步工作单元（事务）
// 一轮同步的全部变更共享同一个事务上下文，末尾一次性提交；
// 行级隔离靠逐行捕获错误实现，不做逐行事务。
type SyncUnitOfWork struct {
	db       *gorm.DB
	Products ProductRepository
	Links    PlatformLinkRepository
	Listings VRListingRepository
}

// NewSyncUnitOfWork 创建工作单元
func NewSyncUnitOfWork(db *gorm.DB) *SyncUnitOfWork {
	return &SyncUnitOfWork{
		db:       db,
		Products: NewProductRepository(db),
		Links:    NewPlatformLinkRepository(db),
		Listings: NewVRListingRepository(db),
	}
}

// Transaction 执行事务
func (u *SyncUnitOfWork) Transaction(ctx context.Context, fn func(uow *SyncUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &SyncUnitOfWork{
			db:       tx,
			Products: u.Products.WithTx(tx),
			Links:    u.Links.WithTx(tx),
			Listings: u.Listings.WithTx(tx),
		}
		return fn(txUow)
	})
}

// LoadPlatformState 加载某平台的本地状态快照
// 一次批量读出 Link(含 Product) 和 VRListing 两张表，按外部ID组装三元组映射。
// 只读操作；查询失败直接上抛，由编排器按整轮致命错误处理。
func (u *SyncUnitOfWork) LoadPlatformState(ctx context.Context, platform string) (map[string]*LocalMatch, error) {
	links, err := u.Links.ListByPlatform(ctx, platform)
	if err != nil {
		return nil, err
	}

	listings, err := u.Listings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byLinkID := make(map[int64]*model.VRListing, len(listings))
	for i := range listings {
		byLinkID[listings[i].LinkID] = &listings[i]
	}

	state := make(map[string]*LocalMatch, len(links))
	for i := range links {
		link := &links[i]
		state[link.ExternalID] = &LocalMatch{
			Product: link.Product,
			Link:    link,
			Listing: byLinkID[link.ID],
		}
	}
	return state, nil
}
