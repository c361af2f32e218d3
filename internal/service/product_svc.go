package service

import (
	"context"
	"fmt"

	"vr_sync_v1_202608/internal/api/dto"
	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
)

// ==================== ProductService ====================

// ProductService 商品查询服务
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ListProducts 商品列表
func (s *ProductService) ListProducts(ctx context.Context, req *dto.ListProductsRequest) (*dto.ListProductsResponse, error) {
	filter := repository.ProductFilter{
		Status:   model.ProductStatus(req.Status),
		Brand:    req.Brand,
		Category: req.Category,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}

	list := make([]dto.ProductListItem, len(products))
	for i, p := range products {
		list[i] = dto.ProductListItem{
			ID:        p.ID,
			SKU:       p.SKU,
			Brand:     p.Brand,
			Model:     p.Model,
			Category:  p.Category,
			BasePrice: p.BasePrice,
			Condition: string(p.Condition),
			Status:    string(p.Status),
			Year:      p.Year,
			UpdatedAt: p.UpdatedAt,
		}
	}

	return &dto.ListProductsResponse{
		Total: total,
		List:  list,
	}, nil
}

// GetProduct 商品详情（含各平台关联）
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*dto.ProductDetail, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.ProductDetail{
		ProductListItem: dto.ProductListItem{
			ID:        p.ID,
			SKU:       p.SKU,
			Brand:     p.Brand,
			Model:     p.Model,
			Category:  p.Category,
			BasePrice: p.BasePrice,
			Condition: string(p.Condition),
			Status:    string(p.Status),
			Year:      p.Year,
			UpdatedAt: p.UpdatedAt,
		},
		Description: p.Description,
		InInventory: p.InInventory,
		Links:       make([]dto.ProductLinkItem, len(p.Links)),
	}
	for i, link := range p.Links {
		detail.Links[i] = dto.ProductLinkItem{
			Platform:      link.PlatformName,
			ExternalID:    link.ExternalID,
			ListingStatus: link.ListingStatus,
			SyncStatus:    string(link.SyncStatus),
			LastSyncAt:    link.LastSyncAt,
		}
	}
	return detail, nil
}

// GetProductStats 按状态统计商品数
func (s *ProductService) GetProductStats(ctx context.Context) (map[model.ProductStatus]int64, error) {
	return s.products.CountByStatus(ctx)
}
