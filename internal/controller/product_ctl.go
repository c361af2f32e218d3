package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vr_sync_v1_202608/internal/api/dto"
	"vr_sync_v1_202608/internal/service"
)

// ProductController 商品控制器
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== Handler 实现 ====================

// GetProducts 商品列表
// @Summary 分页查询商品
// @Tags Product
// @Param status query string false "商品状态"
// @Param keyword query string false "搜索关键字"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products [get]
func (c *ProductController) GetProducts(ctx *gin.Context) {
	var req dto.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(400, gin.H{"code": 400, "message": "无效的查询参数"})
		return
	}

	resp, err := c.productService.ListProducts(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{
		"code": 200,
		"data": resp,
	})
}

// GetProduct 商品详情
// @Summary 按 ID 查询商品及其平台关联
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "商品不存在"
// @Router /api/v1/products/{id} [get]
func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	detail, err := c.productService.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		ctx.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{
		"code": 200,
		"data": detail,
	})
}

// GetProductStats 商品统计
// @Summary 按状态统计商品数量
// @Tags Product
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products/stats [get]
func (c *ProductController) GetProductStats(ctx *gin.Context) {
	stats, err := c.productService.GetProductStats(ctx.Request.Context())
	if err != nil {
		ctx.JSON(500, gin.H{"code": 500, "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{
		"code": 200,
		"data": stats,
	})
}
