package router

import (
	"github.com/gin-gonic/gin"

	"vr_sync_v1_202608/internal/controller"
	"vr_sync_v1_202608/internal/middleware"
	"vr_sync_v1_202608/internal/model"
)

// Controllers 控制器集合
type Controllers struct {
	Sync    *controller.SyncController
	Product *controller.ProductController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api/v1")
	{
		// sync 同步组
		sync := api.Group("/sync")
		{
			// POST /api/v1/sync/vr（带冷却限流，避免反复抓取 V&R 导出）
			sync.POST("/vr", middleware.SyncRateLimit(model.PlatformVR, 0), ctls.Sync.SyncVR)
			sync.GET("/vr/report", ctls.Sync.GetSyncReport)
			sync.GET("/stock-events", ctls.Sync.GetStockEvents)
			sync.GET("/tasks", ctls.Sync.GetTaskStatus)
		}

		// product 商品组
		products := api.Group("/products")
		{
			products.GET("", ctls.Product.GetProducts)
			products.GET("/stats", ctls.Product.GetProductStats)
			products.GET("/:id", ctls.Product.GetProduct)
		}
	}

	return r
}
