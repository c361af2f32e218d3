package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vr_sync_v1_202608/internal/controller"
	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
	"vr_sync_v1_202608/internal/router"
	"vr_sync_v1_202608/internal/service"
	"vr_sync_v1_202608/internal/task"
	"vr_sync_v1_202608/pkg/database"
	"vr_sync_v1_202608/pkg/vr"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	deps.TaskManager.Start()
	defer deps.TaskManager.Stop()

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	TaskManager *task.TaskManager
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Product repository.ProductRepository
	Link    repository.PlatformLinkRepository
	Listing repository.VRListingRepository
	SyncUow *repository.SyncUnitOfWork
}

// Services 服务集合
type Services struct {
	Product *service.ProductService
	Stock   *service.StockService
	VRSync  *service.VRSyncService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=vr_admin password=1234 dbname=vr_sync port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// Catalog
		&model.Product{},
		// Platform
		&model.PlatformLink{}, &model.VRListing{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Product: repository.NewProductRepository(db),
		Link:    repository.NewPlatformLinkRepository(db),
		Listing: repository.NewVRListingRepository(db),
		SyncUow: repository.NewSyncUnitOfWork(db),
	}

	// -------- V&R 客户端 --------
	vrClient := vr.NewClient(&vr.Config{
		BaseURL:  getEnv("VR_BASE_URL", ""),
		Username: getEnv("VR_USERNAME", ""),
		Password: getEnv("VR_PASSWORD", ""),
	})

	// -------- 业务服务 --------
	services := &Services{
		Product: service.NewProductService(repos.Product),
		Stock:   service.NewStockService(repos.Link),
	}
	services.VRSync = service.NewVRSyncService(
		repos.SyncUow,
		vrClient,
		services.Stock,
		&service.VRSyncConfig{
			CategoryFullPath: getEnv("VR_CATEGORY_FULL_PATH", "") == "true",
		},
	)

	// -------- 任务层 --------
	taskManager := task.NewTaskManager(services.VRSync, task.DefaultConfig())

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Sync:    controller.NewSyncController(taskManager, services.VRSync, services.Stock),
		Product: controller.NewProductController(services.Product),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		TaskManager: taskManager,
		Controllers: controllers,
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
