package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vr_sync_v1_202608/internal/model"
	"vr_sync_v1_202608/internal/repository"
	"vr_sync_v1_202608/internal/service"
	"vr_sync_v1_202608/internal/task"
	"vr_sync_v1_202608/pkg/vr"
)

type stubProvider struct {
	rows []vr.ListingRow
}

func (p *stubProvider) FetchInventory(ctx context.Context) ([]vr.ListingRow, error) {
	return p.rows, nil
}

func setupSyncController(t *testing.T) *SyncController {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.PlatformLink{}, &model.VRListing{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}

	qty := "2"
	provider := &stubProvider{rows: []vr.ListingRow{
		{ExternalID: "EXT-1", SKU: "X-1", Brand: "Fender", CategoryPath: "Guitars/Electric", Price: "1500.00", Sold: "no", Quantity: &qty},
	}}

	stockSvc := service.NewStockService(repository.NewPlatformLinkRepository(db))
	syncSvc := service.NewVRSyncService(repository.NewSyncUnitOfWork(db), provider, stockSvc, nil)
	taskManager := task.NewTaskManager(syncSvc, task.DefaultConfig())

	return NewSyncController(taskManager, syncSvc, stockSvc)
}

func TestSyncVR_ReturnsReport(t *testing.T) {
	ctl := setupSyncController(t)

	r := gin.New()
	r.POST("/sync/vr", ctl.SyncVR)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync/vr", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Created           int `json:"created"`
			ProductsProcessed int `json:"products_processed"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, 1, resp.Data.Created)
	assert.Equal(t, 1, resp.Data.ProductsProcessed)
}

func TestGetSyncReport_PhaseAfterRun(t *testing.T) {
	ctl := setupSyncController(t)

	r := gin.New()
	r.POST("/sync/vr", ctl.SyncVR)
	r.GET("/sync/vr/report", ctl.GetSyncReport)

	// 先跑一轮再查报告
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync/vr", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sync/vr/report", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Phase     string      `json:"phase"`
			LastRunAt interface{} `json:"last_run_at"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DONE", resp.Data.Phase)
	assert.NotNil(t, resp.Data.LastRunAt)
}

func TestSyncVR_DisabledTask(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 任务关闭时手动触发应报错而不是悄悄什么都不做
	taskManager := task.NewTaskManager(nil, &task.TaskManagerConfig{VREnabled: false})
	ctl := NewSyncController(taskManager, nil, nil)

	r := gin.New()
	r.POST("/sync/vr", ctl.SyncVR)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync/vr", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetTaskStatus(t *testing.T) {
	ctl := setupSyncController(t)

	r := gin.New()
	r.GET("/sync/tasks", ctl.GetTaskStatus)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sync/tasks", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]bool `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data["vr_sync"])
}
