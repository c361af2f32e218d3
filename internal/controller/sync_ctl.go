package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"vr_sync_v1_202608/internal/service"
	"vr_sync_v1_202608/internal/task"
)

// SyncController 同步控制器
type SyncController struct {
	taskManager *task.TaskManager
	syncService *service.VRSyncService
	stockSvc    *service.StockService
}

// NewSyncController 创建同步控制器
func NewSyncController(taskManager *task.TaskManager, syncService *service.VRSyncService, stockSvc *service.StockService) *SyncController {
	return &SyncController{
		taskManager: taskManager,
		syncService: syncService,
		stockSvc:    stockSvc,
	}
}

// ==================== Handler 实现 ====================

// SyncVR 手动触发 V&R 同步
// @Summary 手动触发一轮 V&R 库存同步并返回报告
// @Tags Sync
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{} "已有同步在执行"
// @Router /api/v1/sync/vr [post]
func (c *SyncController) SyncVR(ctx *gin.Context) {
	report, err := c.taskManager.TriggerVRSync(ctx.Request.Context())
	if err != nil {
		code := 500
		if errors.Is(err, task.ErrSyncInProgress) {
			code = 409
		}
		ctx.JSON(code, gin.H{"code": code, "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{
		"code":    200,
		"message": "V&R 同步完成",
		"data":    report,
	})
}

// GetSyncReport 查询最近一轮同步报告
// @Summary 查询同步阶段与最近一轮报告
// @Tags Sync
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sync/vr/report [get]
func (c *SyncController) GetSyncReport(ctx *gin.Context) {
	report, ranAt := c.syncService.LastReport()

	ctx.JSON(200, gin.H{
		"code": 200,
		"data": gin.H{
			"phase":       c.syncService.Phase(),
			"report":      report,
			"last_run_at": ranAt,
		},
	})
}

// GetStockEvents 查询最近的库存事件
// @Summary 查询最近的跨平台库存事件
// @Tags Sync
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sync/stock-events [get]
func (c *SyncController) GetStockEvents(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"code": 200,
		"data": c.stockSvc.RecentEvents(),
	})
}

// GetTaskStatus 查询任务状态
// @Summary 查询定时任务启用状态
// @Tags Sync
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sync/tasks [get]
func (c *SyncController) GetTaskStatus(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"code": 200,
		"data": c.taskManager.Status(),
	})
}
