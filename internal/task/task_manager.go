package task

import (
	"context"
	"log"
	"time"

	"vr_sync_v1_202608/internal/api/dto"
	"vr_sync_v1_202608/internal/service"
)

// ==================== TaskManager 同步任务管理器 ====================

// TaskManager 统一管理同步任务
// 目前只有 V&R 库存同步一个任务；eBay/Shopify 的推送任务接入时挂在这里。
type TaskManager struct {
	vrTask *VRSyncTask
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	VREnabled bool
	VRTimeout time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		VREnabled: true,
		VRTimeout: 30 * time.Minute,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(syncService *service.VRSyncService, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	if cfg.VREnabled && syncService != nil {
		tm.vrTask = NewVRSyncTask(syncService)
		tm.vrTask.SetTimeout(cfg.VRTimeout)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	log.Println("[TaskManager] 正在启动同步任务...")

	if tm.vrTask != nil {
		tm.vrTask.Start()
	}

	log.Println("[TaskManager] 同步任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	log.Println("[TaskManager] 正在停止同步任务...")

	if tm.vrTask != nil {
		tm.vrTask.Stop()
	}

	log.Println("[TaskManager] 同步任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerVRSync 触发 V&R 同步并等待报告
func (tm *TaskManager) TriggerVRSync(ctx context.Context) (*dto.SyncReport, error) {
	if tm.vrTask == nil {
		return nil, ErrTaskDisabled
	}
	return tm.vrTask.SyncNow(ctx)
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"vr_sync": tm.vrTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled   TaskError = "task is disabled"
	ErrSyncInProgress TaskError = "sync already in progress"
)
