package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"vr_sync_v1_202608/internal/api/dto"
	"vr_sync_v1_202608/internal/service"
)

// ==================== VRSyncTask V&R 同步任务 ====================

// VRSyncTask V&R 库存同步定时任务
// 同步策略：
//   - 常规同步：每 6 小时
//   - 全量对账：每日凌晨 3 点（与常规同步流程相同，保留独立入口便于调整）
type VRSyncTask struct {
	syncService *service.VRSyncService
	cron        *cron.Cron

	// 防止上一轮还没跑完又触发下一轮
	mu      sync.Mutex
	running bool

	timeout time.Duration
}

// NewVRSyncTask 创建同步任务
func NewVRSyncTask(syncService *service.VRSyncService) *VRSyncTask {
	return &VRSyncTask{
		syncService: syncService,
		cron:        cron.New(cron.WithSeconds()),
		timeout:     30 * time.Minute,
	}
}

// SetTimeout 设置单轮超时
func (t *VRSyncTask) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// Start 启动定时任务
func (t *VRSyncTask) Start() {
	// 首次执行（延迟 30 秒，等服务完全起来）
	go func() {
		time.Sleep(30 * time.Second)
		log.Println("[VRSyncTask] 执行首次 V&R 同步...")
		t.runOnce()
	}()

	// 常规同步：每 6 小时
	_, _ = t.cron.AddFunc("0 0 */6 * * *", func() {
		t.runOnce()
	})

	// 全量对账：每日凌晨 3 点
	_, _ = t.cron.AddFunc("0 0 3 * * *", func() {
		log.Println("[VRSyncTask] 开始每日全量对账...")
		t.runOnce()
	})

	t.cron.Start()
	log.Println("[VRSyncTask] 已启动 (每6小时/每日3点全量)")
}

// Stop 停止任务
func (t *VRSyncTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[VRSyncTask] 已停止")
}

// runOnce 执行一轮同步，带超时和重入保护
func (t *VRSyncTask) runOnce() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		log.Println("[VRSyncTask] 上一轮同步尚未结束，跳过本次触发")
		return
	}
	t.running = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	report, err := t.syncService.SyncFromRemote(ctx)
	if err != nil {
		log.Printf("[VRSyncTask] 本轮同步失败: %v", err)
		return
	}
	log.Printf("[VRSyncTask] 本轮同步结束: 处理 %d 行, 新建 %d, 更新 %d",
		report.ProductsProcessed, report.Created, report.Updated.Total)
}

// ==================== 手动触发 ====================

// SyncNow 立即执行一轮同步（同步等待结果）
func (t *VRSyncTask) SyncNow(ctx context.Context) (*dto.SyncReport, error) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	t.running = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	return t.syncService.SyncFromRemote(ctx)
}
