package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSyncRateLimiter_Check(t *testing.T) {
	limiter := &SyncRateLimiter{}

	first := limiter.Check("sync:test", time.Minute)
	if !first.Allowed {
		t.Fatal("首次触发应放行")
	}

	second := limiter.Check("sync:test", time.Minute)
	if second.Allowed {
		t.Fatal("冷却期内应拦截")
	}
	if second.RetryAfter <= 0 || second.RetryAfter > time.Minute {
		t.Errorf("retry_after = %v, 应在 (0, 1m] 区间", second.RetryAfter)
	}

	// 不同 key 互不影响
	other := limiter.Check("sync:other", time.Minute)
	if !other.Allowed {
		t.Error("不同 key 不应共享冷却")
	}

	// 重置后立即放行
	limiter.Reset("sync:test")
	if !limiter.Check("sync:test", time.Minute).Allowed {
		t.Error("重置后应放行")
	}
}

func TestSyncRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/sync", SyncRateLimit("test-platform", time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 200})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("首次触发 status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("冷却期内 status = %d, want 429", w.Code)
	}
}

func TestFormatRetryMessage(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "同步冷却中，请 30 秒后重试"},
		{2 * time.Minute, "同步冷却中，请 2 分钟后重试"},
		{90 * time.Second, "同步冷却中，请 1 分 30 秒后重试"},
	}
	for _, tt := range tests {
		if got := formatRetryMessage(tt.d); got != tt.want {
			t.Errorf("formatRetryMessage(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
