package vr

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://www.vintageandrare.com"

// ==================== Client V&R 站点客户端 ====================

// Config 客户端配置
type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// Client Vintage & Rare 站点客户端
// V&R 没有开放 API，库存快照通过「表单登录 + 导出 CSV」获取。
type Client struct {
	http     *resty.Client
	baseURL  string
	username string
	password string
	loggedIn bool
}

// NewClient 创建客户端
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(3)
	client.SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")

	return &Client{
		http:     client,
		baseURL:  baseURL,
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Login 表单登录，会话 Cookie 由 resty 自动保持
func (c *Client) Login(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username":   c.username,
			"pass":       c.password,
			"open_where": "header",
		}).
		Post(c.baseURL + "/do_login")
	if err != nil {
		return fmt.Errorf("登录请求失败: %w", err)
	}

	// 登录失败时 V&R 返回 200 并回到登录页，靠响应体判断
	if resp.StatusCode() >= 400 || bytes.Contains(resp.Body(), []byte("Sign in to your account")) {
		return fmt.Errorf("V&R 登录被拒绝 [%d]", resp.StatusCode())
	}

	c.loggedIn = true
	log.Println("[VRClient] V&R 登录成功")
	return nil
}

// FetchInventory 下载并解析库存导出
// 实现 service.SnapshotProvider。返回的行已规范化，字段解析交给下游校验。
func (c *Client) FetchInventory(ctx context.Context) ([]ListingRow, error) {
	if !c.loggedIn {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/instruments/exported_inventory/export_inventory_vintageandrare")
	if err != nil {
		return nil, fmt.Errorf("下载库存导出失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("库存导出接口异常 [%d]", resp.StatusCode())
	}

	rows, err := ParseInventoryCSV(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("解析库存 CSV 失败: %w", err)
	}

	log.Printf("[VRClient] 库存快照下载完成: %d 行", len(rows))
	return rows, nil
}
