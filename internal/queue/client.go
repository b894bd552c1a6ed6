package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// SyncQueue 同步任务队列
	SyncQueue = constants.QueueSync

	syncTaskTimeout = 10 * time.Minute
)

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
	syncQueue    string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue, syncQueue: SyncQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
		syncQueue:    SyncQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueRegenerateSummaries 推送批量摘要任务，返回任务 ID；未启用时返回空串
func (c *Client) EnqueueRegenerateSummaries(payload RegenerateSummariesPayload) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	task, err := NewRegenerateSummariesTask(payload)
	if err != nil {
		return "", err
	}
	return c.enqueueSync(task)
}

// EnqueueRegenerateOrderSummary 推送单订单摘要任务
func (c *Client) EnqueueRegenerateOrderSummary(payload RegenerateOrderSummaryPayload) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	task, err := NewRegenerateOrderSummaryTask(payload)
	if err != nil {
		return "", err
	}
	return c.enqueueSync(task)
}

// EnqueueGmailSync 推送 Gmail 同步任务
func (c *Client) EnqueueGmailSync(payload GmailSyncPayload) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	task, err := NewGmailSyncTask(payload)
	if err != nil {
		return "", err
	}
	return c.enqueueSync(task)
}

// EnqueueB2BWaveSync 推送 B2BWave 同步任务
func (c *Client) EnqueueB2BWaveSync(payload B2BWaveSyncPayload) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	task, err := NewB2BWaveSyncTask(payload)
	if err != nil {
		return "", err
	}
	return c.enqueueSync(task)
}

// EnqueueSyncAll 推送全量同步任务
func (c *Client) EnqueueSyncAll(payload SyncAllPayload) (string, error) {
	if !c.Enabled() {
		return "", nil
	}
	task, err := NewSyncAllTask(payload)
	if err != nil {
		return "", err
	}
	return c.enqueueSync(task)
}

// EnqueueRefreshOrderSnapshot 推送快照刷新任务
func (c *Client) EnqueueRefreshOrderSnapshot(payload RefreshOrderSnapshotPayload, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	task, err := NewRefreshOrderSnapshotTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{asynq.Queue(c.defaultQueue), asynq.ProcessIn(delay), asynq.MaxRetry(0)}
	_, err = c.client.Enqueue(task, options...)
	return err
}

// 同步任务失败不重试，由操作人员手动再次触发
func (c *Client) enqueueSync(task *asynq.Task) (string, error) {
	info, err := c.client.Enqueue(task, asynq.Queue(c.syncQueue), asynq.MaxRetry(0), asynq.Timeout(syncTaskTimeout))
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 4
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 2, SyncQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
