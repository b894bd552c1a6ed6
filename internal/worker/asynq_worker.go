package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/provider"
	"github.com/cfc-orderdesk/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskRegenerateSummaries, c.handleRegenerateSummaries)
	mux.HandleFunc(queue.TaskRegenerateOrderSummary, c.handleRegenerateOrderSummary)
	mux.HandleFunc(queue.TaskGmailSync, c.handleGmailSync)
	mux.HandleFunc(queue.TaskB2BWaveSync, c.handleB2BWaveSync)
	mux.HandleFunc(queue.TaskSyncAll, c.handleSyncAll)
	mux.HandleFunc(queue.TaskRefreshOrderSnapshot, c.handleRefreshOrderSnapshot)
}

func (c *Consumer) handleRegenerateSummaries(ctx context.Context, task *asynq.Task) error {
	var payload queue.RegenerateSummariesPayload
	if !c.decode(task, "regenerate_summaries", &payload) {
		return nil
	}
	result, err := c.SyncService.RunRegenerateSummaries(ctx, payload.IncludeArchived, payload.RequestID)
	if err != nil {
		logger.WithRequest(payload.RequestID).Warnw("worker_regenerate_summaries_failed", "error", err)
		return err
	}
	logger.WithRequest(payload.RequestID).Infow("worker_regenerate_summaries_done",
		"success", result.Success,
		"total", result.Total,
	)
	return nil
}

func (c *Consumer) handleRegenerateOrderSummary(ctx context.Context, task *asynq.Task) error {
	var payload queue.RegenerateOrderSummaryPayload
	if !c.decode(task, "regenerate_order_summary", &payload) {
		return nil
	}
	orderID := strings.TrimSpace(payload.OrderID)
	if orderID == "" {
		logger.Debugw("worker_regenerate_order_summary_skip_invalid_payload")
		return nil
	}
	if _, err := c.SyncService.RunRegenerateOrderSummary(ctx, orderID, payload.RequestID); err != nil {
		logger.WithRequest(payload.RequestID).Warnw("worker_regenerate_order_summary_failed", "order_id", orderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleGmailSync(ctx context.Context, task *asynq.Task) error {
	var payload queue.GmailSyncPayload
	if !c.decode(task, "gmail_sync", &payload) {
		return nil
	}
	if _, err := c.SyncService.RunGmailSync(ctx, payload.HoursBack, payload.RequestID); err != nil {
		logger.WithRequest(payload.RequestID).Warnw("worker_gmail_sync_failed", "hours_back", payload.HoursBack, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleB2BWaveSync(ctx context.Context, task *asynq.Task) error {
	var payload queue.B2BWaveSyncPayload
	if !c.decode(task, "b2bwave_sync", &payload) {
		return nil
	}
	if _, err := c.SyncService.RunB2BWaveSync(ctx, payload.DaysBack, payload.RequestID); err != nil {
		logger.WithRequest(payload.RequestID).Warnw("worker_b2bwave_sync_failed", "days_back", payload.DaysBack, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleSyncAll(ctx context.Context, task *asynq.Task) error {
	var payload queue.SyncAllPayload
	if !c.decode(task, "sync_all", &payload) {
		return nil
	}
	if _, err := c.SyncService.RunSyncAll(ctx, payload.HoursBack, payload.DaysBack, payload.RequestID); err != nil {
		logger.WithRequest(payload.RequestID).Warnw("worker_sync_all_failed", "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleRefreshOrderSnapshot(ctx context.Context, task *asynq.Task) error {
	var payload queue.RefreshOrderSnapshotPayload
	if !c.decode(task, "refresh_order_snapshot", &payload) {
		return nil
	}
	snapshot, err := c.OrderService.Refresh(ctx)
	if err != nil {
		logger.Warnw("worker_refresh_order_snapshot_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Debugw("worker_refresh_order_snapshot_done", "reason", payload.Reason, "count", len(snapshot.Orders))
	return nil
}

// decode 解析任务载荷；消费者未就绪或载荷非法时跳过任务
func (c *Consumer) decode(task *asynq.Task, name string, dest interface{}) bool {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_task_skip_nil", "task", name, "consumer_nil", c == nil, "task_nil", task == nil)
		return false
	}
	if c.SyncService == nil || c.OrderService == nil {
		logger.Warnw("worker_task_skip_service_nil", "task", name)
		return false
	}
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		logger.Warnw("worker_task_unmarshal_failed", "task", name, "error", err)
		return false
	}
	return true
}
