package queue

import (
	"encoding/json"

	"github.com/cfc-orderdesk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskRegenerateSummaries 批量重建 AI 摘要
	TaskRegenerateSummaries = constants.TaskRegenerateSummaries
	// TaskRegenerateOrderSummary 单个订单重建 AI 摘要
	TaskRegenerateOrderSummary = constants.TaskRegenerateOrderSummary
	// TaskGmailSync Gmail 同步
	TaskGmailSync = constants.TaskGmailSync
	// TaskB2BWaveSync B2BWave 同步
	TaskB2BWaveSync = constants.TaskB2BWaveSync
	// TaskSyncAll Gmail 与 B2BWave 并发同步
	TaskSyncAll = constants.TaskSyncAll
	// TaskRefreshOrderSnapshot 刷新订单快照
	TaskRefreshOrderSnapshot = constants.TaskRefreshOrderSnapshot
)

// RegenerateSummariesPayload 批量摘要任务载荷
type RegenerateSummariesPayload struct {
	IncludeArchived bool   `json:"include_archived"`
	RequestID       string `json:"request_id,omitempty"`
}

// RegenerateOrderSummaryPayload 单订单摘要任务载荷
type RegenerateOrderSummaryPayload struct {
	OrderID   string `json:"order_id"`
	RequestID string `json:"request_id,omitempty"`
}

// GmailSyncPayload Gmail 同步任务载荷
type GmailSyncPayload struct {
	HoursBack int    `json:"hours_back"`
	RequestID string `json:"request_id,omitempty"`
}

// B2BWaveSyncPayload B2BWave 同步任务载荷
type B2BWaveSyncPayload struct {
	DaysBack  int    `json:"days_back"`
	RequestID string `json:"request_id,omitempty"`
}

// SyncAllPayload 全量同步任务载荷
type SyncAllPayload struct {
	HoursBack int    `json:"hours_back"`
	DaysBack  int    `json:"days_back"`
	RequestID string `json:"request_id,omitempty"`
}

// RefreshOrderSnapshotPayload 快照刷新任务载荷
type RefreshOrderSnapshotPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewRegenerateSummariesTask 创建批量摘要任务
func NewRegenerateSummariesTask(payload RegenerateSummariesPayload) (*asynq.Task, error) {
	return newTask(TaskRegenerateSummaries, payload)
}

// NewRegenerateOrderSummaryTask 创建单订单摘要任务
func NewRegenerateOrderSummaryTask(payload RegenerateOrderSummaryPayload) (*asynq.Task, error) {
	return newTask(TaskRegenerateOrderSummary, payload)
}

// NewGmailSyncTask 创建 Gmail 同步任务
func NewGmailSyncTask(payload GmailSyncPayload) (*asynq.Task, error) {
	return newTask(TaskGmailSync, payload)
}

// NewB2BWaveSyncTask 创建 B2BWave 同步任务
func NewB2BWaveSyncTask(payload B2BWaveSyncPayload) (*asynq.Task, error) {
	return newTask(TaskB2BWaveSync, payload)
}

// NewSyncAllTask 创建全量同步任务
func NewSyncAllTask(payload SyncAllPayload) (*asynq.Task, error) {
	return newTask(TaskSyncAll, payload)
}

// NewRefreshOrderSnapshotTask 创建快照刷新任务
func NewRefreshOrderSnapshotTask(payload RefreshOrderSnapshotPayload) (*asynq.Task, error) {
	return newTask(TaskRefreshOrderSnapshot, payload)
}

func newTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
