package service

import (
	"context"
	"strings"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/queue"

	"golang.org/x/sync/errgroup"
)

// 同步执行方式
const (
	SyncModeEnqueued = "enqueued"
	SyncModeInline   = "inline"
)

// SyncResult 同步任务触发结果
type SyncResult struct {
	Action string      `json:"action"`
	Mode   string      `json:"mode"`
	TaskID string      `json:"task_id,omitempty"`
	Result interface{} `json:"result,omitempty"`
}

// SyncAllResult Gmail 与 B2BWave 并发同步结果
type SyncAllResult struct {
	Gmail   models.JSON `json:"gmail"`
	B2BWave models.JSON `json:"b2bwave"`
}

// SyncService 摘要重建与外部同步
type SyncService struct {
	backend SyncBackend
	queue   *queue.Client
	intents *IntentService
	orders  *OrderService
}

// NewSyncService 创建同步服务
func NewSyncService(syncBackend SyncBackend, queueClient *queue.Client, intents *IntentService, orders *OrderService) *SyncService {
	return &SyncService{
		backend: syncBackend,
		queue:   queueClient,
		intents: intents,
		orders:  orders,
	}
}

// RegenerateSummaries 重建全部订单摘要
func (s *SyncService) RegenerateSummaries(ctx context.Context, includeArchived bool, requestID string) (*SyncResult, error) {
	record := s.record(constants.IntentRegenerateSummaries, "summaries", models.JSON{"include_archived": includeArchived}, requestID)
	if s.queue.Enabled() {
		taskID, err := s.queue.EnqueueRegenerateSummaries(queue.RegenerateSummariesPayload{IncludeArchived: includeArchived, RequestID: requestID})
		return s.enqueued(record, taskID, err)
	}
	result, err := s.RunRegenerateSummaries(ctx, includeArchived, requestID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Action: record.Action, Mode: SyncModeInline, Result: result}, nil
}

// RegenerateOrderSummary 重建单个订单摘要
func (s *SyncService) RegenerateOrderSummary(ctx context.Context, orderID, requestID string) (*SyncResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	record := s.record(constants.IntentRegenerateSummary, orderID, models.JSON{}, requestID)
	record.TargetType = models.IntentTargetOrder
	if s.queue.Enabled() {
		taskID, err := s.queue.EnqueueRegenerateOrderSummary(queue.RegenerateOrderSummaryPayload{OrderID: orderID, RequestID: requestID})
		return s.enqueued(record, taskID, err)
	}
	result, err := s.RunRegenerateOrderSummary(ctx, orderID, requestID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Action: record.Action, Mode: SyncModeInline, Result: result}, nil
}

// SyncGmail 同步 Gmail
func (s *SyncService) SyncGmail(ctx context.Context, hoursBack int, requestID string) (*SyncResult, error) {
	hoursBack = normalizeHoursBack(hoursBack)
	record := s.record(constants.IntentGmailSync, "gmail", models.JSON{"hours_back": hoursBack}, requestID)
	if s.queue.Enabled() {
		taskID, err := s.queue.EnqueueGmailSync(queue.GmailSyncPayload{HoursBack: hoursBack, RequestID: requestID})
		return s.enqueued(record, taskID, err)
	}
	result, err := s.RunGmailSync(ctx, hoursBack, requestID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Action: record.Action, Mode: SyncModeInline, Result: result}, nil
}

// SyncB2BWave 同步 B2BWave
func (s *SyncService) SyncB2BWave(ctx context.Context, daysBack int, requestID string) (*SyncResult, error) {
	daysBack = normalizeDaysBack(daysBack)
	record := s.record(constants.IntentB2BWaveSync, "b2bwave", models.JSON{"days_back": daysBack}, requestID)
	if s.queue.Enabled() {
		taskID, err := s.queue.EnqueueB2BWaveSync(queue.B2BWaveSyncPayload{DaysBack: daysBack, RequestID: requestID})
		return s.enqueued(record, taskID, err)
	}
	result, err := s.RunB2BWaveSync(ctx, daysBack, requestID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Action: record.Action, Mode: SyncModeInline, Result: result}, nil
}

// SyncAll 并发同步 Gmail 与 B2BWave
func (s *SyncService) SyncAll(ctx context.Context, hoursBack, daysBack int, requestID string) (*SyncResult, error) {
	hoursBack = normalizeHoursBack(hoursBack)
	daysBack = normalizeDaysBack(daysBack)
	if s.queue.Enabled() {
		record := s.record(constants.IntentSyncAll, "all", models.JSON{"hours_back": hoursBack, "days_back": daysBack}, requestID)
		taskID, err := s.queue.EnqueueSyncAll(queue.SyncAllPayload{HoursBack: hoursBack, DaysBack: daysBack, RequestID: requestID})
		return s.enqueued(record, taskID, err)
	}
	result, err := s.RunSyncAll(ctx, hoursBack, daysBack, requestID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Action: constants.IntentSyncAll, Mode: SyncModeInline, Result: result}, nil
}

// RunRegenerateSummaries 直接调用后端重建摘要
func (s *SyncService) RunRegenerateSummaries(ctx context.Context, includeArchived bool, requestID string) (*backend.SummaryBatchResult, error) {
	var result *backend.SummaryBatchResult
	record := s.record(constants.IntentRegenerateSummaries, "summaries", models.JSON{"include_archived": includeArchived}, requestID)
	err := s.run(ctx, record, func(ctx context.Context) error {
		var err error
		result, err = s.backend.RegenerateSummaries(ctx, includeArchived)
		return err
	})
	return result, err
}

// RunRegenerateOrderSummary 直接调用后端重建单个订单摘要
func (s *SyncService) RunRegenerateOrderSummary(ctx context.Context, orderID, requestID string) (*backend.OrderSummaryResult, error) {
	var result *backend.OrderSummaryResult
	record := s.record(constants.IntentRegenerateSummary, orderID, models.JSON{}, requestID)
	record.TargetType = models.IntentTargetOrder
	err := s.run(ctx, record, func(ctx context.Context) error {
		var err error
		result, err = s.backend.RegenerateOrderSummary(ctx, orderID)
		return err
	})
	return result, err
}

// RunGmailSync 直接调用后端同步 Gmail
func (s *SyncService) RunGmailSync(ctx context.Context, hoursBack int, requestID string) (models.JSON, error) {
	hoursBack = normalizeHoursBack(hoursBack)
	var result models.JSON
	record := s.record(constants.IntentGmailSync, "gmail", models.JSON{"hours_back": hoursBack}, requestID)
	err := s.run(ctx, record, func(ctx context.Context) error {
		var err error
		result, err = s.backend.SyncGmail(ctx, hoursBack)
		return err
	})
	return result, err
}

// RunB2BWaveSync 直接调用后端同步 B2BWave
func (s *SyncService) RunB2BWaveSync(ctx context.Context, daysBack int, requestID string) (models.JSON, error) {
	daysBack = normalizeDaysBack(daysBack)
	var result models.JSON
	record := s.record(constants.IntentB2BWaveSync, "b2bwave", models.JSON{"days_back": daysBack}, requestID)
	err := s.run(ctx, record, func(ctx context.Context) error {
		var err error
		result, err = s.backend.SyncB2BWave(ctx, daysBack)
		return err
	})
	return result, err
}

// RunSyncAll 并发执行 Gmail 与 B2BWave 同步，任一失败即返回
func (s *SyncService) RunSyncAll(ctx context.Context, hoursBack, daysBack int, requestID string) (*SyncAllResult, error) {
	result := &SyncAllResult{}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		gmail, err := s.RunGmailSync(groupCtx, hoursBack, requestID)
		result.Gmail = gmail
		return err
	})
	group.Go(func() error {
		b2bwave, err := s.RunB2BWaveSync(groupCtx, daysBack, requestID)
		result.B2BWave = b2bwave
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SyncService) run(ctx context.Context, record IntentRecord, fn func(ctx context.Context) error) error {
	if s.backend == nil {
		return &IntentError{Action: record.Action, Err: ErrSyncFailed}
	}
	if err := s.intents.Execute(ctx, record, fn); err != nil {
		return err
	}
	if s.orders != nil {
		s.orders.Invalidate()
	}
	return nil
}

func (s *SyncService) enqueued(record IntentRecord, taskID string, err error) (*SyncResult, error) {
	if err != nil {
		return nil, &IntentError{Action: record.Action, Err: err}
	}
	s.intents.RecordEnqueued(record, taskID)
	return &SyncResult{Action: record.Action, Mode: SyncModeEnqueued, TaskID: taskID}, nil
}

func (s *SyncService) record(action, targetID string, payload models.JSON, requestID string) IntentRecord {
	return IntentRecord{
		Action:     action,
		TargetType: models.IntentTargetSync,
		TargetID:   targetID,
		Payload:    payload,
		RequestID:  requestID,
	}
}

func normalizeHoursBack(hoursBack int) int {
	if hoursBack <= 0 {
		return constants.DefaultGmailSyncHoursBack
	}
	return hoursBack
}

func normalizeDaysBack(daysBack int) int {
	if daysBack <= 0 {
		return constants.DefaultB2BWaveSyncDaysBack
	}
	return daysBack
}
