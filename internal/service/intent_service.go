package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/repository"
)

// IntentRecord 一次字段级更新意图
type IntentRecord struct {
	Action     string
	TargetType string
	TargetID   string
	Payload    models.JSON
	RequestID  string
}

// IntentError 更新意图失败，携带动作名供界面提示
type IntentError struct {
	Action string
	Err    error
}

func (e *IntentError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
}

// Unwrap 暴露底层错误
func (e *IntentError) Unwrap() error {
	return e.Err
}

// Is 所有意图失败均匹配 ErrUpdateIntentFailed
func (e *IntentError) Is(target error) bool {
	return target == ErrUpdateIntentFailed
}

// IntentService 更新意图执行与审计
type IntentService struct {
	repo repository.UpdateIntentRepository
}

// NewIntentService 创建更新意图服务
func NewIntentService(repo repository.UpdateIntentRepository) *IntentService {
	return &IntentService{repo: repo}
}

// Execute 执行一次更新意图并写入审计，失败不重试
func (s *IntentService) Execute(ctx context.Context, record IntentRecord, fn func(ctx context.Context) error) error {
	started := time.Now()
	err := fn(ctx)
	duration := time.Since(started)

	log := logger.WithRequest(record.RequestID).With(
		"action", record.Action,
		"target_type", record.TargetType,
		"target_id", record.TargetID,
		"duration_ms", duration.Milliseconds(),
	)
	result := constants.IntentResultSuccess
	errMessage := ""
	if err != nil {
		result = constants.IntentResultFailed
		errMessage = err.Error()
		log.Warnw("update_intent_failed", "error", err)
	} else {
		log.Infow("update_intent_succeeded")
	}
	s.audit(record, result, errMessage, duration)

	if err != nil {
		return &IntentError{Action: record.Action, Err: err}
	}
	return nil
}

// RecordEnqueued 记录已投递到队列的意图
func (s *IntentService) RecordEnqueued(record IntentRecord, taskID string) {
	if record.Payload == nil {
		record.Payload = models.JSON{}
	}
	if taskID != "" {
		record.Payload["task_id"] = taskID
	}
	logger.WithRequest(record.RequestID).Infow("update_intent_enqueued",
		"action", record.Action,
		"target_id", record.TargetID,
		"task_id", taskID,
	)
	s.audit(record, constants.IntentResultEnqueued, "", 0)
}

// List 分页查询审计记录
func (s *IntentService) List(filter repository.UpdateIntentListFilter) ([]models.UpdateIntent, int64, error) {
	if s == nil || s.repo == nil {
		return []models.UpdateIntent{}, 0, nil
	}
	return s.repo.List(filter)
}

// CountByResult 按结果统计
func (s *IntentService) CountByResult() (map[string]int64, error) {
	if s == nil || s.repo == nil {
		return map[string]int64{}, nil
	}
	return s.repo.CountByResult()
}

func (s *IntentService) audit(record IntentRecord, result, errMessage string, duration time.Duration) {
	if s == nil || s.repo == nil {
		return
	}
	payload := record.Payload
	if payload == nil {
		payload = models.JSON{}
	}
	row := &models.UpdateIntent{
		Action:       record.Action,
		TargetType:   record.TargetType,
		TargetID:     record.TargetID,
		PayloadJSON:  payload,
		Result:       result,
		ErrorMessage: errMessage,
		RequestID:    record.RequestID,
		DurationMS:   duration.Milliseconds(),
	}
	if err := s.repo.Create(row); err != nil {
		logger.Warnw("update_intent_audit_failed", "action", record.Action, "target_id", record.TargetID, "error", err)
	}
}

// IntentAction 提取失败的意图动作名
func IntentAction(err error) string {
	var intentErr *IntentError
	if errors.As(err, &intentErr) {
		return intentErr.Action
	}
	return ""
}
