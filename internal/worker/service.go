package worker

import (
	"context"
	"errors"
	"time"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name            string
	server          *asynq.Server
	mux             *asynq.ServeMux
	consumer        *Consumer
	client          *queue.Client
	refreshInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer, snapshotTTLSeconds int) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	var client *queue.Client
	if consumer.Container != nil {
		client = consumer.QueueClient
	}
	return &Service{
		name:            "worker",
		server:          server,
		mux:             mux,
		consumer:        consumer,
		client:          client,
		refreshInterval: snapshotRefreshInterval(snapshotTTLSeconds),
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.client.Enabled() && s.refreshInterval > 0 {
		go s.runSnapshotRefreshLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSnapshotRefreshLoop 按快照有效期的一半定时投递刷新任务，保持共享快照新鲜
func (s *Service) runSnapshotRefreshLoop(ctx context.Context) {
	enqueue := func(reason string) {
		if err := s.client.EnqueueRefreshOrderSnapshot(queue.RefreshOrderSnapshotPayload{Reason: reason}, 0); err != nil {
			logger.Warnw("worker_enqueue_snapshot_refresh_failed", "reason", reason, "error", err)
		}
	}
	enqueue("startup")

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueue("interval")
		}
	}
}

func snapshotRefreshInterval(ttlSeconds int) time.Duration {
	if ttlSeconds <= 0 {
		return 0
	}
	interval := time.Duration(ttlSeconds) * time.Second / 2
	if interval < 30*time.Second {
		return 30 * time.Second
	}
	return interval
}
