package app

import (
	"errors"
	"net"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/provider"
	"github.com/cfc-orderdesk/internal/router"
	"github.com/cfc-orderdesk/internal/worker"
)

// ErrQueueDisabled worker 模式要求启用队列
var ErrQueueDisabled = errors.New("worker mode requires queue.enabled=true")

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, ErrQueueDisabled
	}

	container := provider.NewContainer(cfg)
	runner, err := buildRunner(cfg, container, mode)
	if err != nil {
		if closeErr := container.Close(); closeErr != nil {
			logger.Warnw("app_container_close_failed", "error", closeErr)
		}
		return nil, err
	}
	return runner, nil
}

func buildRunner(cfg *config.Config, container *provider.Container, mode string) (*Runner, error) {
	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(listenAddr(cfg), engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer, cfg.Backend.SnapshotTTL)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			logger.Infow("app_worker_skipped", "reason", "queue_disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	runner := NewRunner(services...)
	runner.OnClose(container.Close)
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if err := validateMode(opts.Mode); err != nil {
		return err
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config),
		"mode", opts.Mode,
		"backend", opts.Config.Backend.BaseURL,
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}
