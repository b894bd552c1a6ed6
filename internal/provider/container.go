package provider

import (
	"errors"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/cache"
	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/queue"
	"github.com/cfc-orderdesk/internal/repository"
	"github.com/cfc-orderdesk/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config        *config.Config
	QueueClient   *queue.Client
	BackendClient *backend.Client

	// Repositories
	SettingRepo      repository.SettingRepository
	UpdateIntentRepo repository.UpdateIntentRepository

	// Services
	AuthService       *service.AuthService
	SettingService    *service.SettingService
	PreferenceService *service.PreferenceService
	IntentService     *service.IntentService
	OrderService      *service.OrderService
	ShipmentService   *service.ShipmentService
	SyncService       *service.SyncService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，失败时同步任务回退为直接执行
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:        cfg,
		QueueClient:   queueClient,
		BackendClient: backend.NewClient(cfg.Backend),
	}
	c.initRepositories(models.DB)
	c.initServices(c.BackendClient, c.BackendClient)
	return c
}

// NewContainerWithBackends 使用指定的后端实现创建容器，不初始化 Redis 与队列
func NewContainerWithBackends(cfg *config.Config, db *gorm.DB, orderBackend service.OrderBackend, syncBackend service.SyncBackend) *Container {
	c := &Container{Config: cfg}
	c.initRepositories(db)
	c.initServices(orderBackend, syncBackend)
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.SettingRepo = repository.NewSettingRepository(db)
	c.UpdateIntentRepo = repository.NewUpdateIntentRepository(db)
}

func (c *Container) initServices(orderBackend service.OrderBackend, syncBackend service.SyncBackend) {
	c.AuthService = service.NewAuthService(c.Config)
	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config.Shipping)
	c.PreferenceService = service.NewPreferenceService(c.SettingService)
	c.IntentService = service.NewIntentService(c.UpdateIntentRepo)
	c.OrderService = service.NewOrderService(orderBackend, c.IntentService, c.Config.Backend, c.Config.Server.Location())
	c.ShipmentService = service.NewShipmentService(c.OrderService, orderBackend, c.SettingService, c.IntentService)
	c.SyncService = service.NewSyncService(syncBackend, c.QueueClient, c.IntentService, c.OrderService)
}

// Close 释放队列、缓存与数据库连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.QueueClient.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := cache.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := models.CloseDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
