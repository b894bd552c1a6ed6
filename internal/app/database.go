package app

import (
	"fmt"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/models"
)

// InitDatabase 打开本地数据库并迁移表结构
func InitDatabase(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	pool := models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, pool, cfg.Server.Mode == "debug"); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(nil); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
