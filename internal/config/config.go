package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/cfc-orderdesk/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Shipping  ShippingConfig  `mapstructure:"shipping"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Mode     string `mapstructure:"mode"` // debug / release
	Timezone string `mapstructure:"timezone"`
}

// Location 解析业务时区，非法时回退本地时区
func (c ServerConfig) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warnw("config_timezone_invalid", "timezone", name, "error", err)
		return time.Local
	}
	return loc
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 本地数据库配置（仅存放界面偏好与操作审计）
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// AuthConfig 共享口令登录配置
type AuthConfig struct {
	PasswordHash string `mapstructure:"password_hash"` // bcrypt 哈希
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// BackendConfig 远端订单后端配置
type BackendConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	OrderLimit     int    `mapstructure:"order_limit"`
	SnapshotTTL    int    `mapstructure:"snapshot_ttl_seconds"`
}

// Timeout 请求超时
func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ShippingConfig 发货辅助流程配置
type ShippingConfig struct {
	LTLMarkup         string       `mapstructure:"ltl_markup"`
	LiDefaultCost     string       `mapstructure:"li_default_cost"`
	LiDefaultCharge   string       `mapstructure:"li_default_charge"`
	SnapTipDays       int          `mapstructure:"snap_tip_days"`
	RLQuoteURL        string       `mapstructure:"rl_quote_url"`
	RLTrackingURL     string       `mapstructure:"rl_tracking_url"`
	PirateshipURL     string       `mapstructure:"pirateship_url"`
	NotificationEmail string       `mapstructure:"notification_email"`
	FreightClass      string       `mapstructure:"freight_class"`
	Commodity         string       `mapstructure:"commodity"`
	TeamSignature     string       `mapstructure:"team_signature"`
	BillTo            BillToConfig `mapstructure:"bill_to"`
}

// BillToConfig 运费账单抬头
type BillToConfig struct {
	Company string `mapstructure:"company"`
	Street  string `mapstructure:"street"`
	City    string `mapstructure:"city"`
	State   string `mapstructure:"state"`
	Zip     string `mapstructure:"zip"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// RateLimitConfig 登录限流配置
type RateLimitConfig struct {
	LoginWindowSeconds int `mapstructure:"login_window_seconds"`
	LoginMaxAttempts   int `mapstructure:"login_max_attempts"`
	LoginBlockSeconds  int `mapstructure:"login_block_seconds"`
}

// Load 从 .env 与 config.yml 加载配置
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		logger.Infow("config_dotenv_loaded")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("./etc")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envKeyReplacer())

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config decode failed: %w", err))
	}
	return cfg
}

// envKeyReplacer backend.base_url -> BACKEND_BASE_URL
func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Backend.BaseURL), "/")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "America/New_York")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "orderdesk.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/orderdesk.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expire_hours", 12)
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "cfc")
	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.queues", map[string]int{
		"default": 5,
		"sync":    3,
	})
	v.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	v.SetDefault("backend.timeout_seconds", 30)
	v.SetDefault("backend.order_limit", 200)
	v.SetDefault("backend.snapshot_ttl_seconds", 300)
	v.SetDefault("shipping.ltl_markup", "50")
	v.SetDefault("shipping.li_default_cost", "200")
	v.SetDefault("shipping.li_default_charge", "250")
	v.SetDefault("shipping.snap_tip_days", 14)
	v.SetDefault("shipping.rl_quote_url", "https://www.rlcarriers.com/freight/shipping/rate-quote")
	v.SetDefault("shipping.rl_tracking_url", "https://www.rlcarriers.com/freight/shipping/shipment-tracing?pro=")
	v.SetDefault("shipping.pirateship_url", "https://ship.pirateship.com/ship/single")
	v.SetDefault("shipping.notification_email", "cabinetsforcontractors@gmail.com")
	v.SetDefault("shipping.freight_class", "85")
	v.SetDefault("shipping.commodity", "RTA Cabinetry")
	v.SetDefault("shipping.team_signature", "The Cabinets For Contractors Team")
	v.SetDefault("shipping.bill_to.company", "Cabinets For Contactors-Cust Number C00VP1")
	v.SetDefault("shipping.bill_to.street", "185 Stevenson Point")
	v.SetDefault("shipping.bill_to.city", "DALLAS")
	v.SetDefault("shipping.bill_to.state", "GA")
	v.SetDefault("shipping.bill_to.zip", "30132")
	v.SetDefault("shipping.bill_to.phone", "(770) 990-4885")
	v.SetDefault("shipping.bill_to.email", "cabinetsforcontractors@gmail.com")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("rate_limit.login_window_seconds", 300)
	v.SetDefault("rate_limit.login_max_attempts", 5)
	v.SetDefault("rate_limit.login_block_seconds", 900)
}
