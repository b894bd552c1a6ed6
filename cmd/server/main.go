package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/cfc-orderdesk/internal/app"
	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if isWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("jwt.secret is weak or still the default; set a random secret of at least 32 characters")
		}
		stdLog.Printf("warning: jwt.secret is weak or still the default; replace it before production")
	}
	if strings.TrimSpace(cfg.Auth.PasswordHash) == "" {
		stdLog.Printf("warning: auth.password_hash is empty; login is disabled until it is set (see cmd/seed -hash)")
	}
	if strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		stdLog.Printf("warning: backend.base_url is empty; order data is unavailable")
	}

	if err := app.InitDatabase(cfg); err != nil {
		stdLog.Fatalf("database setup failed: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("server exited: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + ansiBold + "CFC Order Desk" + ansiReset)
	fmt.Println(ansiDim + "order board, shipping workflow and sync triggers" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key")
}
