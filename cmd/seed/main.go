package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cfc-orderdesk/internal/app"
	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/repository"
	"github.com/cfc-orderdesk/internal/service"
)

func main() {
	var hashOnly bool
	var force bool
	flag.BoolVar(&hashOnly, "hash", false, "read a password from stdin and print its bcrypt hash for auth.password_hash")
	flag.BoolVar(&force, "force", false, "overwrite an existing shipping_pricing setting with config defaults")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if hashOnly {
		password, err := readPassword()
		if err != nil {
			stdLog.Fatalf("read password failed: %v", err)
		}
		hash, err := service.NewAuthService(cfg).HashPassword(password)
		if err != nil {
			stdLog.Fatalf("hash password failed: %v", err)
		}
		fmt.Println(hash)
		return
	}

	if err := app.InitDatabase(cfg); err != nil {
		stdLog.Fatalf("database setup failed: %v", err)
	}
	defer func() {
		if err := models.CloseDB(); err != nil {
			stdLog.Printf("close database failed: %v", err)
		}
	}()

	settings := service.NewSettingService(repository.NewSettingRepository(models.DB), cfg.Shipping)
	seeded, err := seedShippingPricing(settings, cfg.Shipping, force)
	if err != nil {
		stdLog.Fatalf("seed shipping pricing failed: %v", err)
	}
	if seeded {
		stdLog.Printf("shipping_pricing seeded from config defaults")
	} else {
		stdLog.Printf("shipping_pricing already present, skipped (use -force to overwrite)")
	}
}

// seedShippingPricing 写入默认定价参数，已存在时仅在 force 下覆盖
func seedShippingPricing(settings *service.SettingService, shipping config.ShippingConfig, force bool) (bool, error) {
	if !force {
		existing, err := settings.GetByKey("shipping_pricing")
		if err != nil {
			return false, err
		}
		if existing != nil {
			return false, nil
		}
	}
	defaults := service.ShippingPricingDefaultSetting(shipping)
	if _, err := settings.UpdateShippingPricing(service.ShippingPricingSettingToMap(defaults, defaults)); err != nil {
		return false, err
	}
	return true, nil
}

func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	return password, nil
}
