package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func testShippingConfig() config.ShippingConfig {
	return config.ShippingConfig{
		LTLMarkup:         "50",
		LiDefaultCost:     "200",
		LiDefaultCharge:   "250",
		SnapTipDays:       14,
		RLQuoteURL:        "https://rl.example/rate-quote",
		RLTrackingURL:     "https://rl.example/trace?pro=",
		PirateshipURL:     "https://ps.example/ship/single",
		NotificationEmail: "desk@example.com",
		FreightClass:      "85",
		Commodity:         "RTA Cabinetry",
		TeamSignature:     "The Desk Team",
		BillTo: config.BillToConfig{
			Company: "Desk Co",
			Street:  "1 Main St",
			City:    "DALLAS",
			State:   "GA",
			Zip:     "30132",
			Phone:   "(770) 990-4885",
			Email:   "desk@example.com",
		},
	}
}

func newTestSettingService(t *testing.T) *SettingService {
	t.Helper()
	return NewSettingService(repository.NewSettingRepository(setupServiceTestDB(t)), testShippingConfig())
}
