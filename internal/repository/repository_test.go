package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cfc-orderdesk/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func TestSettingRepositoryUpsert(t *testing.T) {
	repo := NewSettingRepository(setupRepositoryTestDB(t))

	missing, err := repo.GetByKey("shipping_pricing")
	if err != nil || missing != nil {
		t.Fatalf("missing key should return nil, got %+v %v", missing, err)
	}
	if _, err := repo.Upsert("shipping_pricing", models.JSON{"ltl_markup": "50"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Upsert("shipping_pricing", models.JSON{"ltl_markup": "75"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	setting, err := repo.GetByKey("shipping_pricing")
	if err != nil || setting == nil {
		t.Fatalf("get failed: %v", err)
	}
	if setting.ValueJSON["ltl_markup"] != "75" {
		t.Fatalf("upsert should overwrite, got %v", setting.ValueJSON)
	}

	if _, err := repo.Upsert("snap_tip", nil); err != nil {
		t.Fatalf("upsert nil value failed: %v", err)
	}
	settings, err := repo.ListByKeys([]string{"snap_tip", "shipping_pricing", "other"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(settings) != 2 || settings[0].Key != "shipping_pricing" {
		t.Fatalf("unexpected settings %+v", settings)
	}
}

func TestUpdateIntentRepositoryList(t *testing.T) {
	repo := NewUpdateIntentRepository(setupRepositoryTestDB(t))
	now := time.Now()
	rows := []*models.UpdateIntent{
		{Action: "order.set_status", TargetType: "order", TargetID: "42", Result: "success", PayloadJSON: models.JSON{"status": "needs_bol"}, CreatedAt: now.Add(-time.Hour)},
		{Action: "shipment.save_tracking", TargetType: "shipment", TargetID: "9", Result: "failed", ErrorMessage: "backend rejected", PayloadJSON: models.JSON{"tracking_number": "1Z999"}, CreatedAt: now},
		{Action: "order.set_status", TargetType: "order", TargetID: "43", Result: "success", PayloadJSON: models.JSON{"status": "complete"}, CreatedAt: now},
	}
	for _, row := range rows {
		if err := repo.Create(row); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if err := repo.Create(nil); err != nil {
		t.Fatalf("nil create should be ignored: %v", err)
	}

	list, total, err := repo.List(UpdateIntentListFilter{Page: 1, PageSize: 10, Action: "order.set_status"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(list) != 2 || list[0].TargetID != "43" {
		t.Fatalf("unexpected list total=%d rows=%+v", total, list)
	}

	list, total, err = repo.List(UpdateIntentListFilter{Page: 1, PageSize: 10, Search: "1z999"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || list[0].TargetID != "9" {
		t.Fatalf("payload search should find tracking intent, total=%d", total)
	}

	list, total, err = repo.List(UpdateIntentListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if total != 3 || len(list) != 1 {
		t.Fatalf("page 2 want 1 row of 3 got %d of %d", len(list), total)
	}

	counts, err := repo.CountByResult()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if counts["success"] != 2 || counts["failed"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}
