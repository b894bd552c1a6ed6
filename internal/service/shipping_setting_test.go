package service

import (
	"testing"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/constants"
)

func TestShippingPricingDefaultsFromConfig(t *testing.T) {
	setting := ShippingPricingDefaultSetting(config.ShippingConfig{LTLMarkup: "75", LiDefaultCost: "bad", SnapTipDays: 0})
	if setting.LTLMarkup.String() != "75.00" {
		t.Fatalf("markup want 75.00 got %s", setting.LTLMarkup.String())
	}
	if setting.LiDefaultCost.String() != "200.00" || setting.LiDefaultCharge.String() != "250.00" {
		t.Fatalf("invalid config should fall back to builtin li prices, got %+v", setting)
	}
	if setting.SnapTipDays != 14 {
		t.Fatalf("snap tip days want 14 got %d", setting.SnapTipDays)
	}
}

func TestSettingServiceShippingPricingRoundTrip(t *testing.T) {
	svc := newTestSettingService(t)

	initial, err := svc.GetShippingPricing()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if initial.LTLMarkup.String() != "50.00" {
		t.Fatalf("default markup want 50.00 got %s", initial.LTLMarkup.String())
	}

	updated, err := svc.UpdateShippingPricing(map[string]interface{}{
		"ltl_markup":        "65.5",
		"li_default_cost":   -1,
		"li_default_charge": float64(300),
		"snap_tip_days":     "999",
		"unknown":           true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.LTLMarkup.String() != "65.50" || updated.LiDefaultCharge.String() != "300.00" {
		t.Fatalf("unexpected updated pricing %+v", updated)
	}
	if updated.LiDefaultCost.String() != "200.00" || updated.SnapTipDays != 14 {
		t.Fatalf("invalid values should fall back, got %+v", updated)
	}

	stored, err := svc.GetByKey(constants.SettingKeyShippingPricing)
	if err != nil {
		t.Fatalf("get raw failed: %v", err)
	}
	if _, ok := stored["unknown"]; ok {
		t.Fatalf("normalized setting must drop unknown keys: %v", stored)
	}

	options, err := svc.RouterOptions()
	if err != nil {
		t.Fatalf("router options failed: %v", err)
	}
	if options.Markup.String() != "65.50" || options.RLQuoteURL != "https://rl.example/rate-quote" {
		t.Fatalf("unexpected router options %+v", options)
	}
}

func TestNilSettingServiceUsesDefaults(t *testing.T) {
	var svc *SettingService
	setting, err := svc.GetShippingPricing()
	if err != nil || setting.LTLMarkup.String() != "50.00" {
		t.Fatalf("nil service should return defaults, got %+v %v", setting, err)
	}
}
