package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Backend.OrderLimit != 200 {
		t.Fatalf("order limit want 200 got %d", cfg.Backend.OrderLimit)
	}
	if cfg.Shipping.LTLMarkup != "50" {
		t.Fatalf("ltl markup want 50 got %s", cfg.Shipping.LTLMarkup)
	}
	if cfg.Shipping.BillTo.Zip != "30132" {
		t.Fatalf("bill to zip want 30132 got %s", cfg.Shipping.BillTo.Zip)
	}
	if cfg.Queue.Queues["sync"] != 3 {
		t.Fatalf("sync queue weight want 3 got %d", cfg.Queue.Queues["sync"])
	}
}

func TestDecodeTrimsBackendBaseURL(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("backend.base_url", " https://orders.example.com/api/ ")

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Backend.BaseURL != "https://orders.example.com/api" {
		t.Fatalf("unexpected base url: %q", cfg.Backend.BaseURL)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("BACKEND_ORDER_LIMIT", "50")
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envKeyReplacer())

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Backend.OrderLimit != 50 {
		t.Fatalf("order limit want 50 got %d", cfg.Backend.OrderLimit)
	}
}

func TestBackendTimeout(t *testing.T) {
	if got := (BackendConfig{}).Timeout(); got != 30*time.Second {
		t.Fatalf("default timeout want 30s got %s", got)
	}
	if got := (BackendConfig{TimeoutSeconds: 5}).Timeout(); got != 5*time.Second {
		t.Fatalf("timeout want 5s got %s", got)
	}
}

func TestServerLocationFallback(t *testing.T) {
	if loc := (ServerConfig{Timezone: "Not/AZone"}).Location(); loc != time.Local {
		t.Fatalf("invalid timezone should fall back to local, got %s", loc)
	}
	if loc := (ServerConfig{}).Location(); loc != time.Local {
		t.Fatalf("empty timezone should fall back to local, got %s", loc)
	}
}
