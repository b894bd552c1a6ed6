package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T, passwordHash string) *Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "test-secret-key-0123456789", ExpireHours: 1},
		Auth:    config.AuthConfig{PasswordHash: passwordHash},
		Backend: config.BackendConfig{BaseURL: "http://backend.test"},
	}
	return New(provider.NewContainerWithBackends(cfg, db, nil, nil))
}

func perform(t *testing.T, handler gin.HandlerFunc, method, body string) envelope {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	if w.Code != http.StatusOK {
		t.Fatalf("want http 200 got %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return resp
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("desk-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h := newTestHandler(t, string(hash))

	resp := perform(t, h.Login, http.MethodPost, `{"password":"desk-pass"}`)
	if resp.StatusCode != 0 {
		t.Fatalf("login should succeed, got %+v", resp)
	}
	var login LoginResponse
	if err := json.Unmarshal(resp.Data, &login); err != nil || login.Token == "" {
		t.Fatalf("token missing: %s", resp.Data)
	}
	if _, err := h.AuthService.ParseJWT(login.Token); err != nil {
		t.Fatalf("issued token should parse: %v", err)
	}

	resp = perform(t, h.Login, http.MethodPost, `{"password":"nope"}`)
	if resp.StatusCode != 401 || resp.Msg != "incorrect password" {
		t.Fatalf("unexpected wrong password response %+v", resp)
	}

	resp = perform(t, h.Login, http.MethodPost, `{}`)
	if resp.StatusCode != 400 {
		t.Fatalf("missing password want 400 got %d", resp.StatusCode)
	}
}

func TestLoginNotConfigured(t *testing.T) {
	h := newTestHandler(t, "")
	resp := perform(t, h.Login, http.MethodPost, `{"password":"anything"}`)
	if resp.StatusCode != 503 {
		t.Fatalf("want 503 got %+v", resp)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, "")
	resp := perform(t, h.Health, http.MethodGet, "")
	var view HealthView
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("decode health failed: %v", err)
	}
	if view.Status != "ok" || view.RedisEnabled || view.QueueEnabled || !view.BackendConfigured {
		t.Fatalf("unexpected health %+v", view)
	}
}
