package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cfc-orderdesk/internal/config"
	handlershared "github.com/cfc-orderdesk/internal/http/handlers/shared"
	"github.com/cfc-orderdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://desk.example.com", []string{"https://desk.example.com"}, false)
	if got != "https://desk.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://desk.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": handlershared.RequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req2.Header.Set(requestIDHeader, strings.Repeat("x", 65))
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" || len(generated) > 64 {
		t.Fatalf("oversized request id should be replaced, got %q", generated)
	}
}

func jwtStatusCode(t *testing.T, mw gin.HandlerFunc, authHeader string) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/api/v1/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "msg": handlershared.StaffRole(c)})
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode, resp.Msg
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	code, _ := jwtStatusCode(t, JWTAuthMiddleware("", nil), "Bearer abc")
	if code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "router-test-secret-0123456789", ExpireHours: 1}}
	auth := service.NewAuthService(cfg)
	mw := JWTAuthMiddleware(cfg.JWT.SecretKey, auth)

	if code, msg := jwtStatusCode(t, mw, ""); code != 401 || msg != "missing authorization header" {
		t.Fatalf("missing header want 401 got %d %q", code, msg)
	}
	if code, _ := jwtStatusCode(t, mw, "Token abc"); code != 401 {
		t.Fatalf("non bearer header want 401 got %d", code)
	}
	if code, _ := jwtStatusCode(t, mw, "Bearer not-a-jwt"); code != 401 {
		t.Fatalf("garbage token want 401 got %d", code)
	}

	token, _, err := auth.GenerateJWT()
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	code, role := jwtStatusCode(t, mw, "Bearer "+token)
	if code != 0 || role != "staff" {
		t.Fatalf("valid token should pass with staff role, got %d %q", code, role)
	}

	other := service.NewAuthService(&config.Config{JWT: config.JWTConfig{SecretKey: "another-secret-0123456789"}})
	foreign, _, err := other.GenerateJWT()
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if code, _ := jwtStatusCode(t, mw, "Bearer "+foreign); code != 401 {
		t.Fatalf("foreign token want 401 got %d", code)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://desk.example.com"}, MaxAge: 600}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight want 204 got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://desk.example.com" {
		t.Fatalf("unexpected allow origin %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("unexpected max age %q", w.Header().Get("Access-Control-Max-Age"))
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Fatalf("default methods should include PATCH")
	}
}
