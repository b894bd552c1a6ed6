package service

import (
	"errors"
	"testing"

	"github.com/cfc-orderdesk/internal/config"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		cfg.Auth.PasswordHash = string(hash)
	}
	return NewAuthService(cfg)
}

func TestAuthLoginAndParse(t *testing.T) {
	svc := newTestAuthService(t, "cabinets")
	token, expiresAt, err := svc.Login("cabinets")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("login should return token and expiry")
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "staff" || claims.ID == "" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, "cabinets")
	if _, _, err := svc.Login("nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
}

func TestAuthNotConfigured(t *testing.T) {
	svc := newTestAuthService(t, "")
	if _, _, err := svc.Login("anything"); !errors.Is(err, ErrAuthNotConfigured) {
		t.Fatalf("want ErrAuthNotConfigured got %v", err)
	}
}

func TestParseJWTRejectsForeignSecret(t *testing.T) {
	svc := newTestAuthService(t, "cabinets")
	token, _, err := svc.GenerateJWT()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	other := newTestAuthService(t, "cabinets")
	other.cfg.JWT.SecretKey = "other-secret"
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}
