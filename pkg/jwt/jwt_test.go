package jwt

import (
	"testing"
	"time"

	"github.com/S-Soo100/Resource-Planning-System-sub004/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-0123456789",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken(42, "kim@kars.co.kr", "Kim", "moderator", 7)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "kim@kars.co.kr" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Name != "Kim" {
		t.Errorf("Name = %q, want Kim", claims.Name)
	}
	if claims.AccessLevel != "moderator" {
		t.Errorf("AccessLevel = %q", claims.AccessLevel)
	}
	if claims.TeamID != 7 {
		t.Errorf("TeamID = %d, want 7", claims.TeamID)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("expected non-empty jti")
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := newTestManager(-1 * time.Minute)

	token, err := m.GenerateAccessToken(1, "a@b.c", "A", "user", 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("ParseToken = %v, want ErrTokenExpired", err)
	}
}

func TestParseGarbageToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	if _, err := m.ParseToken("not-a-token"); err != ErrTokenInvalid {
		t.Errorf("ParseToken = %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateRefreshToken(5, "x@y.z", "X", "admin", 2)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %q, want refresh", claims.TokenType)
	}
}
