package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/S-Soo100/Resource-Planning-System-sub004/config"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
)

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-0123456789",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func seedUser(t *testing.T, users *mockUserRepo, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	teamID := int64(7)
	user := &model.User{
		Email:        "kim@kars.co.kr",
		PasswordHash: string(hash),
		Name:         "Kim",
		AccessLevel:  model.AccessUser,
		TeamID:       &teamID,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newTestAuth(users *mockUserRepo, b *bus.Bus) *AuthService {
	return NewAuthService(users, newTestJWT(), nil, b, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	users := newMockUserRepo()
	seedUser(t, users, "secret-pw")
	svc := newTestAuth(users, newTestBus())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "kim@kars.co.kr",
		Password: "secret-pw",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens issued")
	}
	if resp.User.Email != "kim@kars.co.kr" {
		t.Errorf("user email = %q", resp.User.Email)
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn = %d", resp.ExpiresIn)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newMockUserRepo()
	seedUser(t, users, "secret-pw")
	svc := newTestAuth(users, newTestBus())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "kim@kars.co.kr",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuth(newMockUserRepo(), newTestBus())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@kars.co.kr",
		Password: "x",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	users := newMockUserRepo()
	user := seedUser(t, users, "secret-pw")
	svc := newTestAuth(users, newTestBus())

	access, err := newTestJWT().GenerateAccessToken(user.UserID, user.Email, user.Name, user.AccessLevel, 7)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), access); !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("Refresh = %v, want ErrTokenInvalid", err)
	}
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	users := newMockUserRepo()
	seedUser(t, users, "secret-pw")
	svc := newTestAuth(users, newTestBus())

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "kim@kars.co.kr",
		Password: "secret-pw",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
}

func TestLogout_AnnouncesRevokedSession(t *testing.T) {
	users := newMockUserRepo()
	user := seedUser(t, users, "secret-pw")
	b := newTestBus()
	svc := newTestAuth(users, b)

	var revoked []int64
	b.Subscribe(bus.TopicSession, func(e bus.Event) {
		if ev, ok := e.(bus.SessionRevoked); ok {
			revoked = append(revoked, ev.UserID)
		}
	})

	manager := newTestJWT()
	token, err := manager.GenerateAccessToken(user.UserID, user.Email, user.Name, user.AccessLevel, 7)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	svc.Logout(context.Background(), claims)

	if len(revoked) != 1 || revoked[0] != user.UserID {
		t.Errorf("revoked sessions = %v, want [%d]", revoked, user.UserID)
	}
}

func TestMe_UnknownUser(t *testing.T) {
	svc := newTestAuth(newMockUserRepo(), newTestBus())

	if _, err := svc.Me(context.Background(), 99); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Me = %v, want ErrUserNotFound", err)
	}
}
