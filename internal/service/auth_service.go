package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// AuthService handles login, token rotation and logout.
type AuthService struct {
	users       repository.UserRepository
	jwtManager  *jwt.Manager
	redisClient *redis.Client // nil: revocation degrades to expiry-only
	eventBus    *bus.Bus
	logger      *zap.Logger
}

// NewAuthService builds the auth service.
func NewAuthService(
	users repository.UserRepository,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	eventBus *bus.Bus,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		jwtManager:  jwtManager,
		redisClient: redisClient,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.Int64("user_id", user.UserID),
		zap.String("email", user.Email),
	)
	return resp, nil
}

// Refresh rotates a refresh token into a fresh pair. The spent refresh
// token is blacklisted for its remaining lifetime so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtManager.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if revoked, err := s.isRevoked(ctx, claims.ID); err != nil {
		return nil, err
	} else if revoked {
		return nil, ErrTokenRevoked
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.revoke(ctx, claims)
	return resp, nil
}

// Logout blacklists the presented access token and announces the revoked
// session so the stream hub drops the user's live subscriptions.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) {
	s.revoke(ctx, claims)
	s.eventBus.Publish(bus.SessionRevoked{UserID: claims.UserID})

	s.logger.Info("user logged out", zap.Int64("user_id", claims.UserID))
}

// Me returns the account behind the claims.
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// IsRevoked reports whether a token id has been blacklisted. Used by the
// auth middleware on every authenticated request.
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.isRevoked(ctx, jti)
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	teamID := int64(0)
	if user.TeamID != nil {
		teamID = *user.TeamID
	}

	access, err := s.jwtManager.GenerateAccessToken(user.UserID, user.Email, user.Name, user.AccessLevel, teamID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.UserID, user.Email, user.Name, user.AccessLevel, teamID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.jwtManager.AccessTokenTTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func (s *AuthService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if s.redisClient == nil {
		return false, nil
	}
	return s.redisClient.IsBlacklisted(ctx, jti)
}

func (s *AuthService) revoke(ctx context.Context, claims *jwt.Claims) {
	if s.redisClient == nil || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.redisClient.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("token blacklist write failed",
			zap.String("jti", claims.ID),
			zap.Error(err),
		)
	}
}

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:          user.UserID,
		Email:       user.Email,
		Name:        user.Name,
		AccessLevel: user.AccessLevel,
		TeamID:      user.TeamID,
	}
	if user.Team != nil {
		resp.TeamName = user.Team.Name
	}
	return resp
}
