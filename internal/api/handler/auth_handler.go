package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// AuthHandler serves login, refresh, logout and the current-user lookup.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid login payload")
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid refresh payload")
		return
	}

	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrTokenRevoked):
			response.Unauthorized(c, "refresh token invalid or expired")
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, "account no longer exists")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	h.authSvc.Logout(c.Request.Context(), claims)
	response.OK(c, gin.H{"logged_out": true})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
