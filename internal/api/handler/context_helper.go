package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/api/middleware"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// MustGetClaims extracts the verified JWT claims injected by the auth
// middleware. On failure it writes a 401; the caller should return when
// ok is false.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, "not authenticated")
		return nil, false
	}
	return claims, true
}

// MustGetActor builds the acting user for the service layer from the
// request's claims.
func MustGetActor(c *gin.Context) (service.Actor, bool) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:      claims.UserID,
		Name:        claims.Name,
		Email:       claims.Email,
		AccessLevel: claims.AccessLevel,
		TeamID:      claims.TeamID,
	}, true
}

// pathID parses a positive int64 path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
