package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/config"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/api/handler"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/api/middleware"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/redis"
)

// Setup builds the gin engine with all routes attached.
func Setup(cfg *config.Config, h *handler.Handler, jwtManager *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (unauthenticated)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Streams accept ?token= besides the Authorization header
		// because EventSource cannot send headers.
		v1.GET("/change-history/:entityType/:id/stream",
			middleware.StreamAuth(jwtManager, rdb), h.Stream.Stream)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtManager, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// inventory
			items := authorized.Group("/items")
			{
				items.POST("", middleware.RoleAuth(model.AccessAdmin, model.AccessModerator), h.Item.Create)
				items.GET("/:id", h.Item.Get)
				items.PATCH("/:id", middleware.RoleAuth(model.AccessAdmin, model.AccessModerator), h.Item.Update)
				items.POST("/:id/quantity", h.Item.AdjustQuantity)
				items.DELETE("/:id", middleware.RoleAuth(model.AccessAdmin), h.Item.Delete)
			}
			authorized.GET("/warehouses/:id/items", h.Item.ListByWarehouse)

			// orders
			orders := authorized.Group("/orders")
			{
				orders.POST("", h.Order.Create)
				orders.GET("", h.Order.List)
				orders.GET("/:id", h.Order.Get)
				orders.PATCH("/:id", h.Order.Update)
				orders.POST("/:id/status", middleware.RoleAuth(model.AccessAdmin, model.AccessModerator), h.Order.ChangeStatus)
				orders.DELETE("/:id", h.Order.Delete)
			}

			// demos
			demos := authorized.Group("/demos")
			{
				demos.POST("", h.Demo.Create)
				demos.GET("", h.Demo.List)
				demos.GET("/:id", h.Demo.Get)
				demos.PATCH("/:id", h.Demo.Update)
				demos.POST("/:id/status", middleware.RoleAuth(model.AccessAdmin, model.AccessModerator), h.Demo.ChangeStatus)
				demos.DELETE("/:id", h.Demo.Delete)
			}

			// calendar views and feed
			cal := authorized.Group("/calendar")
			{
				cal.GET("/week", h.Calendar.Week)
				cal.GET("/month", h.Calendar.Month)
				cal.GET("/feed.ics", h.Calendar.Feed)
			}

			// change history listings; "team" as entity type lists
			// across the whole team
			authorized.GET("/change-history/:entityType/:id", h.History.List)
		}
	}

	return r
}
