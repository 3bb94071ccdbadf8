package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/config"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/api/handler"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/api/router"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/stream"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/database"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
	applogger "github.com/S-Soo100/Resource-Planning-System-sub004/pkg/logger"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/redis"
)

func main() {
	// 1. configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("unwrap sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. redis; a failed connection degrades (no token blacklist, no
	// cross-instance change fan-out) instead of blocking startup
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	}

	// 5. jwt
	jwtManager := jwt.NewManager(&cfg.Auth)

	// 6. event plumbing: bus → hub, with redis bridging change records
	// published by any instance onto the local bus
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	eventBus := bus.New(logger)
	hub := stream.NewHub(eventBus, cfg.Stream.HeartbeatInterval, cfg.Stream.SubscriberBuffer, logger)
	go hub.Run(runCtx)

	if rdb != nil {
		rdb.SubscribeChanges(runCtx, func(payload []byte) {
			var change model.ChangeHistory
			if err := json.Unmarshal(payload, &change); err != nil {
				logger.Warn("malformed change payload from redis", zap.Error(err))
				return
			}
			eventBus.Publish(bus.ChangeRecorded{Change: change})
		})
	}

	// 7. dependency wiring: repository → service → handler → router
	repo := repository.NewRepository(db)
	svc := service.New(repo, jwtManager, rdb, eventBus, logger)
	h := handler.NewHandler(svc, hub)
	engine := router.Setup(cfg, h, jwtManager, rdb, logger)

	// 8. HTTP server; WriteTimeout stays 0 so SSE streams are not cut off
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     engine,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	// 9. graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))
	cancelRun()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("stopped")
}
