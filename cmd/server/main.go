package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"nlu/internal/config"
	"nlu/internal/logger"
	"nlu/internal/repository"
	"nlu/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	zl.Info("NLU service starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Request log is optional; without it the service is fully stateless
	var requestLog service.RequestLog
	if cfg.NLULog.Enabled {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			zl.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer repo.Close()

		if cfg.NLULog.AutoMigrate {
			if err := repo.Migrate(context.Background()); err != nil {
				zl.Fatal("Failed to migrate database", zap.Error(err))
			}
		}

		requestLog = repo
		zl.Info("Connected to PostgreSQL, request logging enabled")
	} else {
		zl.Warn("Request logging is disabled - set NLU_LOG_ENABLED=true to persist requests")
	}

	// Initialize services
	nluService := service.NewNLUService(
		service.NewIntentClassifier(),
		service.NewEntityExtractor(zl),
		requestLog,
		cfg.NLULog.Timeout,
		zl,
	)

	router := setupRouter(cfg, nluService, zl)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		zl.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server stopped")
}
