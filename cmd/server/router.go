package main

import (
	"net/http"

	"nlu/internal/config"
	"nlu/internal/handler"
	"nlu/internal/middleware"
	"nlu/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func setupRouter(cfg *config.Config, nluService *service.NLUService, logger *zap.Logger) *gin.Engine {
	nluHandler := handler.NewNLUHandler(nluService)
	feedbackHandler := handler.NewFeedbackHandler(nluService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", middleware.RequestIDKey}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDKey}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "nlu-service",
			"version": Version,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Unversioned route kept for existing gateway clients
	router.POST("/nlu", nluHandler.Process)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/nlu", nluHandler.Process)
		apiV1.GET("/nlu/logs/:request_id", nluHandler.GetLog)
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})

	return router
}
