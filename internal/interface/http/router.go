package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.POST("/charts", handler.ComputeChart)
		api.POST("/charts/batch", handler.ComputeBatch)
		api.POST("/profiles", handler.CreateProfile)
		api.GET("/profiles", handler.ListProfiles)
		api.GET("/profiles/:id", handler.GetProfile)
		api.POST("/profiles/:id/export", handler.ExportProfile)
		api.GET("/profiles/:id/export", handler.DownloadExport)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
