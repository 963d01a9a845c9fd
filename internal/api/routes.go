package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jroosing/hydrasink/internal/api/handlers"
	"github.com/jroosing/hydrasink/internal/api/middleware"
	"github.com/jroosing/hydrasink/internal/config"

	_ "github.com/jroosing/hydrasink/internal/api/docs" // swagger docs
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)

	api.GET("/blocklist", h.GetBlocklist)
	api.GET("/blocklist/check", h.CheckBlocklist)
	api.GET("/blocklist/stored", h.GetStoredDomains)
	api.POST("/blocklist/stored", h.AddStoredDomains)
	api.DELETE("/blocklist/stored", h.RemoveStoredDomains)

	api.GET("/detections", h.GetDetections)
}
