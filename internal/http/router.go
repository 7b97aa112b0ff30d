package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kpi_tracker/backend/internal/config"
	"github.com/kpi_tracker/backend/internal/http/handlers"
	"github.com/kpi_tracker/backend/internal/http/middleware"
	"github.com/kpi_tracker/backend/internal/service"

	_ "github.com/kpi_tracker/backend/docs"
)

func Router(cfg config.Config, store handlers.Pinger, kpiService *service.KPIService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" || cfg.CORSAllowed == "" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:          store,
		KPI:            kpiService,
		Validator:      validator.New(),
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/config", h.ScoringConfig)
		api.GET("/developers/:id/kpi", h.DeveloperKPI)
		api.GET("/developers/:id/kpi/current", h.DeveloperKPIPreview)
		api.GET("/developers/:id/kpi/history", h.DeveloperKPIHistory)
		api.GET("/kpi/team", h.TeamKPI)
		api.GET("/kpi/export", h.ExportKPI)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/developers/:id/kpi", h.GenerateDeveloperKPI)
		admin.POST("/kpi/generate", h.GenerateAllKPIs)
		admin.PUT("/config", h.UpdateScoringConfig)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
