// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/user"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/handlers"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/middleware"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/metrics"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	Services *Services

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation; nil disables authentication
	JWTValidator middleware.JWTValidator

	// Metrics collects request metrics and serves /metrics; optional
	Metrics *metrics.Metrics

	// CORSOrigins lists allowed origins; empty or "*" allows any origin
	CORSOrigins []string

	// HealthChecks are pinged by /health/ready
	HealthChecks map[string]handlers.Pinger

	// Mode is the gin mode (release, debug, test)
	Mode string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(cfg.Metrics.Middleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middleware.ErrorHandler())

	// Health and metrics endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.HealthChecks)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	if cfg.JWTValidator != nil {
		v1.Use(middleware.Auth(cfg.JWTValidator))
	}

	registerCatalogRoutes(v1, cfg)
	registerDocumentRoutes(v1, cfg)
	registerStockRoutes(v1, cfg)
	registerReportRoutes(v1, cfg)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	c.AddAllowHeaders("Authorization", middleware.HeaderRequestID, middleware.HeaderTraceID)
	c.AddExposeHeaders(middleware.HeaderRequestID, middleware.HeaderTraceID)
	return c
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	base := handlers.NewBaseHandler()
	s := cfg.Services

	handlers.NewCategoryHandler(base, s.Categories).RegisterRoutes(catalogs.Group("/categories"))
	handlers.NewProductHandler(base, s.Products).RegisterRoutes(catalogs.Group("/products"))
	handlers.NewWarehouseHandler(base, s.Warehouses).RegisterRoutes(catalogs.Group("/warehouses"))

	// user management is restricted to admins when authentication is on
	users := catalogs.Group("/users")
	if cfg.JWTValidator != nil {
		users.Use(middleware.RequireRole(string(user.RoleAdmin)))
	}
	handlers.NewUserHandler(base, s.Users).RegisterRoutes(users)
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docs := rg.Group("/documents")
	base := handlers.NewBaseHandler()
	s := cfg.Services

	handlers.NewIncomeHandler(base, s.Incomes).RegisterRoutes(docs.Group("/incomes"))
	handlers.NewOutcomeHandler(base, s.Outcomes).RegisterRoutes(docs.Group("/outcomes"))
	handlers.NewMovementHandler(base, s.Movements).RegisterRoutes(docs.Group("/movements"))
	handlers.NewOrderHandler(base, s.Orders).RegisterRoutes(docs.Group("/orders"))
	handlers.NewPlanHandler(base, s.Plans).RegisterRoutes(docs.Group("/plans"))
}

// registerStockRoutes registers warehouse ledger endpoints.
func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handlers.NewStockHandler(handlers.NewBaseHandler(), cfg.Services.Stock).RegisterRoutes(rg.Group("/stock"))
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	handlers.NewReportsHandler(handlers.NewBaseHandler(), cfg.Services.Reports).RegisterRoutes(rg.Group("/reports"))
}
