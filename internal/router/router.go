package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/brokerage/rms-api/internal/handlers"
	"github.com/brokerage/rms-api/internal/service"
	"github.com/brokerage/rms-api/internal/system/middleware"
)

// Options holds the collaborators of the router that are not entity services
type Options struct {
	Logger         *logrus.Logger
	Health         handlers.HealthChecker
	MetricsPath    string
	MetricsHandler http.Handler
}

// SetupRouter configures all API routes
func SetupRouter(registry *service.Registry, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationIDMiddleware())
	if opts.Logger != nil {
		router.Use(middleware.RequestLogger(opts.Logger))
	}

	// Health check
	if opts.Health != nil {
		router.GET("/health", handlers.NewHealthHandler(opts.Health).Health)
	}
	if opts.MetricsHandler != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(opts.MetricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		handlers.NewCompanyHandler(registry.Company).Register(v1.Group("/companies"))
		handlers.NewWorkflowHandler(registry.CompanyBranch, handlers.CompanyBranchKeyBinder).Register(v1.Group("/company-branches"))
		handlers.NewWorkflowHandler(registry.Client, handlers.ClientKeyBinder).Register(v1.Group("/clients"))
		handlers.NewWorkflowHandler(registry.Stock, handlers.StockKeyBinder).Register(v1.Group("/stocks"))
		handlers.NewWorkflowHandler(registry.Exchange, handlers.ExchangeKeyBinder).Register(v1.Group("/exchanges"))
		handlers.NewWorkflowHandler(registry.Trader, handlers.TraderKeyBinder).Register(v1.Group("/traders"))
		handlers.NewWorkflowHandler(registry.User, handlers.UserKeyBinder).Register(v1.Group("/users"))
		handlers.NewWorkflowHandler(registry.ClientExposure, handlers.ClientExposureKeyBinder).Register(v1.Group("/client-exposures"))
		handlers.NewWorkflowHandler(registry.UserExposure, handlers.UserExposureKeyBinder).Register(v1.Group("/user-exposures"))
		handlers.NewWorkflowHandler(registry.StockExposure, handlers.StockExposureKeyBinder).Register(v1.Group("/stock-exposures"))
		handlers.NewWorkflowHandler(registry.ClientStock, handlers.ClientStockKeyBinder).Register(v1.Group("/client-stocks"))
		handlers.NewOrderGroupHandler(registry.OrderGroup).Register(v1.Group("/order-groups"))

		v1.GET("/audit/:entity", handlers.NewAuditHandler(registry.Audit).History)
	}

	return router
}
