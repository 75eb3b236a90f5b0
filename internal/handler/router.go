package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anyulbade/retail-sales-dashboard/internal/middleware"
	"github.com/anyulbade/retail-sales-dashboard/internal/observability"
)

type RouterDeps struct {
	Sales          SalesQuerier
	Store          Pinger
	Backend        string
	Metrics        *observability.Metrics
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	Swagger        bool
}

// NewRouter wires the middleware chain and every route of the API.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Tracing())
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := NewHealthHandler(deps.Store, deps.Backend)
	router.GET("/health", healthHandler.Health)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	if deps.Swagger {
		SetupSwagger(router)
	}

	salesHandler := NewSalesHandler(deps.Sales)

	api := router.Group("/api")
	api.Use(middleware.RateLimit(deps.RateLimiter))
	{
		api.GET("/sales", salesHandler.List)
		api.GET("/sales/facets", salesHandler.Facets)
	}

	return router
}
