// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"terrimap/config"
	"terrimap/internal/delivery/api/router/handler"
	"terrimap/internal/delivery/bridge"
	"terrimap/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	LayerHandler   *handler.LayerHandler
	SessionHandler *bridge.Handler
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	layerHandler   *handler.LayerHandler
	sessionHandler *bridge.Handler
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		layerHandler:   params.LayerHandler,
		sessionHandler: params.SessionHandler,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Map editing sessions
	e.GET("/ws/session", r.sessionHandler.Connect)

	// API v1 routes
	apiV1 := e.Group("/api/v1")

	layersGroup := apiV1.Group("/layers")
	{
		layersGroup.GET("", r.layerHandler.GetLayers)
		layersGroup.GET("/:type", r.layerHandler.GetCollection)
	}

	analyticsGroup := apiV1.Group("/analytics")
	{
		analyticsGroup.GET("/population", r.layerHandler.GetPopulation)
		analyticsGroup.GET("/expansion", r.layerHandler.GetExpansion)
	}
}

// RegisterMetricsRoutes exposes the Prometheus endpoint when enabled.
func (r *router) RegisterMetricsRoutes(e *echo.Echo) {
	if r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(metrics.Handler()))
	}
}
