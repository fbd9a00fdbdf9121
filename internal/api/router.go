package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/api/handler"
	"github.com/shopstream/storefront-gateway/internal/api/middleware"
	"github.com/shopstream/storefront-gateway/internal/gateway"
)

// RouterConfig carries the dependencies the BFF routes need.
type RouterConfig struct {
	// Upstream is the commerce backend origin proxied to.
	Upstream string
	// UpstreamTimeout bounds each proxied call.
	UpstreamTimeout time.Duration
	// Client is the gateway client used for readiness probing.
	Client *gateway.Client
	// Redis is optional; nil disables the Redis readiness check.
	Redis *redis.Client
	// Logger for proxy diagnostics.
	Logger zerolog.Logger
	// Registry overrides the Prometheus registry for HTTP metrics.
	// Defaults to the process-wide default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	registerer := prometheus.Registerer(prometheus.DefaultRegisterer)
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if cfg.Registry != nil {
		registerer = cfg.Registry
		gatherer = cfg.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	proxy := handler.NewProxy(cfg.Upstream, cfg.UpstreamTimeout, cfg.Logger)
	eventHandler := handler.NewEventHandler(proxy)
	feedbackHandler := handler.NewFeedbackHandler(proxy)
	requireAuth := middleware.RequireAuthorization()

	// --- Proxy routes ---
	e.POST("/api/events", eventHandler.Track)
	e.GET("/api/feedback/all", feedbackHandler.All, requireAuth)
	e.GET("/api/feedback/product/:productId", feedbackHandler.ByProduct)
	e.POST("/api/feedback/product", feedbackHandler.Submit, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Client, cfg.Redis)

	e.GET("/api/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/api/health/ready", readinessHandler.Readiness) // readiness – are the backend and redis up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))

	return e
}
