package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/battulga/wordwall/internal/adapters/http/handlers"
	"github.com/battulga/wordwall/internal/adapters/http/middleware"
	"github.com/battulga/wordwall/internal/platform/metrics"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// Metrics provides the HTTP request counter middleware. Optional.
	Metrics *metrics.Metrics

	// HealthHandler handles the operational endpoints under /-/.
	HealthHandler *handlers.HealthHandler

	// WordHandler handles the word set endpoints under /api.
	WordHandler *handlers.WordHandler

	// Timeout is the per-request deadline for API routes.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware order: recovery first to catch everything, then request ID so
// the request logger can carry it, then logging and metrics. API routes
// additionally get a context deadline; a store that does not answer within
// it surfaces as an unavailability error from the repository.
//
// Route groups:
//   - /-/   operational: live, ready, build, metrics
//   - /api  the word set API the UI talks to
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.Logging(cfg.Logger),
	)

	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware())
	}

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine)
	}

	api := engine.Group("/api")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.WordHandler != nil {
		cfg.WordHandler.RegisterWordRoutes(api)
	}
}
