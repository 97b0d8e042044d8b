// Package http exposes task sessions to remote agent loops over HTTP.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"webmall/evaluation/webmall/checklist"
	"webmall/evaluation/webmall/shops"
	"webmall/evaluation/webmall/task"
	"webmall/evaluation/webmall/taskspec"
	"webmall/internal/logging"
	"webmall/internal/metrics"
)

// EvalRouterDeps holds the collaborators of the evaluation router.
type EvalRouterDeps struct {
	Catalog  *taskspec.Catalog
	Policies *checklist.PolicyRegistry
	URLs     shops.URLs
	Metrics  *metrics.Metrics
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer    prometheus.Gatherer
	TaskOptions []task.Option
	Logger      logging.Logger
}

// EvalRouterConfig holds HTTP-level settings.
type EvalRouterConfig struct {
	Environment      string
	AllowedOrigins   []string
	DefaultWeighting string
	SessionCacheSize int
}

// NewEvalRouter builds the gin engine serving the evaluation API.
func NewEvalRouter(deps EvalRouterDeps, cfg EvalRouterConfig) (*gin.Engine, error) {
	logger := deps.Logger
	if logging.IsNil(logger) {
		logger = logging.NewComponentLogger("EvalHTTP")
	}
	if deps.Catalog == nil {
		deps.Catalog = &taskspec.Catalog{}
	}
	if deps.Policies == nil {
		deps.Policies = checklist.NewPolicyRegistry()
	}

	sessions, err := newSessionStore(cfg.SessionCacheSize, deps.Metrics.SessionClosed)
	if err != nil {
		return nil, err
	}
	h := &evalHandler{
		catalog:          deps.Catalog,
		policies:         deps.Policies,
		urls:             deps.URLs,
		defaultWeighting: cfg.DefaultWeighting,
		taskOptions:      deps.TaskOptions,
		metrics:          deps.Metrics,
		sessions:         sessions,
		logger:           logger,
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(cors.New(corsConfig))

	engine.GET("/health", h.health)
	engine.GET("/metrics", metricsHandler(deps.Gatherer))

	api := engine.Group("/api")
	api.GET("/tasks", h.listTasks)
	api.GET("/tasks/:id/checklist", h.previewChecklist)
	api.POST("/sessions", h.createSession)
	api.GET("/sessions/:id", h.getSession)
	api.POST("/sessions/:id/validate", h.validate)
	api.DELETE("/sessions/:id", h.deleteSession)

	return engine, nil
}

func metricsHandler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	if gatherer == nil {
		return gin.WrapH(promhttp.Handler())
	}
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
