package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"webmall/evaluation/webmall/evaluator"
	"webmall/evaluation/webmall/task"
	"webmall/evaluation/webmall/taskspec"
	"webmall/internal/config"
	evalHTTP "webmall/internal/delivery/eval/http"
	"webmall/internal/logging"
	"webmall/internal/metrics"
	"webmall/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// Server is a fully wired evaluation server.
type Server struct {
	settings config.Settings
	http     *http.Server
	tracing  *observability.TracerProvider
	logger   logging.Logger
}

// Option customises server wiring, mainly for tests.
type Option func(*options)

type options struct {
	shopOptions []config.ShopOption
	registerer  prometheus.Registerer
	gatherer    prometheus.Gatherer
	navigator   task.Navigator
}

// WithShopOptions forwards options to the shop URL resolution.
func WithShopOptions(opts ...config.ShopOption) Option {
	return func(o *options) { o.shopOptions = append(o.shopOptions, opts...) }
}

// WithRegistry uses reg for the collectors and /metrics instead of the
// default Prometheus registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registerer = reg
		o.gatherer = reg
	}
}

// WithNavigator drives a browser on session setup.
func WithNavigator(n task.Navigator) Option {
	return func(o *options) { o.navigator = n }
}

// NewServer resolves shop URLs, the task catalog and the weighting policies
// and wires the HTTP router. Any configuration defect is returned here.
func NewServer(settings config.Settings, opts ...Option) (*Server, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logging.SetDefault(logging.NewLogger(logging.LogConfig{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
	}))
	logger := logging.NewComponentLogger("EvalServer")

	shopOpts := append([]config.ShopOption{config.WithEnvFile(settings.EnvFile)}, o.shopOptions...)
	urls, err := config.LoadShopURLs(shopOpts...)
	if err != nil {
		return nil, fmt.Errorf("resolve shop urls: %w", err)
	}
	catalog, err := taskspec.LoadCatalog(settings.TaskSetPath)
	if err != nil {
		return nil, fmt.Errorf("load task sets: %w", err)
	}
	policies, err := settings.Registry()
	if err != nil {
		return nil, fmt.Errorf("weighting policies: %w", err)
	}
	logger.Info("loaded %d tasks from %s (policies: %v)", len(catalog.Tasks()), settings.TaskSetPath, policies.Names())

	var m *metrics.Metrics
	if o.registerer != nil {
		m = metrics.MustNewMetrics(o.registerer)
	} else {
		m = metrics.Default()
	}

	evalOpts := evaluator.DefaultOptions()
	evalOpts.AnswerSource = settings.AnswerSource
	taskOpts := []task.Option{
		task.WithCompletionToken(settings.CompletionToken),
		task.WithEvaluatorOptions(evalOpts),
	}
	if o.navigator != nil {
		taskOpts = append(taskOpts, task.WithNavigator(o.navigator))
	}

	tracing, err := observability.NewTracerProvider(context.Background(), settings.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	if tracing.Enabled() {
		logger.Info("exporting spans via %s", settings.Tracing.Exporter)
	}

	router, err := evalHTTP.NewEvalRouter(evalHTTP.EvalRouterDeps{
		Catalog:     catalog,
		Policies:    policies,
		URLs:        urls,
		Metrics:     m,
		Gatherer:    o.gatherer,
		TaskOptions: taskOpts,
	}, evalHTTP.EvalRouterConfig{
		Environment:      settings.Environment,
		AllowedOrigins:   settings.AllowedOrigins,
		DefaultWeighting: settings.Weighting,
		SessionCacheSize: settings.SessionCacheSize,
	})
	if err != nil {
		_ = tracing.Shutdown(context.Background())
		return nil, err
	}

	return &Server{
		settings: settings,
		http: &http.Server{
			Addr:         ":" + settings.Port,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		tracing: tracing,
		logger:  logger,
	}, nil
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening on %s", listener.Addr())
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := s.http.Shutdown(shutdownCtx)
		if tracingErr := s.tracing.Shutdown(shutdownCtx); tracingErr != nil {
			s.logger.Warn("flush spans: %v", tracingErr)
		}
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("stopped")
		return nil
	})
	return g.Wait()
}

// RunEvalServer wires the server from settings and serves until SIGINT or
// SIGTERM.
func RunEvalServer(ctx context.Context, settings config.Settings, opts ...Option) error {
	srv, err := NewServer(settings, opts...)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
