// Package cli wires configuration into a runnable router and its servers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/taskroute"
	"github.com/aretw0/taskroute/internal/config"
	"github.com/aretw0/taskroute/internal/prompts"
	"github.com/aretw0/taskroute/pkg/adapters/memory"
	"github.com/aretw0/taskroute/pkg/adapters/redis"
	"github.com/aretw0/taskroute/pkg/llm"
	"github.com/aretw0/taskroute/pkg/observability"
	"github.com/aretw0/taskroute/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const redisPingTimeout = 3 * time.Second

// App is a fully wired router plus the shared components its servers need.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Router   *taskroute.Router
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
	Prompts  *prompts.Store

	closers []func(context.Context) error
}

// AppOption configures NewApp.
type AppOption func(*appOptions)

type appOptions struct {
	generator ports.Generator
	tracing   bool
}

// WithGenerator bypasses provider construction.
func WithGenerator(gen ports.Generator) AppOption {
	return func(o *appOptions) {
		o.generator = gen
	}
}

// WithoutTracing skips the OTLP exporter even when an endpoint is configured.
func WithoutTracing() AppOption {
	return func(o *appOptions) {
		o.tracing = false
	}
}

// NewApp builds the generator chain, cache, metrics, tracing and prompts from cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...AppOption) (app *App, err error) {
	o := appOptions{tracing: true}
	for _, opt := range opts {
		opt(&o)
	}

	built := &App{Config: cfg, Logger: logger}
	app = built
	defer func() {
		if err != nil {
			_ = built.Close(context.Background())
		}
	}()

	// 1. Metrics
	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.Metrics = observability.NewMetrics(app.Registry)

	// 2. Tracing
	if o.tracing {
		shutdown, err := observability.SetupTracing(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Version:     taskroute.Version,
			Endpoint:    cfg.Telemetry.Endpoint,
			Insecure:    cfg.Telemetry.Insecure,
		})
		if err != nil {
			return nil, fmt.Errorf("setting up tracing: %w", err)
		}
		app.closers = append(app.closers, shutdown)
	}

	// 3. Generator (+ optional cache)
	gen := o.generator
	if gen == nil {
		gen, err = llm.NewGenerator(ctx, cfg.Provider)
		if err != nil {
			return nil, err
		}
	}
	gen, err = app.withCache(ctx, gen)
	if err != nil {
		return nil, err
	}

	// 4. Prompts
	templates := prompts.Default()
	if cfg.Prompts.File != "" {
		templates, err = prompts.Load(cfg.Prompts.File)
		if err != nil {
			return nil, err
		}
	}
	app.Prompts = prompts.NewStore(templates)

	// 5. Router
	app.Router, err = taskroute.New(gen,
		taskroute.WithLogger(logger),
		taskroute.WithPrompts(app.Prompts),
		taskroute.WithLifecycleHooks(observability.LoggingHooks(logger)),
		taskroute.WithLifecycleHooks(app.Metrics.Hooks()),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("App initialized",
		"provider", cfg.Provider.Name,
		"cache", cfg.Cache.Backend,
		"prompts", cfg.Prompts.File,
	)
	return app, nil
}

func (a *App) withCache(ctx context.Context, gen ports.Generator) (ports.Generator, error) {
	var cache ports.ResponseCache
	switch a.Config.Cache.Backend {
	case config.CacheMemory:
		cache = memory.NewCache()
	case config.CacheRedis:
		rc := a.Config.Cache.Redis
		c := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix))
		a.closers = append(a.closers, func(context.Context) error { return c.Close() })

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", rc.Addr, err)
		}
		cache = c
	default:
		return gen, nil
	}

	return llm.NewCached(gen, cache, a.Config.Cache.TTL,
		llm.WithCacheLogger(a.Logger),
		llm.WithCacheObserver(a.Metrics),
	), nil
}

// Close releases the cache connection and flushes pending spans.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
