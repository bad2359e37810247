package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/taskroute"
	"github.com/aretw0/taskroute/internal/prompts"
	httpadapter "github.com/aretw0/taskroute/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP API, the optional metrics listener and the prompt
// watcher until ctx is cancelled or one of them fails.
func Serve(ctx context.Context, app *App) error {
	cfg := app.Config

	// /metrics moves to its own listener when metrics_addr is set.
	var gatherer prometheus.Gatherer = app.Registry
	if cfg.Server.MetricsAddr != "" {
		gatherer = nil
	}

	handler := httpadapter.NewHandler(app.Router,
		httpadapter.WithLogger(app.Logger),
		httpadapter.WithMaxInputSize(cfg.Server.MaxInputSize),
		httpadapter.WithVersion(taskroute.Version),
		httpadapter.WithMetrics(app.Metrics, gatherer),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return listen(ctx, app, "HTTP API", cfg.Server.Addr, handler)
	})

	if cfg.Server.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}))
		g.Go(func() error {
			return listen(ctx, app, "Metrics", cfg.Server.MetricsAddr, mux)
		})
	}

	if cfg.Prompts.File != "" && cfg.Prompts.Watch {
		g.Go(func() error {
			return prompts.Watch(ctx, cfg.Prompts.File, app.Prompts, app.Logger)
		})
	}

	return g.Wait()
}

func listen(ctx context.Context, app *App, name, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("Server listening", "server", name, "address", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("%s server: %w", name, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("Graceful shutdown did not complete", "server", name, "err", err)
			return srv.Close()
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		app.Logger.Info("Server stopped", "server", name)
		return nil
	}
}
