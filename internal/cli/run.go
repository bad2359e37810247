package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/taskroute"
	"github.com/aretw0/taskroute/internal/config"
	"github.com/aretw0/taskroute/internal/presentation/graph"
	"github.com/aretw0/taskroute/internal/presentation/tui"
	"github.com/aretw0/taskroute/pkg/adapters/mcp"
	"github.com/aretw0/taskroute/pkg/ports"
)

// ErrOffline is returned by the generator behind OfflineRouter.
var ErrOffline = errors.New("no text-generation provider configured")

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Task     string
	Input    string
	JSON     bool
	Headless bool
}

// Oneshot reports whether the options describe a single request.
func (o RunOptions) Oneshot() bool {
	return o.Task != "" || o.Input != ""
}

// Run routes one request when a task or input is given, otherwise it
// starts the interactive loop on in.
func Run(ctx context.Context, router *taskroute.Router, opts RunOptions, in io.Reader, out io.Writer) error {
	if opts.Oneshot() {
		resp, err := router.Route(ctx, opts.Task, opts.Input)
		if err != nil {
			return err
		}
		if opts.JSON {
			enc := json.NewEncoder(out)
			return enc.Encode(resp)
		}
		_, err = fmt.Fprintln(out, resp.Result)
		return err
	}

	runner := &taskroute.Runner{
		Input:    in,
		Output:   out,
		Headless: opts.Headless || opts.JSON,
	}
	if !runner.Headless {
		runner.Renderer = tui.NewRenderer()
	}
	return runner.Run(ctx, router)
}

// Demo routes the built-in sample requests in order.
func Demo(ctx context.Context, router *taskroute.Router, out io.Writer, headless bool) error {
	runner := &taskroute.Runner{Output: out, Headless: headless}
	if !headless {
		runner.Renderer = tui.NewRenderer()
	}
	return runner.Batch(ctx, router, taskroute.DemoRequests)
}

// Graph renders the routing graph as Mermaid, highlighting agent's route when set.
func Graph(router *taskroute.Router, agent string) string {
	nodes := router.Inspect()
	var overlay *graph.GraphOverlay
	if agent != "" {
		overlay = graph.RouteOverlay(nodes, agent)
	}
	return graph.GenerateMermaid(nodes, overlay)
}

// OfflineRouter is a router for introspection only; routing through it fails with ErrOffline.
func OfflineRouter() *taskroute.Router {
	router, _ := taskroute.New(ports.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", ErrOffline
	}))
	return router
}

// ServeMCP exposes the app's router over MCP on the configured transport.
func ServeMCP(ctx context.Context, app *App) error {
	srv := mcp.NewServer(app.Router, taskroute.Version,
		mcp.WithLogger(app.Logger),
		mcp.WithMaxInputSize(app.Config.Server.MaxInputSize),
	)

	switch app.Config.MCP.Transport {
	case config.TransportSSE:
		return srv.ServeSSE(ctx, app.Config.MCP.Port)
	default:
		app.Logger.Info("MCP Server listening (stdio)")
		return srv.ServeStdio()
	}
}
