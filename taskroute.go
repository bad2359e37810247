package taskroute

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/taskroute/internal/prompts"
	"github.com/aretw0/taskroute/internal/runtime"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/aretw0/taskroute/pkg/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ErrNilGenerator is returned by New when no Generator is supplied.
var ErrNilGenerator = errors.New("generator is required")

// Router is the high-level entry point for the taskroute library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Router struct {
	runtime *runtime.Engine
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	prompts *prompts.Store
	tracer  trace.Tracer
	newID   func() string
}

// Option defines a functional option for configuring the Router.
type Option func(*Router)

// WithLogger sets a custom structured logger for the router.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Router) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithPrompts replaces the built-in prompt templates.
// The store may be swapped concurrently (see prompts.Watch).
func WithPrompts(store *prompts.Store) Option {
	return func(r *Router) {
		r.prompts = store
	}
}

// WithTracer sets the OpenTelemetry tracer used for route and node spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = tracer
	}
}

// WithIDGenerator overrides how request IDs are created (default: UUIDv4).
func WithIDGenerator(fn func() string) Option {
	return func(r *Router) {
		r.newID = fn
	}
}

// New initializes a Router around the text-generation collaborator.
func New(gen ports.Generator, opts ...Option) (*Router, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}

	r := &Router{newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	r.runtime = runtime.NewEngine(gen,
		runtime.WithLogger(r.logger),
		runtime.WithLifecycleHooks(r.hooks),
		runtime.WithPrompts(r.prompts),
		runtime.WithTracer(r.tracer),
	)
	return r, nil
}

// Route classifies task, dispatches input to exactly one handler and
// returns the combined response. The only errors are collaborator failures
// (errors.Is(err, domain.ErrGenerator)); no partial response is returned.
func (r *Router) Route(ctx context.Context, task, input string) (*domain.Response, error) {
	state := domain.NewRequestState(r.newID(), task, input)
	r.logger.Debug("Routing request", "request_id", state.ID, "task", task)
	return r.runtime.Run(ctx, state)
}

// Inspect returns the routing graph for visualization or introspection tools.
func (r *Router) Inspect() []domain.Node {
	return r.runtime.Inspect()
}
