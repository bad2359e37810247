package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/taskroute/internal/decision"
	"github.com/aretw0/taskroute/internal/prompts"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/aretw0/taskroute/pkg/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used when no tracer is injected.
const TracerName = "github.com/aretw0/taskroute/internal/runtime"

// DefaultResult is returned by the Default node.
const DefaultResult = "Sorry, I couldn't understand the task."

// handler is a terminal node: it reads the state and produces a result.
type handler func(ctx context.Context, state *domain.RequestState) (domain.Result, error)

// Engine is the core state machine runner.
// It holds no per-request state and is safe for concurrent use if the
// Generator is.
type Engine struct {
	generator ports.Generator
	prompts   *prompts.Store
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	tracer    trace.Tracer

	routes   map[domain.Agent]string
	handlers map[string]handler
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithPrompts sets the prompt store. Defaults to the built-in templates.
func WithPrompts(store *prompts.Store) EngineOption {
	return func(e *Engine) {
		if store != nil {
			e.prompts = store
		}
	}
}

// WithTracer sets the OpenTelemetry tracer. Defaults to the global provider.
func WithTracer(tracer trace.Tracer) EngineOption {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// NewEngine creates a new engine around the text-generation collaborator.
func NewEngine(gen ports.Generator, opts ...EngineOption) *Engine {
	e := &Engine{
		generator: gen,
		prompts:   prompts.NewStore(nil),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    otel.Tracer(TracerName),
		routes: map[domain.Agent]string{
			domain.AgentTranslate: domain.NodeTranslator,
			domain.AgentSummarize: domain.NodeSummarizer,
			domain.AgentCalculate: domain.NodeCalculator,
		},
	}
	e.handlers = map[string]handler{
		domain.NodeTranslator: e.translator,
		domain.NodeSummarizer: e.summarizer,
		domain.NodeCalculator: e.calculator,
		domain.NodeDefault:    e.fallback,
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Next returns the terminal node for agent. Unknown agents go to Default.
func (e *Engine) Next(agent domain.Agent) string {
	if id, ok := e.routes[agent]; ok {
		return id
	}
	return domain.NodeDefault
}

// Run drives one request from the Manager to a single terminal node.
// Only collaborator failures escape; on error no response is produced.
func (e *Engine) Run(ctx context.Context, state *domain.RequestState) (*domain.Response, error) {
	ctx, span := e.tracer.Start(ctx, "route", trace.WithAttributes(
		attribute.String("request.id", state.ID),
		attribute.String("task", state.Task),
	))
	defer span.End()

	resp, err := e.run(ctx, state)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("agent", resp.Agent))
	return resp, nil
}

func (e *Engine) run(ctx context.Context, state *domain.RequestState) (*domain.Response, error) {
	ctx = ContextWithRequestID(ctx, state.ID)
	ctx = withTemplates(ctx, e.prompts.Load())
	logger := e.logger.With("request_id", state.ID)

	d, err := visit(e, ctx, domain.NodeManager, "", func(ctx context.Context) (domain.Decision, error) {
		return e.manager(ctx, state)
	})
	if err != nil {
		return nil, err
	}
	if err := state.SetAgent(d.Agent); err != nil {
		return nil, err
	}
	state.Input = d.Input

	next := e.Next(d.Agent)
	logger.Debug("Routing decision", "agent", d.Agent, "node", next)

	result, err := visit(e, ctx, next, d.Agent, func(ctx context.Context) (domain.Result, error) {
		return e.handlers[next](ctx, state)
	})
	if err != nil {
		return nil, err
	}
	if err := state.SetResult(result); err != nil {
		return nil, err
	}
	return state.Response()
}

// visit wraps a node with its span and enter/leave hooks.
func visit[T any](e *Engine, ctx context.Context, nodeID string, agent domain.Agent, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := e.tracer.Start(ctx, "node."+nodeID, trace.WithAttributes(attribute.String("node.id", nodeID)))
	defer span.End()

	e.emitNode(ctx, e.hooks.OnNodeEnter, domain.EventNodeEnter, nodeID, agent)
	v, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return v, err
	}
	e.emitNode(ctx, e.hooks.OnNodeLeave, domain.EventNodeLeave, nodeID, agent)
	return v, nil
}

func (e *Engine) emitNode(ctx context.Context, hook func(context.Context, *domain.NodeEvent), typ domain.EventType, nodeID string, agent domain.Agent) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.NodeEvent{
		EventBase: e.base(ctx, typ),
		NodeID:    nodeID,
		Agent:     agent,
	})
}

func (e *Engine) base(ctx context.Context, typ domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      typ,
		RequestID: requestID(ctx),
	}
}

// manager classifies the task. Unparseable output is absorbed by the heuristic.
func (e *Engine) manager(ctx context.Context, state *domain.RequestState) (domain.Decision, error) {
	raw, err := e.prompt(ctx, domain.NodeManager, prompts.KindManager, prompts.Data{Task: state.Task, Input: state.Input})
	if err != nil {
		return domain.Decision{}, err
	}

	d, perr := decision.Decide(raw, state.Input)
	if perr != nil {
		e.logger.Warn("Manager output rejected, using heuristic",
			"request_id", state.ID,
			"agent", d.Agent,
			"err", perr,
		)
		if e.hooks.OnFallback != nil {
			e.hooks.OnFallback(ctx, &domain.FallbackEvent{
				EventBase: e.base(ctx, domain.EventFallback),
				Agent:     d.Agent,
				Cause:     perr.Cause.Error(),
			})
		}
	}
	return d, nil
}

// prompt renders a template and sends it to the Generator.
func (e *Engine) prompt(ctx context.Context, nodeID string, kind prompts.Kind, data prompts.Data) (string, error) {
	text, err := e.templates(ctx).Render(kind, data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", nodeID, err)
	}
	return e.generate(ctx, nodeID, text)
}

// generate calls the collaborator and trims its reply.
func (e *Engine) generate(ctx context.Context, nodeID, prompt string) (string, error) {
	start := time.Now()
	out, err := e.generator.Generate(ctx, prompt)
	if e.hooks.OnGenerate != nil {
		e.hooks.OnGenerate(ctx, &domain.GenerateEvent{
			EventBase: e.base(ctx, domain.EventGenerate),
			NodeID:    nodeID,
			Duration:  time.Since(start),
			IsError:   err != nil,
		})
	}
	if err != nil {
		e.logger.Error("Generation failed", "request_id", requestID(ctx), "node", nodeID, "err", err)
		return "", &domain.GeneratorError{Node: nodeID, Err: err}
	}
	return strings.TrimSpace(out), nil
}
