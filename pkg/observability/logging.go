package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/taskroute/pkg/domain"
)

// LoggingHooks writes router events as structured log lines.
// Node transitions are logged at debug, fallbacks at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter", "request_id", e.RequestID, "node_id", e.NodeID)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_leave", "request_id", e.RequestID, "node_id", e.NodeID, "agent", e.Agent)
		},
		OnGenerate: func(ctx context.Context, e *domain.GenerateEvent) {
			logger.DebugContext(ctx, "generate",
				"request_id", e.RequestID,
				"node_id", e.NodeID,
				"duration", e.Duration,
				"is_error", e.IsError,
			)
		},
		OnFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			logger.InfoContext(ctx, "heuristic_fallback", "request_id", e.RequestID, "agent", e.Agent, "cause", e.Cause)
		},
		OnLocalEval: func(ctx context.Context, e *domain.LocalEvalEvent) {
			logger.DebugContext(ctx, "local_eval", "request_id", e.RequestID, "ok", e.OK)
		},
	}
}
