package runtime

import (
	"context"

	"github.com/aretw0/taskroute/internal/prompts"
)

type requestIDKey struct{}

// ContextWithRequestID attaches the request ID used in events and logs.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the ID set by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestID(ctx context.Context) string {
	return RequestIDFromContext(ctx)
}

type templatesKey struct{}

// withTemplates pins the prompt templates for the rest of a request.
func withTemplates(ctx context.Context, t *prompts.Templates) context.Context {
	return context.WithValue(ctx, templatesKey{}, t)
}

// templates returns the pinned snapshot, or the store's current templates.
func (e *Engine) templates(ctx context.Context) *prompts.Templates {
	if t, ok := ctx.Value(templatesKey{}).(*prompts.Templates); ok {
		return t
	}
	return e.prompts.Load()
}
