package ports

import "context"

// Generator is the external text-generation capability the router depends on.
// Implementations may block on network I/O and may fail; the router neither
// retries nor imposes timeouts beyond the caller's context.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
