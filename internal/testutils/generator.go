package testutils

import (
	"context"
	"errors"
	"sync"
)

// ErrScriptExhausted is returned when a ScriptedGenerator runs out of replies.
var ErrScriptExhausted = errors.New("scripted generator: no replies left")

// Reply is one scripted Generator outcome.
type Reply struct {
	Text string
	Err  error
}

// Text is a successful reply.
func Text(s string) Reply { return Reply{Text: s} }

// Fail is a failing reply.
func Fail(err error) Reply { return Reply{Err: err} }

// ScriptedGenerator replays replies in order and records every prompt.
type ScriptedGenerator struct {
	mu      sync.Mutex
	replies []Reply
	prompts []string
}

// NewScriptedGenerator creates a generator that returns replies in order.
func NewScriptedGenerator(replies ...Reply) *ScriptedGenerator {
	return &ScriptedGenerator{replies: replies}
}

// Generate implements ports.Generator.
func (g *ScriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(g.replies) == 0 {
		return "", ErrScriptExhausted
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	return r.Text, r.Err
}

// Prompts returns a copy of the prompts seen so far.
func (g *ScriptedGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

// Calls returns how many times Generate was invoked.
func (g *ScriptedGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
