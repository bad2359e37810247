package runtime

import (
	"context"
	"strings"

	"github.com/aretw0/taskroute/internal/expr"
	"github.com/aretw0/taskroute/internal/prompts"
	"github.com/aretw0/taskroute/pkg/domain"
)

func (e *Engine) translator(ctx context.Context, state *domain.RequestState) (domain.Result, error) {
	out, err := e.prompt(ctx, domain.NodeTranslator, prompts.KindTranslator, prompts.Data{Task: state.Task, Input: state.Input})
	return domain.Result{Result: out}, err
}

func (e *Engine) summarizer(ctx context.Context, state *domain.RequestState) (domain.Result, error) {
	out, err := e.prompt(ctx, domain.NodeSummarizer, prompts.KindSummarizer, prompts.Data{Task: state.Task, Input: state.Input})
	return domain.Result{Result: out}, err
}

// calculator answers locally when the input is a well-formed expression
// and delegates to the Generator otherwise.
func (e *Engine) calculator(ctx context.Context, state *domain.RequestState) (domain.Result, error) {
	expression := strings.TrimSpace(state.Input)
	v, err := expr.Evaluate(expression)
	e.emitLocalEval(ctx, err == nil)
	if err == nil {
		return domain.Result{Result: v.String()}, nil
	}
	e.logger.Debug("Local evaluation failed, delegating", "request_id", state.ID, "err", err)

	out, err := e.prompt(ctx, domain.NodeCalculator, prompts.KindCalculator, prompts.Data{Task: state.Task, Input: expression})
	return domain.Result{Result: out}, err
}

func (e *Engine) fallback(_ context.Context, _ *domain.RequestState) (domain.Result, error) {
	return domain.Result{Result: DefaultResult}, nil
}

func (e *Engine) emitLocalEval(ctx context.Context, ok bool) {
	if e.hooks.OnLocalEval == nil {
		return
	}
	e.hooks.OnLocalEval(ctx, &domain.LocalEvalEvent{
		EventBase: e.base(ctx, domain.EventLocalEval),
		OK:        ok,
	})
}
