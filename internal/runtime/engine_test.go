package runtime_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/taskroute/internal/prompts"
	"github.com/aretw0/taskroute/internal/runtime"
	"github.com/aretw0/taskroute/internal/testutils"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, gen *testutils.ScriptedGenerator, task, input string, opts ...runtime.EngineOption) (*domain.Response, error) {
	t.Helper()
	engine := runtime.NewEngine(gen, opts...)
	return engine.Run(context.Background(), domain.NewRequestState("req-1", task, input))
}

func TestEngine_Translate(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent": "translate", "input": "Bonjour le monde"}`),
		testutils.Text("  Hello world\n"),
	)

	resp, err := run(t, gen, "translate to english", "Bonjour le monde")
	require.NoError(t, err)

	assert.Equal(t, &domain.Response{Agent: "translate", Input: "Bonjour le monde", Result: "Hello world"}, resp)

	prompts := gen.Prompts()
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "Task: translate to english\nInput: Bonjour le monde")
	assert.True(t, strings.HasSuffix(prompts[1], "\n\nBonjour le monde"))
	assert.True(t, strings.HasPrefix(prompts[1], "Translate this to English."))
}

func TestEngine_Summarize(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent":"summarize","input":"long text"}`),
		testutils.Text("Short."),
	)

	resp, err := run(t, gen, "summarize this", "long text")
	require.NoError(t, err)
	assert.Equal(t, "summarize", resp.Agent)
	assert.Equal(t, "Short.", resp.Result)
	assert.True(t, strings.HasPrefix(gen.Prompts()[1], "Summarize the following"))
}

func TestEngine_CalculateLocally(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "14"},
		{" 2 ** 3 ", "8"},
		{"7 // 2", "3"},
		{"7 / 2", "3.5"},
		{"-2 ** 2", "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gen := testutils.NewScriptedGenerator(
				testutils.Text(`{"agent": "calculate", "input": "` + tt.input + `"}`),
			)

			resp, err := run(t, gen, "calculate", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Result)
			assert.Equal(t, 1, gen.Calls(), "only the Manager should reach the generator")
		})
	}
}

func TestEngine_CalculateDelegates(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent": "calculate", "input": "os.system('x')"}`),
		testutils.Text("I cannot do that"),
	)

	resp, err := run(t, gen, "calculate", "os.system('x')")
	require.NoError(t, err)
	assert.Equal(t, "I cannot do that", resp.Result)

	require.Equal(t, 2, gen.Calls())
	assert.Equal(t,
		"Calculate the result of the arithmetic expression below. Respond with ONLY the final number.\nos.system('x')",
		gen.Prompts()[1])
}

func TestEngine_CalculateDelegatesTrimmedExpression(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent": "calculate", "input": "  sqrt(16)\n"}`),
		testutils.Text("4"),
	)

	resp, err := run(t, gen, "calculate", "  sqrt(16)\n")
	require.NoError(t, err)
	assert.Equal(t, "4", resp.Result)

	require.Equal(t, 2, gen.Calls())
	assert.Equal(t,
		"Calculate the result of the arithmetic expression below. Respond with ONLY the final number.\nsqrt(16)",
		gen.Prompts()[1])
}

func TestEngine_HeuristicFallback(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text("I think you want me to translate this"),
		testutils.Text("Good morning"),
	)

	resp, err := run(t, gen, "please help", "Buenos dias")
	require.NoError(t, err)
	assert.Equal(t, "translate", resp.Agent)
	assert.Equal(t, "Buenos dias", resp.Input, "heuristic keeps the original input")
	assert.Equal(t, "Good morning", resp.Result)
}

func TestEngine_DecisionInputIsEchoed(t *testing.T) {
	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent": "calculate", "input": "1 + 1"}`),
	)

	resp, err := run(t, gen, "what is one plus one", "one plus one")
	require.NoError(t, err)
	assert.Equal(t, "1 + 1", resp.Input)
	assert.Equal(t, "2", resp.Result)
}

func TestEngine_GeneratorFailure(t *testing.T) {
	boom := errors.New("upstream unavailable")

	t.Run("manager", func(t *testing.T) {
		gen := testutils.NewScriptedGenerator(testutils.Fail(boom))

		resp, err := run(t, gen, "translate", "hola")
		assert.Nil(t, resp)
		require.ErrorIs(t, err, domain.ErrGenerator)
		require.ErrorIs(t, err, boom)

		var gerr *domain.GeneratorError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, domain.NodeManager, gerr.Node)
	})

	t.Run("terminal", func(t *testing.T) {
		gen := testutils.NewScriptedGenerator(
			testutils.Text(`{"agent": "summarize", "input": "text"}`),
			testutils.Fail(boom),
		)

		resp, err := run(t, gen, "summarize", "text")
		assert.Nil(t, resp)

		var gerr *domain.GeneratorError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, domain.NodeSummarizer, gerr.Node)
	})

	t.Run("cancelled context", func(t *testing.T) {
		gen := testutils.NewScriptedGenerator(testutils.Text("unused"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := runtime.NewEngine(gen).Run(ctx, domain.NewRequestState("r", "t", "i"))
		require.ErrorIs(t, err, domain.ErrGenerator)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEngine_CustomPrompts(t *testing.T) {
	tmpl, err := prompts.Compile(prompts.Source{Translator: "EN: {{.Input}}"})
	require.NoError(t, err)

	gen := testutils.NewScriptedGenerator(
		testutils.Text(`{"agent": "translate", "input": "Hallo"}`),
		testutils.Text("Hello"),
	)

	_, err = run(t, gen, "translate", "Hallo", runtime.WithPrompts(prompts.NewStore(tmpl)))
	require.NoError(t, err)
	assert.Equal(t, "EN: Hallo", gen.Prompts()[1])
}

func TestEngine_Next(t *testing.T) {
	engine := runtime.NewEngine(testutils.NewScriptedGenerator())

	tests := map[domain.Agent]string{
		domain.AgentTranslate: domain.NodeTranslator,
		domain.AgentSummarize: domain.NodeSummarizer,
		domain.AgentCalculate: domain.NodeCalculator,
		domain.Agent("poem"):  domain.NodeDefault,
		domain.Agent(""):      domain.NodeDefault,
	}
	for agent, want := range tests {
		if got := engine.Next(agent); got != want {
			t.Errorf("Next(%q) = %q, want %q", agent, got, want)
		}
	}
}
