package decision_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/taskroute/internal/decision"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Decision
	}{
		{
			name: "translate",
			raw:  `{"agent":"translate","input":"Bonjour le monde"}`,
			want: domain.Decision{Agent: domain.AgentTranslate, Input: "Bonjour le monde"},
		},
		{
			name: "surrounding whitespace and key order",
			raw:  "\n  {\"input\": \"12 * 8 - 6\", \"agent\": \"calculate\"}  \n",
			want: domain.Decision{Agent: domain.AgentCalculate, Input: "12 * 8 - 6"},
		},
		{
			name: "empty input",
			raw:  `{"agent":"summarize","input":""}`,
			want: domain.Decision{Agent: domain.AgentSummarize, Input: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := decision.Parse(tt.raw)
			require.True(t, out.Ok(), "unexpected error: %v", out.Err)
			assert.Equal(t, tt.want, out.Decision)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		cause error
	}{
		{"plain text", "I think this should be translated.", decision.ErrNotObject},
		{"empty", "", decision.ErrNotObject},
		{"array", `["translate"]`, decision.ErrNotObject},
		{"fenced json", "```json\n{\"agent\":\"translate\",\"input\":\"x\"}\n```", decision.ErrNotObject},
		{"truncated", `{"agent":"translate","input":"x"`, decision.ErrNotObject},
		{"missing input", `{"agent":"translate"}`, decision.ErrMissingKey},
		{"missing agent", `{"input":"x"}`, decision.ErrMissingKey},
		{"extra key", `{"agent":"translate","input":"x","reason":"y"}`, decision.ErrUnknownKey},
		{"duplicate key", `{"agent":"translate","agent":"summarize","input":"x"}`, decision.ErrDuplicateKey},
		{"wrong case agent", `{"agent":"Translate","input":"x"}`, decision.ErrInvalidAgent},
		{"unknown agent", `{"agent":"default","input":"x"}`, decision.ErrInvalidAgent},
		{"numeric agent", `{"agent":1,"input":"x"}`, decision.ErrInvalidType},
		{"null input", `{"agent":"translate","input":null}`, decision.ErrInvalidType},
		{"trailing text", `{"agent":"translate","input":"x"} done`, decision.ErrTrailingData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := decision.Parse(tt.raw)
			require.False(t, out.Ok())
			assert.ErrorIs(t, out.Err, tt.cause)
			assert.Equal(t, tt.raw, out.Err.Excerpt, "short raw text is kept whole")
		})
	}
}

func TestParseError_Excerpt(t *testing.T) {
	raw := strings.Repeat("é", 500)
	out := decision.Parse(raw)
	require.False(t, out.Ok())

	assert.Equal(t, decision.ExcerptLength, len([]rune(out.Err.Excerpt)))
	assert.True(t, strings.HasPrefix(raw, out.Err.Excerpt))

	var pe *decision.ParseError
	require.True(t, errors.As(error(out.Err), &pe))
	assert.Contains(t, pe.Error(), "failed to parse decision")
}

// Any decision-shaped object round-trips through Parse unchanged.
func TestParse_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		agent := rapid.SampledFrom(domain.Agents).Draw(t, "agent")
		input := rapid.String().Draw(t, "input")

		raw, err := json.Marshal(map[string]string{"agent": string(agent), "input": input})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		out := decision.Parse(string(raw))
		if !out.Ok() {
			t.Fatalf("Parse(%s) failed: %v", raw, out.Err)
		}
		want := domain.Decision{Agent: agent, Input: input}
		if out.Decision != want {
			t.Fatalf("Parse(%s) = %+v, want %+v", raw, out.Decision, want)
		}
	})
}
