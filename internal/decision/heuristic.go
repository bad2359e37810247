package decision

import (
	"strings"

	"github.com/aretw0/taskroute/pkg/domain"
)

var (
	inputTranslateKeywords = []string{"translate", "traduci", "traduire", "übersetze"}
	inputSummarizeKeywords = []string{"sum", "summary", "summarize", "synopsis"}
	operatorChars          = "+-*/^"
)

// Classify picks an agent with a fixed keyword ladder. The first matching
// rule wins; it never fails and always returns a valid agent.
//
//  1. raw mentions "translate"                      -> translate
//  2. raw mentions "summarize" or "summary"         -> summarize
//  3. raw mentions "calc", "math" or an operator     -> calculate
//  4. the same families of keywords in the input     -> translate / summarize / calculate
//  5. otherwise                                      -> summarize
func Classify(raw, originalInput string) domain.Decision {
	return domain.Decision{
		Agent: classify(raw, originalInput),
		Input: originalInput,
	}
}

func classify(raw, originalInput string) domain.Agent {
	low := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(low, "translate"):
		return domain.AgentTranslate
	case strings.Contains(low, "summarize"), strings.Contains(low, "summary"):
		return domain.AgentSummarize
	case strings.Contains(low, "calc"), strings.Contains(low, "math"), strings.ContainsAny(low, operatorChars):
		return domain.AgentCalculate
	}

	in := strings.ToLower(originalInput)
	switch {
	case containsAny(in, inputTranslateKeywords):
		return domain.AgentTranslate
	case containsAny(in, inputSummarizeKeywords):
		return domain.AgentSummarize
	case strings.ContainsAny(in, operatorChars):
		return domain.AgentCalculate
	}
	return domain.AgentSummarize
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Decide parses raw and falls back to Classify when parsing fails.
// The absorbed parse error is returned for logging; it is never fatal.
func Decide(raw, originalInput string) (domain.Decision, *ParseError) {
	out := Parse(raw)
	if out.Ok() {
		return out.Decision, nil
	}
	return Classify(raw, originalInput), out.Err
}
