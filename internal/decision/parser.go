// Package decision turns raw Manager output into a routing decision, falling
// back to keyword heuristics when the output is not a well-formed decision.
package decision

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/taskroute/pkg/domain"
)

const (
	keyAgent = "agent"
	keyInput = "input"
)

// Outcome is the explicit result of Parse.
// Exactly one of Decision (when Err is nil) or Err is meaningful.
type Outcome struct {
	Decision domain.Decision
	Err      *ParseError
}

// Ok reports whether parsing succeeded.
func (o Outcome) Ok() bool {
	return o.Err == nil
}

// Parse validates raw as a JSON object holding exactly the string keys
// "agent" and "input", where agent is one of the known agent tokens.
func Parse(raw string) Outcome {
	fields, err := decodeObject(raw)
	if err != nil {
		return Outcome{Err: newParseError(raw, err)}
	}

	for _, key := range []string{keyAgent, keyInput} {
		if _, ok := fields[key]; !ok {
			return Outcome{Err: newParseError(raw, fmt.Errorf("%w: %q", ErrMissingKey, key))}
		}
	}

	agentToken, err := stringField(fields, keyAgent)
	if err != nil {
		return Outcome{Err: newParseError(raw, err)}
	}
	input, err := stringField(fields, keyInput)
	if err != nil {
		return Outcome{Err: newParseError(raw, err)}
	}

	agent, ok := domain.ParseAgent(agentToken)
	if !ok {
		return Outcome{Err: newParseError(raw, fmt.Errorf("%w: %q", ErrInvalidAgent, agentToken))}
	}

	return Outcome{Decision: domain.Decision{Agent: agent, Input: input}}
}

// decodeObject reads a single JSON object, rejecting duplicate or unknown
// keys and anything after the closing brace.
func decodeObject(raw string) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(strings.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	fields := make(map[string]json.RawMessage, 2)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrNotObject
		}
		if key != keyAgent && key != keyInput {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		if _, seen := fields[key]; seen {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
		}
		fields[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return fields, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw := fields[key]
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidType, key, err)
	}
	return s, nil
}
