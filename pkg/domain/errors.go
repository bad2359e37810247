package domain

import (
	"errors"
	"fmt"
)

// ErrGenerator marks failures of the external text-generation collaborator.
// These are the only errors that escape a route.
var ErrGenerator = errors.New("text generation failed")

// ErrStateAlreadySet is returned when a set-once state field is written twice.
var ErrStateAlreadySet = errors.New("state field already set")

// ErrIncompleteState is returned when a response is requested before the
// agent and result have both been recorded.
var ErrIncompleteState = errors.New("request state is incomplete")

// GeneratorError wraps a collaborator failure with the node that issued the call.
type GeneratorError struct {
	Node string
	Err  error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Node, ErrGenerator, e.Err)
}

func (e *GeneratorError) Unwrap() []error {
	return []error{ErrGenerator, e.Err}
}
