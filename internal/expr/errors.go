package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsafeExpression matches any construct outside the arithmetic grammar.
	ErrUnsafeExpression = errors.New("unsafe expression")
	// ErrUnsupportedOperator matches operators that are recognised but not whitelisted.
	ErrUnsupportedOperator = errors.New("operator not allowed")
	// ErrDivisionByZero is wrapped by EvalError for /, // and % by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is wrapped by EvalError when a result exceeds the numeric limits.
	ErrOverflow = errors.New("numeric result out of range")
)

// UnsafeExpressionError reports input that cannot be expressed in the grammar.
type UnsafeExpressionError struct {
	Pos    int
	Reason string
}

func (e *UnsafeExpressionError) Error() string {
	return fmt.Sprintf("unsafe expression at offset %d: %s", e.Pos, e.Reason)
}

func (e *UnsafeExpressionError) Is(target error) bool {
	return target == ErrUnsafeExpression
}

// UnsupportedOperatorError reports an operator outside the whitelist.
type UnsupportedOperatorError struct {
	Pos int
	Op  string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %q not allowed (offset %d)", e.Op, e.Pos)
}

func (e *UnsupportedOperatorError) Is(target error) bool {
	return target == ErrUnsupportedOperator
}

// EvalError reports a failure while computing a well-formed expression.
type EvalError struct {
	Op  Op
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %s: %v", e.Op, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
