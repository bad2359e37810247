/*
Package expr implements a closed-grammar arithmetic evaluator.

The grammar only knows numeric literals, the binary operators + - * / // % **,
unary negation and parentheses. Identifiers, calls, attribute access and
strings have no representation in the syntax tree, so they are rejected while
parsing rather than checked at evaluation time.

	v, err := expr.Evaluate("12 * 8 - 6")
	// v.String() == "90"

Numeric behaviour follows the familiar calculator conventions: "/" always
yields a float, "//" and "%" use floored division, "**" is right-associative
and integers have arbitrary precision (bounded by MaxIntBits).
*/
package expr
