package expr

import "fmt"

// Op is an operator tag. Only the constants below exist.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpNeg
)

var opSymbols = map[Op]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
	OpNeg:      "-",
}

func (o Op) String() string {
	if s, ok := opSymbols[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Expr is a node of the restricted syntax tree.
// The interface is sealed; the three node types below are the only implementations.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value Value
}

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	Op          Op
	Left, Right Expr
}

// UnaryExpr applies a unary operator to one operand.
type UnaryExpr struct {
	Op      Op
	Operand Expr
}

func (*NumberLit) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}

func (n *NumberLit) String() string { return n.Value.String() }

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}
