package expr

import (
	"errors"
	"math"
	"math/big"
)

type binaryFunc func(a, b Value) (Value, error)
type unaryFunc func(a Value) (Value, error)

// Operator tables. Parse only ever produces these tags, so the lookups in
// Eval always succeed.
var binaryOps = map[Op]binaryFunc{
	OpAdd:      add,
	OpSub:      sub,
	OpMul:      mul,
	OpDiv:      trueDiv,
	OpFloorDiv: floorDiv,
	OpMod:      mod,
	OpPow:      pow,
}

var unaryOps = map[Op]unaryFunc{
	OpNeg: neg,
}

// Evaluate parses and evaluates src.
func Evaluate(src string) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return Eval(e)
}

// Eval walks a tree produced by Parse.
func Eval(e Expr) (Value, error) {
	switch n := e.(type) {
	case *NumberLit:
		return n.Value, nil
	case *BinaryExpr:
		left, err := Eval(n.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := Eval(n.Right)
		if err != nil {
			return Value{}, err
		}
		v, err := binaryOps[n.Op](left, right)
		if err != nil {
			return Value{}, &EvalError{Op: n.Op, Err: err}
		}
		return v, nil
	case *UnaryExpr:
		operand, err := Eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		v, err := unaryOps[n.Op](operand)
		if err != nil {
			return Value{}, &EvalError{Op: n.Op, Err: err}
		}
		return v, nil
	}
	return Value{}, &UnsafeExpressionError{Reason: "unknown node"}
}

func floats(a, b Value) (float64, float64, error) {
	x, err := a.Float64()
	if err != nil {
		return 0, 0, err
	}
	y, err := b.Float64()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func add(a, b Value) (Value, error) {
	if a.IsInt() && b.IsInt() {
		return bigValue(new(big.Int).Add(a.int(), b.int())), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return Float(x + y), nil
}

func sub(a, b Value) (Value, error) {
	if a.IsInt() && b.IsInt() {
		return bigValue(new(big.Int).Sub(a.int(), b.int())), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return Float(x - y), nil
}

func mul(a, b Value) (Value, error) {
	if a.IsInt() && b.IsInt() {
		if a.int().BitLen()+b.int().BitLen() > MaxIntBits+1 {
			return Value{}, ErrOverflow
		}
		return bigValue(new(big.Int).Mul(a.int(), b.int())), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	return Float(x * y), nil
}

func trueDiv(a, b Value) (Value, error) {
	if a.IsInt() && b.IsInt() {
		if b.int().Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
		f, _ := new(big.Rat).SetFrac(a.int(), b.int()).Float64()
		if math.IsInf(f, 0) {
			return Value{}, ErrOverflow
		}
		return Float(f), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	if y == 0 {
		return Value{}, ErrDivisionByZero
	}
	return Float(x / y), nil
}

func floorDiv(a, b Value) (Value, error) {
	if a.IsInt() && b.IsInt() {
		q, _, err := intDivmod(a.int(), b.int())
		if err != nil {
			return Value{}, err
		}
		return bigValue(q), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	q, _, err := floatDivmod(x, y)
	if err != nil {
		return Value{}, err
	}
	return Float(q), nil
}

func mod(a, b Value) (Value, error) {
	if a.IsInt() && b.IsInt() {
		_, r, err := intDivmod(a.int(), b.int())
		if err != nil {
			return Value{}, err
		}
		return bigValue(r), nil
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	_, r, err := floatDivmod(x, y)
	if err != nil {
		return Value{}, err
	}
	return Float(r), nil
}

// intDivmod returns the floored quotient and a remainder with the sign of y.
func intDivmod(x, y *big.Int) (*big.Int, *big.Int, error) {
	if y.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && r.Sign() != y.Sign() {
		q.Sub(q, big.NewInt(1))
		r.Add(r, y)
	}
	return q, r, nil
}

// floatDivmod mirrors the floored float division used by common calculators,
// including the rounding correction for inexact quotients.
func floatDivmod(x, y float64) (float64, float64, error) {
	if y == 0 {
		return 0, 0, ErrDivisionByZero
	}
	m := math.Mod(x, y)
	div := (x - m) / y
	if m != 0 {
		if (y < 0) != (m < 0) {
			m += y
			div -= 1
		}
	} else {
		m = math.Copysign(0, y)
	}
	var q float64
	if div != 0 {
		q = math.Floor(div)
		if div-q > 0.5 {
			q += 1
		}
	} else {
		q = math.Copysign(0, x/y)
	}
	return q, m, nil
}

func pow(a, b Value) (Value, error) {
	if a.IsInt() && b.IsInt() {
		base, exp := a.int(), b.int()
		if exp.Sign() >= 0 {
			return intPow(base, exp)
		}
		if base.Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
	}
	x, y, err := floats(a, b)
	if err != nil {
		return Value{}, err
	}
	if x == 0 && y < 0 {
		return Value{}, ErrDivisionByZero
	}
	if x < 0 && y != math.Trunc(y) {
		return Value{}, errors.New("negative number raised to a fractional power")
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Value{}, ErrOverflow
	}
	return Float(r), nil
}

func intPow(base, exp *big.Int) (Value, error) {
	switch {
	case exp.Sign() == 0:
		return Int(1), nil
	case base.Sign() == 0:
		return Int(0), nil
	case base.CmpAbs(big.NewInt(1)) == 0:
		if base.Sign() < 0 && exp.Bit(0) == 1 {
			return Int(-1), nil
		}
		return Int(1), nil
	}
	if !exp.IsInt64() || exp.Int64() > MaxIntBits {
		return Value{}, ErrOverflow
	}
	// |base| >= 2, so the result needs at least (bitlen-1)*exp bits.
	if int64(base.BitLen()-1)*exp.Int64() > MaxIntBits {
		return Value{}, ErrOverflow
	}
	return bigValue(new(big.Int).Exp(base, exp, nil)), nil
}

func neg(a Value) (Value, error) {
	if a.IsInt() {
		return bigValue(new(big.Int).Neg(a.int())), nil
	}
	return Float(-a.f), nil
}
