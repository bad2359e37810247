package expr

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// MaxIntBits bounds the size of integer results so that an expression such
// as 9**9**9 fails fast instead of exhausting memory.
const MaxIntBits = 4096

// Value is the result of an evaluation: an arbitrary precision integer or a float.
type Value struct {
	i       *big.Int
	f       float64
	isFloat bool
}

// Int returns an integer value.
func Int(n int64) Value {
	return Value{i: big.NewInt(n)}
}

// Float returns a floating-point value.
func Float(f float64) Value {
	return Value{f: f, isFloat: true}
}

func bigValue(n *big.Int) Value {
	return Value{i: n}
}

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool {
	return !v.isFloat
}

// BigInt returns a copy of the integer held by v, or nil for floats.
func (v Value) BigInt() *big.Int {
	if v.isFloat || v.i == nil {
		return nil
	}
	return new(big.Int).Set(v.i)
}

// Float64 converts v to a float. Integers too large for a float64 fail with ErrOverflow.
func (v Value) Float64() (float64, error) {
	if v.isFloat {
		return v.f, nil
	}
	f, _ := new(big.Float).SetInt(v.int()).Float64()
	if math.IsInf(f, 0) {
		return 0, ErrOverflow
	}
	return f, nil
}

func (v Value) int() *big.Int {
	if v.i == nil {
		return new(big.Int)
	}
	return v.i
}

// String renders v the way a calculator prints it: integers without a
// decimal point, integral floats with a trailing ".0", and scientific
// notation for very large or very small magnitudes.
func (v Value) String() string {
	if !v.isFloat {
		return v.int().String()
	}
	return formatFloat(v.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	if exp < -4 || exp >= 16 {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		expStr := strconv.Itoa(exp)
		if len(expStr) < 2 {
			expStr = "0" + expStr
		}
		return mant + "e" + sign + expStr
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
