package vmath

import (
	"strconv"

	"github.com/chazu/fidgo/pkg/tree"
)

// Value is either a Scalar or a Vector.
type Value interface {
	isValue()
}

// Kind is the domain of a Scalar.
type Kind int

const (
	KindInvalid  Kind = iota // zero Scalar
	KindReal                 // plain float64
	KindSymbolic             // expression graph node
)

func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindSymbolic:
		return "symbolic"
	default:
		return "invalid"
	}
}

// Scalar is a tagged union of a real number and a symbolic expression
// handle. The zero Scalar is invalid and is rejected by NewVector.
//
// Arithmetic methods on Scalar never fail: an invalid operand yields an
// invalid result, which surfaces as ErrType once it reaches a vector or a
// shape.
type Scalar struct {
	kind Kind
	real float64
	node *tree.Node
}

func (Scalar) isValue() {}

// Real returns a real Scalar.
func Real(v float64) Scalar {
	return Scalar{kind: KindReal, real: v}
}

// Symbolic returns a Scalar wrapping an expression node. A nil node yields
// the invalid Scalar.
func Symbolic(n *tree.Node) Scalar {
	if n == nil {
		return Scalar{}
	}
	return Scalar{kind: KindSymbolic, node: n}
}

// Kind reports the scalar's domain.
func (s Scalar) Kind() Kind { return s.kind }

// Valid reports whether s is real or symbolic.
func (s Scalar) Valid() bool { return s.kind == KindReal || s.kind == KindSymbolic }

// IsReal reports whether s holds a plain number.
func (s Scalar) IsReal() bool { return s.kind == KindReal }

// IsSymbolic reports whether s holds an expression node.
func (s Scalar) IsSymbolic() bool { return s.kind == KindSymbolic }

// Float returns the number held by a real Scalar.
func (s Scalar) Float() (float64, bool) {
	return s.real, s.kind == KindReal
}

// Node returns s as an expression node, promoting a real to a constant.
// It returns nil for the invalid Scalar.
func (s Scalar) Node() *tree.Node {
	switch s.kind {
	case KindReal:
		return tree.Const(s.real)
	case KindSymbolic:
		return s.node
	}
	return nil
}

func (s Scalar) String() string {
	switch s.kind {
	case KindReal:
		return strconv.FormatFloat(s.real, 'g', -1, 64)
	case KindSymbolic:
		return s.node.String()
	}
	return "<invalid>"
}

// same reports whether two scalars are identical: equal reals, or the very
// same expression node.
func (s Scalar) same(o Scalar) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case KindReal:
		return s.real == o.real
	case KindSymbolic:
		return s.node == o.node
	}
	return true
}

func (s Scalar) Add(o Scalar) Scalar { return must2(addFn, s, o) }
func (s Scalar) Sub(o Scalar) Scalar { return must2(subFn, s, o) }
func (s Scalar) Mul(o Scalar) Scalar { return must2(mulFn, s, o) }
func (s Scalar) Div(o Scalar) Scalar { return must2(divFn, s, o) }
func (s Scalar) Mod(o Scalar) Scalar { return must2(modFn, s, o) }
func (s Scalar) Min(o Scalar) Scalar { return must2(minFn, s, o) }
func (s Scalar) Max(o Scalar) Scalar { return must2(maxFn, s, o) }

func (s Scalar) Neg() Scalar    { return negFn.scalar(s) }
func (s Scalar) Abs() Scalar    { return absFn.scalar(s) }
func (s Scalar) Sqrt() Scalar   { return sqrtFn.scalar(s) }
func (s Scalar) Square() Scalar { return squareFn.scalar(s) }

// must2 applies a binary function to two scalars, mapping an invalid operand
// to the invalid result.
func must2(f BinaryFunc, a, b Scalar) Scalar {
	r, err := f.scalar(a, b)
	if err != nil {
		return Scalar{}
	}
	return r
}
