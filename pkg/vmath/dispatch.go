package vmath

import (
	"fmt"

	"github.com/chazu/fidgo/pkg/tree"
)

// UnaryFunc pairs a numeric implementation with the expression opcode that
// computes the same function symbolically.
type UnaryFunc struct {
	Native func(float64) float64
	Op     tree.Opcode
}

// BinaryFunc pairs a numeric implementation with the expression opcode that
// computes the same function symbolically.
type BinaryFunc struct {
	Native func(a, b float64) float64
	Op     tree.Opcode
}

func unary(op tree.Opcode) UnaryFunc   { return UnaryFunc{Native: op.Eval1, Op: op} }
func binary(op tree.Opcode) BinaryFunc { return BinaryFunc{Native: op.Eval2, Op: op} }

func (f UnaryFunc) scalar(s Scalar) Scalar {
	switch s.kind {
	case KindReal:
		return Real(f.Native(s.real))
	case KindSymbolic:
		return Symbolic(tree.Unary(f.Op, s.node))
	}
	return Scalar{}
}

func (f BinaryFunc) scalar(a, b Scalar) (Scalar, error) {
	if !a.Valid() || !b.Valid() {
		return Scalar{}, ErrType
	}
	if a.kind == KindReal && b.kind == KindReal {
		return Real(f.Native(a.real, b.real)), nil
	}
	return Symbolic(tree.Binary(f.Op, a.Node(), b.Node())), nil
}

// Apply applies f to a Scalar, or component-wise to a Vector.
func Apply(f UnaryFunc, v Value) Value {
	switch v := v.(type) {
	case Scalar:
		return f.scalar(v)
	case Vector:
		return v.Map(f)
	}
	return Scalar{}
}

// Apply2 applies f to a pair of values. Two vectors combine elementwise and
// must have equal lengths. A vector and a scalar combine by broadcasting the
// scalar across every component, keeping each operand on its side. Two
// reals use f.Native; anything symbolic builds a node, promoting reals to
// constants.
func Apply2(f BinaryFunc, a, b Value) (Value, error) {
	return lift2(f.scalar, a, b)
}

func lift2(fn func(a, b Scalar) (Scalar, error), a, b Value) (Value, error) {
	switch a := a.(type) {
	case Vector:
		switch b := b.(type) {
		case Vector:
			return a.zip(fn, b)
		case Scalar:
			return a.broadcast(fn, b, false)
		}
	case Scalar:
		switch b := b.(type) {
		case Vector:
			return b.broadcast(fn, a, true)
		case Scalar:
			return fn(a, b)
		}
	}
	return nil, fmt.Errorf("vmath: operands %T and %T: %w", a, b, ErrType)
}

// zip combines v and w pairwise.
func (v Vector) zip(fn func(a, b Scalar) (Scalar, error), w Vector) (Vector, error) {
	if len(v.items) != len(w.items) {
		return Vector{}, fmt.Errorf("vmath: vec%d and vec%d: %w", len(v.items), len(w.items), ErrLengthMismatch)
	}
	out := make([]Scalar, len(v.items))
	for i := range v.items {
		r, err := fn(v.items[i], w.items[i])
		if err != nil {
			return Vector{}, err
		}
		out[i] = r
	}
	return Vector{items: out}, nil
}

// broadcast combines every component of v with s. When scalarFirst is set, s
// is the left operand.
func (v Vector) broadcast(fn func(a, b Scalar) (Scalar, error), s Scalar, scalarFirst bool) (Vector, error) {
	out := make([]Scalar, len(v.items))
	for i, c := range v.items {
		var (
			r   Scalar
			err error
		)
		if scalarFirst {
			r, err = fn(s, c)
		} else {
			r, err = fn(c, s)
		}
		if err != nil {
			return Vector{}, err
		}
		out[i] = r
	}
	return Vector{items: out}, nil
}
