package vmath

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/fidgo/pkg/tree"
)

var (
	negFn    = unary(tree.OpNeg)
	absFn    = unary(tree.OpAbs)
	recipFn  = unary(tree.OpRecip)
	sqrtFn   = unary(tree.OpSqrt)
	squareFn = unary(tree.OpSquare)
	floorFn  = unary(tree.OpFloor)
	ceilFn   = unary(tree.OpCeil)
	roundFn  = unary(tree.OpRound)
	sinFn    = unary(tree.OpSin)
	cosFn    = unary(tree.OpCos)
	tanFn    = unary(tree.OpTan)
	asinFn   = unary(tree.OpAsin)
	acosFn   = unary(tree.OpAcos)
	atanFn   = unary(tree.OpAtan)
	expFn    = unary(tree.OpExp)
	lnFn     = unary(tree.OpLn)
	notFn    = unary(tree.OpNot)

	addFn     = binary(tree.OpAdd)
	subFn     = binary(tree.OpSub)
	mulFn     = binary(tree.OpMul)
	divFn     = binary(tree.OpDiv)
	atan2Fn   = binary(tree.OpAtan2)
	minFn     = binary(tree.OpMin)
	maxFn     = binary(tree.OpMax)
	compareFn = binary(tree.OpCompare)
	modFn     = binary(tree.OpMod)
	andFn     = binary(tree.OpAnd)
	orFn      = binary(tree.OpOr)
)

func Neg(v Value) Value    { return Apply(negFn, v) }
func Abs(v Value) Value    { return Apply(absFn, v) }
func Recip(v Value) Value  { return Apply(recipFn, v) }
func Sqrt(v Value) Value   { return Apply(sqrtFn, v) }
func Square(v Value) Value { return Apply(squareFn, v) }
func Floor(v Value) Value  { return Apply(floorFn, v) }
func Ceil(v Value) Value   { return Apply(ceilFn, v) }
func Round(v Value) Value  { return Apply(roundFn, v) }
func Sin(v Value) Value    { return Apply(sinFn, v) }
func Cos(v Value) Value    { return Apply(cosFn, v) }
func Tan(v Value) Value    { return Apply(tanFn, v) }
func Asin(v Value) Value   { return Apply(asinFn, v) }
func Acos(v Value) Value   { return Apply(acosFn, v) }
func Atan(v Value) Value   { return Apply(atanFn, v) }
func Exp(v Value) Value    { return Apply(expFn, v) }
func Ln(v Value) Value     { return Apply(lnFn, v) }

// Not yields 1 where v is zero and 0 elsewhere.
func Not(v Value) Value { return Apply(notFn, v) }

func Add(a, b Value) (Value, error)   { return Apply2(addFn, a, b) }
func Sub(a, b Value) (Value, error)   { return Apply2(subFn, a, b) }
func Mul(a, b Value) (Value, error)   { return Apply2(mulFn, a, b) }
func Div(a, b Value) (Value, error)   { return Apply2(divFn, a, b) }
func Mod(a, b Value) (Value, error)   { return Apply2(modFn, a, b) }
func Min(a, b Value) (Value, error)   { return Apply2(minFn, a, b) }
func Max(a, b Value) (Value, error)   { return Apply2(maxFn, a, b) }
func Atan2(a, b Value) (Value, error) { return Apply2(atan2Fn, a, b) }

// Compare yields -1 where a < b, 0 where a == b and +1 otherwise,
// including where either side is NaN.
func Compare(a, b Value) (Value, error) { return Apply2(compareFn, a, b) }

// And yields b where a is nonzero, otherwise a.
func And(a, b Value) (Value, error) { return Apply2(andFn, a, b) }

// Or yields a where a is nonzero, otherwise b.
func Or(a, b Value) (Value, error) { return Apply2(orFn, a, b) }

// LessThan yields 1 where a < b and 0 elsewhere. It is built from compare
// and a clamp so it stays branch-free in symbolic form.
func LessThan(a, b Value) (Value, error) {
	c, err := Compare(b, a)
	if err != nil {
		return nil, err
	}
	return Max(c, Real(0))
}

// LessEqual yields 1 where a <= b and 0 elsewhere.
func LessEqual(a, b Value) (Value, error) {
	c, err := Compare(b, a)
	if err != nil {
		return nil, err
	}
	c, err = Add(c, Real(1))
	if err != nil {
		return nil, err
	}
	return Min(c, Real(1))
}

// Pow raises a to the power b. Real operands use math.Pow. A symbolic base
// needs a real integer exponent, which is expanded by repeated squaring;
// anything else fails with ErrNonIntegerPower.
func Pow(a, b Value) (Value, error) {
	return lift2(powScalar, a, b)
}

func powScalar(a, b Scalar) (Scalar, error) {
	if !a.Valid() || !b.Valid() {
		return Scalar{}, ErrType
	}
	if a.IsReal() && b.IsReal() {
		return Real(math.Pow(a.real, b.real)), nil
	}
	exp, ok := b.Float()
	if !ok || exp != math.Trunc(exp) || math.Abs(exp) > math.MaxInt32 {
		return Scalar{}, fmt.Errorf("vmath: pow exponent %s: %w", b, ErrNonIntegerPower)
	}
	return Symbolic(tree.Pow(a.Node(), int(exp))), nil
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi Value) (Value, error) {
	r, err := Max(v, lo)
	if err != nil {
		return nil, err
	}
	return Min(r, hi)
}

// Mix interpolates linearly from a to b by t.
func Mix(a, b, t Value) (Value, error) {
	d, err := Sub(b, a)
	if err != nil {
		return nil, err
	}
	d, err = Mul(d, t)
	if err != nil {
		return nil, err
	}
	return Add(a, d)
}

// Smoothstep is the Hermite step between edge0 and edge1.
func Smoothstep(edge0, edge1, v Value) (Value, error) {
	num, err := Sub(v, edge0)
	if err != nil {
		return nil, err
	}
	den, err := Sub(edge1, edge0)
	if err != nil {
		return nil, err
	}
	t, err := Div(num, den)
	if err != nil {
		return nil, err
	}
	if t, err = Clamp(t, Real(0), Real(1)); err != nil {
		return nil, err
	}
	// t*t*(3 - 2t)
	two, err := Mul(t, Real(2))
	if err != nil {
		return nil, err
	}
	k, err := Sub(Real(3), two)
	if err != nil {
		return nil, err
	}
	return Mul(Square(t), k)
}

var errEmptySum = errors.New("vmath: sum of no values")

// Sum adds its arguments left to right.
func Sum(values ...Value) (Value, error) {
	if len(values) == 0 {
		return nil, errEmptySum
	}
	acc := values[0]
	for _, v := range values[1:] {
		var err error
		if acc, err = Add(acc, v); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
