package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/fidgo/pkg/tree"
)

func TestNewVectorValidation(t *testing.T) {
	_, err := NewVector(Real(1))
	require.ErrorIs(t, err, ErrArity)
	require.ErrorIs(t, err, ErrVector)

	_, err = NewVector(Real(1), Real(2), Real(3), Real(4), Real(5))
	require.ErrorIs(t, err, ErrArity)

	_, err = NewVector(Real(1), Scalar{})
	require.ErrorIs(t, err, ErrType)

	v, err := NewVector(Real(1), Symbolic(tree.X()))
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.True(t, v.Elem(0).IsReal())
	assert.True(t, v.Elem(1).IsSymbolic())
}

func TestSwizzleIdentity(t *testing.T) {
	tests := []struct {
		v       Vector
		letters string
	}{
		{Vec2(1, 2), "xy"},
		{Vec3(1, 2, 3), "xyz"},
		{Vec4(1, 2, 3, 4), "xyzw"},
		{AxesXYZ(), "xyz"},
	}
	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := tt.v.Swizzle(tt.letters)
			require.NoError(t, err)
			gv, ok := got.(Vector)
			require.True(t, ok)
			assert.True(t, gv.Equal(tt.v))
		})
	}
}

func TestSwizzleSubsetsAndRepeats(t *testing.T) {
	v := Vec4(1, 2, 3, 4)

	got, err := v.Swizzle("z")
	require.NoError(t, err)
	s, ok := got.(Scalar)
	require.True(t, ok)
	f, _ := s.Float()
	assert.Equal(t, 3.0, f)

	got, err = v.Swizzle("wxx")
	require.NoError(t, err)
	assert.True(t, got.(Vector).Equal(Vec3(4, 1, 1)))

	// Symbolic components are shared, not copied.
	got, err = AxesXYZ().Swizzle("zz")
	require.NoError(t, err)
	zz := got.(Vector)
	assert.Same(t, tree.Z(), zz.Elem(0).Node())
	assert.Same(t, tree.Z(), zz.Elem(1).Node())
}

func TestSwizzleErrors(t *testing.T) {
	tests := []struct {
		name    string
		v       Vector
		letters string
	}{
		{"z on vec2", Vec2(1, 2), "z"},
		{"w on vec3", Vec3(1, 2, 3), "xw"},
		{"non-axis letter", Vec3(1, 2, 3), "xq"},
		{"empty", Vec3(1, 2, 3), ""},
		{"too long", Vec4(1, 2, 3, 4), "xyzwx"},
		{"color letters", Vec4(1, 2, 3, 4), "rgb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.v.Swizzle(tt.letters)
			require.ErrorIs(t, err, ErrSwizzle)
		})
	}
}

func TestAt(t *testing.T) {
	v := Vec3(7, 8, 9)
	s, err := v.At(AxisY)
	require.NoError(t, err)
	f, _ := s.Float()
	assert.Equal(t, 8.0, f)

	_, err = v.At(AxisW)
	require.ErrorIs(t, err, ErrSwizzle)
	assert.Equal(t, "w", AxisW.String())
}

func TestCommutativityAndAntisymmetry(t *testing.T) {
	pairs := [][2]Vector{
		{Vec2(1, -2), Vec2(0.5, 4)},
		{Vec3(1, 2, 3), Vec3(-4, 5, 6.5)},
		{Vec4(1, 2, 3, 4), Vec4(4, 3, 2, 1)},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		ab, err := a.Add(b)
		require.NoError(t, err)
		ba, err := b.Add(a)
		require.NoError(t, err)
		assert.True(t, ab.Equal(ba), "%s + %s", a, b)

		amb, err := a.Sub(b)
		require.NoError(t, err)
		bma, err := b.Sub(a)
		require.NoError(t, err)
		assert.True(t, amb.Equal(bma.Neg()), "%s - %s", a, b)
	}
}

func TestCrossAndDot(t *testing.T) {
	a, b := Vec3(1, 2, 3), Vec3(4, 5, 6)

	c, err := a.Cross(b)
	require.NoError(t, err)
	assert.True(t, c.Equal(Vec3(-3, 6, -3)), "got %s", c)

	d, err := a.Dot(b)
	require.NoError(t, err)
	f, ok := d.Float()
	require.True(t, ok)
	assert.Equal(t, 32.0, f)

	_, err = Vec2(1, 2).Cross(Vec2(3, 4))
	require.ErrorIs(t, err, ErrCrossProduct)
	_, err = Vec3(1, 2, 3).Cross(Vec4(1, 2, 3, 4))
	require.ErrorIs(t, err, ErrCrossProduct)
}

func TestLengthMismatch(t *testing.T) {
	_, err := Vec2(1, 2).Add(Vec3(1, 2, 3))
	require.ErrorIs(t, err, ErrLengthMismatch)
	_, err = Vec3(1, 2, 3).Dot(Vec4(1, 2, 3, 4))
	require.ErrorIs(t, err, ErrLengthMismatch)
	_, err = Add(Vec2(1, 2), Vec4(1, 2, 3, 4))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestLengthAndNormalize(t *testing.T) {
	l, ok := Vec3(3, 4, 12).Length().Float()
	require.True(t, ok)
	assert.Equal(t, 13.0, l)

	n, ok := Vec2(0, 5).Normalize().Floats()
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1}, n)
}

func TestSymbolicLengthEvaluates(t *testing.T) {
	r := AxesXYZ().Length()
	require.True(t, r.IsSymbolic())
	assert.InDelta(t, 13.0, r.Node().Eval(3, 4, 12), 1e-12)
}

func TestMixedDomainVector(t *testing.T) {
	v, err := NewVector(Symbolic(tree.X()), Real(2), Real(3))
	require.NoError(t, err)

	w := v.AddScalar(Real(1))
	assert.True(t, w.Elem(0).IsSymbolic())
	assert.True(t, w.Elem(1).IsReal())
	f, _ := w.Elem(2).Float()
	assert.Equal(t, 4.0, f)
	assert.InDelta(t, 11.0, w.Elem(0).Node().Eval(10, 0, 0), 1e-12)
}

func TestBroadcastKeepsOperandOrder(t *testing.T) {
	v := Vec3(1, 2, 4)

	got, ok := v.RSubScalar(Real(10)).Floats()
	require.True(t, ok)
	assert.Equal(t, []float64{9, 8, 6}, got)

	got, ok = v.SubScalar(Real(10)).Floats()
	require.True(t, ok)
	assert.Equal(t, []float64{-9, -8, -6}, got)

	got, ok = v.RDivScalar(Real(8)).Floats()
	require.True(t, ok)
	assert.Equal(t, []float64{8, 4, 2}, got)

	r, err := Div(Real(8), v)
	require.NoError(t, err)
	got, _ = r.(Vector).Floats()
	assert.Equal(t, []float64{8, 4, 2}, got)
}

func TestVectorPow(t *testing.T) {
	got, err := Vec2(2, 3).PowScalar(Real(2))
	require.NoError(t, err)
	f, _ := got.Floats()
	assert.Equal(t, []float64{4, 9}, f)

	sym, err := AxesXY().PowScalar(Real(3))
	require.NoError(t, err)
	assert.InDelta(t, 8.0, sym.Elem(0).Node().Eval(2, 0, 0), 1e-12)

	_, err = AxesXY().PowScalar(Real(0.5))
	require.ErrorIs(t, err, ErrNonIntegerPower)
}

func TestVectorString(t *testing.T) {
	assert.Equal(t, "Vec3(1, 2.5, -3)", Vec3(1, 2.5, -3).String())
	assert.True(t, math.IsNaN(Vec2(0, 0).Normalize().Elem(0).real))
}

func TestZeroVectorReductions(t *testing.T) {
	var v Vector
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0.0, realOf(t, v.Length()))

	dot, err := v.Dot(Vector{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, realOf(t, dot))
	assert.Equal(t, 0, v.Normalize().Len())
}
