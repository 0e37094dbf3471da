package vmath

import (
	"fmt"
	"strings"

	"github.com/chazu/fidgo/pkg/tree"
)

// Axis names a vector component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisW
)

const axisLetters = "xyzw"

func (a Axis) String() string {
	if a < AxisX || a > AxisW {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisLetters[a : a+1]
}

// Vector is an immutable vector of 2, 3 or 4 scalars. Components may mix
// real and symbolic scalars. Build one with NewVector or Vec2/Vec3/Vec4; the
// zero Vector has no components and its reductions yield Real(0).
type Vector struct {
	items []Scalar
}

func (Vector) isValue() {}

// NewVector builds a vector from its components.
func NewVector(components ...Scalar) (Vector, error) {
	if len(components) < 2 || len(components) > 4 {
		return Vector{}, fmt.Errorf("vmath: %d components: %w", len(components), ErrArity)
	}
	for i, c := range components {
		if !c.Valid() {
			return Vector{}, fmt.Errorf("vmath: component %d: %w", i, ErrType)
		}
	}
	items := make([]Scalar, len(components))
	copy(items, components)
	return Vector{items: items}, nil
}

// Vec2 returns a real 2-vector.
func Vec2(x, y float64) Vector {
	return Vector{items: []Scalar{Real(x), Real(y)}}
}

// Vec3 returns a real 3-vector.
func Vec3(x, y, z float64) Vector {
	return Vector{items: []Scalar{Real(x), Real(y), Real(z)}}
}

// Vec4 returns a real 4-vector.
func Vec4(x, y, z, w float64) Vector {
	return Vector{items: []Scalar{Real(x), Real(y), Real(z), Real(w)}}
}

// AxesXYZ returns the vector of the shared x, y and z axis nodes.
func AxesXYZ() Vector {
	return Vector{items: []Scalar{Symbolic(tree.X()), Symbolic(tree.Y()), Symbolic(tree.Z())}}
}

// AxesXY returns the vector of the shared x and y axis nodes.
func AxesXY() Vector {
	return Vector{items: []Scalar{Symbolic(tree.X()), Symbolic(tree.Y())}}
}

// Len returns the number of components.
func (v Vector) Len() int { return len(v.items) }

// Elem returns component i. Like slice indexing it panics when i is out of
// range; use At or Swizzle for checked access.
func (v Vector) Elem(i int) Scalar { return v.items[i] }

// Components returns a copy of the components.
func (v Vector) Components() []Scalar {
	out := make([]Scalar, len(v.items))
	copy(out, v.items)
	return out
}

// At returns the component for axis a, failing with ErrSwizzle if the
// vector has no such axis.
func (v Vector) At(a Axis) (Scalar, error) {
	if a < AxisX || int(a) >= len(v.items) {
		return Scalar{}, fmt.Errorf("vmath: vec%d has no %s axis: %w", len(v.items), a, ErrSwizzle)
	}
	return v.items[a], nil
}

// Swizzle selects components by axis letter. Letters are limited to the
// first Len() letters of "xyzw". A single letter yields a Scalar; several
// yield a Vector, with repeats allowed ("xx").
func (v Vector) Swizzle(letters string) (Value, error) {
	if letters == "" || len(letters) > 4 {
		return nil, fmt.Errorf("vmath: vec%d swizzle %q: %w", len(v.items), letters, ErrSwizzle)
	}
	valid := axisLetters[:len(v.items)]
	out := make([]Scalar, len(letters))
	for i := 0; i < len(letters); i++ {
		idx := strings.IndexByte(valid, letters[i])
		if idx < 0 {
			return nil, fmt.Errorf("vmath: vec%d swizzle %q: %w", len(v.items), letters, ErrSwizzle)
		}
		out[i] = v.items[idx]
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return Vector{items: out}, nil
}

// Map applies f to every component.
func (v Vector) Map(f UnaryFunc) Vector {
	out := make([]Scalar, len(v.items))
	for i, c := range v.items {
		out[i] = f.scalar(c)
	}
	return Vector{items: out}
}

// Equal reports whether v and w have the same length and identical
// components: equal reals, or the same expression node.
func (v Vector) Equal(w Vector) bool {
	if len(v.items) != len(w.items) {
		return false
	}
	for i := range v.items {
		if !v.items[i].same(w.items[i]) {
			return false
		}
	}
	return true
}

// Floats returns the components as numbers when every component is real.
func (v Vector) Floats() ([]float64, bool) {
	out := make([]float64, len(v.items))
	for i, c := range v.items {
		f, ok := c.Float()
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func (v Vector) String() string {
	parts := make([]string, len(v.items))
	for i, c := range v.items {
		parts[i] = c.String()
	}
	return fmt.Sprintf("Vec%d(%s)", len(v.items), strings.Join(parts, ", "))
}

// ---------------------------------------------------------------------------
// Elementwise arithmetic
// ---------------------------------------------------------------------------

func (v Vector) Add(w Vector) (Vector, error) { return v.zip(addFn.scalar, w) }
func (v Vector) Sub(w Vector) (Vector, error) { return v.zip(subFn.scalar, w) }
func (v Vector) Mul(w Vector) (Vector, error) { return v.zip(mulFn.scalar, w) }
func (v Vector) Div(w Vector) (Vector, error) { return v.zip(divFn.scalar, w) }
func (v Vector) Mod(w Vector) (Vector, error) { return v.zip(modFn.scalar, w) }
func (v Vector) Min(w Vector) (Vector, error) { return v.zip(minFn.scalar, w) }
func (v Vector) Max(w Vector) (Vector, error) { return v.zip(maxFn.scalar, w) }
func (v Vector) Pow(w Vector) (Vector, error) { return v.zip(powScalar, w) }

// ---------------------------------------------------------------------------
// Broadcast arithmetic
// ---------------------------------------------------------------------------

func (v Vector) AddScalar(s Scalar) Vector  { return v.mustBroadcast(addFn, s, false) }
func (v Vector) SubScalar(s Scalar) Vector  { return v.mustBroadcast(subFn, s, false) }
func (v Vector) MulScalar(s Scalar) Vector  { return v.mustBroadcast(mulFn, s, false) }
func (v Vector) DivScalar(s Scalar) Vector  { return v.mustBroadcast(divFn, s, false) }
func (v Vector) ModScalar(s Scalar) Vector  { return v.mustBroadcast(modFn, s, false) }
func (v Vector) MinScalar(s Scalar) Vector  { return v.mustBroadcast(minFn, s, false) }
func (v Vector) MaxScalar(s Scalar) Vector  { return v.mustBroadcast(maxFn, s, false) }
func (v Vector) RSubScalar(s Scalar) Vector { return v.mustBroadcast(subFn, s, true) }
func (v Vector) RDivScalar(s Scalar) Vector { return v.mustBroadcast(divFn, s, true) }
func (v Vector) RModScalar(s Scalar) Vector { return v.mustBroadcast(modFn, s, true) }

// PowScalar raises every component to the power s.
func (v Vector) PowScalar(s Scalar) (Vector, error) { return v.broadcast(powScalar, s, false) }

// mustBroadcast broadcasts a binary function that can only fail on invalid
// operands; an invalid s yields invalid components.
func (v Vector) mustBroadcast(f BinaryFunc, s Scalar, scalarFirst bool) Vector {
	out := make([]Scalar, len(v.items))
	for i, c := range v.items {
		if scalarFirst {
			out[i] = must2(f, s, c)
		} else {
			out[i] = must2(f, c, s)
		}
	}
	return Vector{items: out}
}

func (v Vector) Neg() Vector   { return v.Map(negFn) }
func (v Vector) Abs() Vector   { return v.Map(absFn) }
func (v Vector) Round() Vector { return v.Map(roundFn) }

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

// Dot returns the sum of the elementwise products of v and w.
func (v Vector) Dot(w Vector) (Scalar, error) {
	p, err := v.Mul(w)
	if err != nil {
		return Scalar{}, err
	}
	return p.sum(), nil
}

func (v Vector) sum() Scalar {
	if len(v.items) == 0 {
		return Real(0)
	}
	acc := v.items[0]
	for _, c := range v.items[1:] {
		acc = acc.Add(c)
	}
	return acc
}

// Cross returns the cross product of two 3-vectors.
func (v Vector) Cross(w Vector) (Vector, error) {
	if len(v.items) != 3 || len(w.items) != 3 {
		return Vector{}, fmt.Errorf("vmath: vec%d x vec%d: %w", len(v.items), len(w.items), ErrCrossProduct)
	}
	ax, ay, az := v.items[0], v.items[1], v.items[2]
	bx, by, bz := w.items[0], w.items[1], w.items[2]
	return Vector{items: []Scalar{
		ay.Mul(bz).Sub(az.Mul(by)),
		az.Mul(bx).Sub(ax.Mul(bz)),
		ax.Mul(by).Sub(ay.Mul(bx)),
	}}, nil
}

// Length returns the Euclidean length of v.
func (v Vector) Length() Scalar {
	sq, _ := v.Dot(v) // equal lengths by construction
	return sq.Sqrt()
}

// Normalize returns v scaled to unit length.
func (v Vector) Normalize() Vector {
	return v.DivScalar(v.Length())
}
