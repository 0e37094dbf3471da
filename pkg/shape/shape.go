package shape

import (
	"github.com/chazu/fidgo/pkg/kernel"
	"github.com/chazu/fidgo/pkg/tree"
	"github.com/chazu/fidgo/pkg/vmath"
)

// Exactness classifies a shape's distance field.
type Exactness int

const (
	// Exact fields give the true Euclidean distance to the surface and are
	// safe to offset.
	Exact Exactness = iota
	// Bound fields are only correct in sign.
	Bound
)

func (e Exactness) String() string {
	if e == Exact {
		return "exact"
	}
	return "bound"
}

// ParseExactness is the inverse of Exactness.String.
func ParseExactness(s string) (Exactness, bool) {
	switch s {
	case "exact":
		return Exact, true
	case "bound":
		return Bound, true
	}
	return Bound, false
}

// Shape couples a distance-field expression with a conservative bounding
// box. Negative values of Expr are inside the shape.
type Shape struct {
	Expr      *tree.Node
	Bounds    BoundingBox
	Exactness Exactness
}

// New returns a shape from its parts.
func New(expr *tree.Node, bounds BoundingBox, exactness Exactness) Shape {
	return Shape{Expr: expr, Bounds: bounds, Exactness: exactness}
}

// Eval evaluates the distance field at one point.
func (s Shape) Eval(x, y, z float64) float64 {
	return s.Expr.Eval(x, y, z)
}

// Mesh extracts a triangle mesh of s. See the package-level Mesh.
func (s Shape) Mesh(m kernel.Mesher, depth int) (*kernel.Mesh, *NonFiniteBoundsWarning, error) {
	return Mesh(m, s, depth)
}

func (s Shape) scalar() vmath.Scalar { return vmath.Symbolic(s.Expr) }

// vec2 pairs two valid scalars.
func vec2(a, b vmath.Scalar) vmath.Vector {
	v, err := vmath.NewVector(a, b)
	if err != nil {
		panic("shape: " + err.Error())
	}
	return v
}

// boxField is the exact distance to a centered box with half extents
// half, given the coordinate vector p of the same length.
func boxField(p, half vmath.Vector) *tree.Node {
	q, err := p.Abs().Sub(half)
	if err != nil {
		panic("shape: " + err.Error())
	}
	inner := q.Elem(q.Len() - 1)
	for i := q.Len() - 2; i >= 0; i-- {
		inner = q.Elem(i).Max(inner)
	}
	outside := q.MaxScalar(vmath.Real(0)).Length()
	return outside.Add(inner.Min(vmath.Real(0))).Node()
}

// slabField is the exact distance for a 2D field d intersected with the
// slab |c| <= half, where c is a symbolic coordinate.
func slabField(d, c vmath.Scalar, half float64) *tree.Node {
	w := vec2(d, c.Abs().Sub(vmath.Real(half)))
	inner := w.Elem(0).Max(w.Elem(1)).Min(vmath.Real(0))
	return inner.Add(w.MaxScalar(vmath.Real(0)).Length()).Node()
}
