package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/fidgo/pkg/tree"
	"github.com/chazu/fidgo/pkg/vmath"
)

// ErrNoShapes is returned by the n-ary combinators when called with no
// operands.
var ErrNoShapes = errors.New("shape: no operands")

// Union is the set union of a and b. The min of two exact fields stays
// exact as long as the shapes cannot overlap.
func Union(a, b Shape) Shape {
	ex := Bound
	if a.Exactness == Exact && b.Exactness == Exact && !a.Bounds.Overlaps(b.Bounds) {
		ex = Exact
	}
	return New(tree.Binary(tree.OpMin, a.Expr, b.Expr), a.Bounds.Merge(b.Bounds), ex)
}

// Intersection is the set intersection of a and b.
func Intersection(a, b Shape) Shape {
	return New(tree.Binary(tree.OpMax, a.Expr, b.Expr), a.Bounds.Shrink(b.Bounds), Bound)
}

// Difference removes b from a.
func Difference(a, b Shape) Shape {
	df := tree.Binary(tree.OpMax, a.Expr, tree.Unary(tree.OpNeg, b.Expr))
	return New(df, a.Bounds.KeepLeft(b.Bounds), Bound)
}

// Xor keeps the points inside exactly one of a and b.
func Xor(a, b Shape) Shape {
	lo := a.scalar().Min(b.scalar())
	hi := a.scalar().Max(b.scalar())
	return New(lo.Max(hi.Neg()).Node(), a.Bounds.Merge(b.Bounds), Bound)
}

// UnionAll folds Union over shapes as a balanced tree.
func UnionAll(shapes ...Shape) (Shape, error) { return balanced(Union, shapes) }

// IntersectionAll folds Intersection over shapes as a balanced tree.
func IntersectionAll(shapes ...Shape) (Shape, error) { return balanced(Intersection, shapes) }

// XorAll folds Xor over shapes as a balanced tree.
func XorAll(shapes ...Shape) (Shape, error) { return balanced(Xor, shapes) }

// balanced splits shapes in half and recurses, keeping the expression
// depth logarithmic in the operand count.
func balanced(op func(a, b Shape) Shape, shapes []Shape) (Shape, error) {
	if len(shapes) == 0 {
		return Shape{}, ErrNoShapes
	}
	var fold func([]Shape) Shape
	fold = func(s []Shape) Shape {
		if len(s) == 1 {
			return s[0]
		}
		mid := len(s) / 2
		return op(fold(s[:mid]), fold(s[mid:]))
	}
	return fold(shapes), nil
}

// DifferenceAll removes every tool from base, left to right.
func DifferenceAll(base Shape, tools ...Shape) Shape {
	out := base
	for _, t := range tools {
		out = Difference(out, t)
	}
	return out
}

// Translate moves s by (dx, dy, dz).
func Translate(s Shape, dx, dy, dz float64) Shape {
	p, _ := vmath.AxesXYZ().Sub(vmath.Vec3(dx, dy, dz))
	df := s.Expr.RemapXYZ(p.Elem(0).Node(), p.Elem(1).Node(), p.Elem(2).Node())
	return New(df, s.Bounds.Translate(dx, dy, dz), s.Exactness)
}

// TranslateVec moves s by a vec2 (z offset 0) or vec3. A symbolic offset
// component is not a rigid motion: that axis becomes unbounded and the
// result is a Bound field.
func TranslateVec(s Shape, v vmath.Vector) (Shape, error) {
	if v.Len() != 2 && v.Len() != 3 {
		return Shape{}, fmt.Errorf("shape: translate by vec%d: %w", v.Len(), vmath.ErrLengthMismatch)
	}
	off := v.Components()
	if len(off) == 2 {
		off = append(off, vmath.Real(0))
	}
	if f, ok := v.Floats(); ok {
		f = append(f, 0)
		return Translate(s, f[0], f[1], f[2]), nil
	}

	axes := vmath.AxesXYZ()
	nodes := make([]*tree.Node, 3)
	faces := s.Bounds.faces()
	inf := math.Inf(1)
	for i := 0; i < 3; i++ {
		nodes[i] = axes.Elem(i).Sub(off[i]).Node()
		if d, ok := off[i].Float(); ok {
			faces[2*i] += d
			faces[2*i+1] += d
		} else {
			faces[2*i], faces[2*i+1] = -inf, inf
		}
	}
	b := BoundingBox{faces[0], faces[1], faces[2], faces[3], faces[4], faces[5]}
	return New(s.Expr.RemapXYZ(nodes[0], nodes[1], nodes[2]), b, Bound), nil
}

// Expand offsets the surface of s outward by k; negative k insets it.
func Expand(s Shape, k float64) Shape {
	df := s.scalar().Sub(vmath.Real(k))
	return New(df.Node(), s.Bounds.Expand(k), s.Exactness)
}

// ExtrudeZ extrudes a 2D shape along z over [0, h].
func ExtrudeZ(s Shape, h float64) Shape {
	z := vmath.Symbolic(tree.Z()).Sub(vmath.Real(h / 2))
	df := slabField(s.scalar(), z, h/2)
	b := s.Bounds
	b.ZMin, b.ZMax = order(0, h)
	return New(df, b, s.Exactness)
}

// RevolveZ revolves a 2D profile around the z axis. The profile's x axis
// becomes the distance from the z axis and its y axis becomes z.
func RevolveZ(s Shape) Shape {
	r := vmath.AxesXY().Length()
	df := s.Expr.RemapXYZ(r.Node(), tree.Z(), tree.Y())
	outer := math.Max(math.Abs(s.Bounds.XMin), math.Abs(s.Bounds.XMax))
	b := NewBoundingBox(-outer, outer, -outer, outer, s.Bounds.YMin, s.Bounds.YMax)
	return New(df, b, Bound)
}
