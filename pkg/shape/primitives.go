package shape

import (
	"math"

	"github.com/chazu/fidgo/pkg/tree"
	"github.com/chazu/fidgo/pkg/vmath"
)

// Sphere is a sphere of radius r centered at the origin.
func Sphere(r float64) Shape {
	df := vmath.AxesXYZ().Length().Sub(vmath.Real(r))
	return New(df.Node(), NewBoundingBox(-r, r, -r, r, -r, r), Exact)
}

// Box is a box with full side lengths lx, ly and lz centered at the origin.
func Box(lx, ly, lz float64) Shape {
	df := boxField(vmath.AxesXYZ(), vmath.Vec3(lx/2, ly/2, lz/2))
	return New(df, NewBoundingBox(-lx/2, lx/2, -ly/2, ly/2, -lz/2, lz/2), Exact)
}

// Circle is a 2D disc of radius r in the xy plane, unbounded along z.
func Circle(r float64) Shape {
	df := vmath.AxesXY().Length().Sub(vmath.Real(r))
	inf := math.Inf(1)
	return New(df.Node(), NewBoundingBox(-r, r, -r, r, -inf, inf), Exact)
}

// Rectangle is a 2D rectangle with side lengths lx and ly centered at the
// origin, unbounded along z.
func Rectangle(lx, ly float64) Shape {
	df := boxField(vmath.AxesXY(), vmath.Vec2(lx/2, ly/2))
	inf := math.Inf(1)
	return New(df, NewBoundingBox(-lx/2, lx/2, -ly/2, ly/2, -inf, inf), Exact)
}

// Torus is a z-aligned torus centered at the origin.
func Torus(major, minor float64) Shape {
	ring := vmath.AxesXY().Length().Sub(vmath.Real(major))
	df := vec2(ring, vmath.Symbolic(tree.Z())).Length().Sub(vmath.Real(minor))
	w := major + minor
	return New(df.Node(), NewBoundingBox(-w, w, -w, w, -minor, minor), Exact)
}

// Cylinder is a z-aligned cylinder of radius r and total height h centered
// at the origin.
func Cylinder(r, h float64) Shape {
	disc := vmath.AxesXY().Length().Sub(vmath.Real(r))
	df := slabField(disc, vmath.Symbolic(tree.Z()), h/2)
	return New(df, NewBoundingBox(-r, r, -r, r, -h/2, h/2), Exact)
}
