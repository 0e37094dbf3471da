// Package sdfx implements kernel.Mesher with the marching cubes renderer
// of the github.com/deadsy/sdfx CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/fidgo/pkg/kernel"
	"github.com/chazu/fidgo/pkg/tree"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Mesher = (*Mesher)(nil)

// field adapts a compiled expression to sdf.SDF3.
type field struct {
	tape *tree.Tape
	box  sdf.Box3
}

func (f *field) Evaluate(p v3.Vec) float64 {
	return f.tape.Eval(p.X, p.Y, p.Z)
}

func (f *field) BoundingBox() sdf.Box3 {
	return f.box
}

// NewSDF3 wraps expr as an sdf.SDF3 whose bounding box is the cube of side
// size around center.
func NewSDF3(expr *tree.Node, center [3]float64, size float64) sdf.SDF3 {
	c := v3.Vec{X: center[0], Y: center[1], Z: center[2]}
	return &field{
		tape: expr.Compile(),
		box:  sdf.NewBox3(c, v3.Vec{X: size, Y: size, Z: size}),
	}
}

// Mesher extracts meshes with uniform marching cubes.
type Mesher struct{}

// New returns a Mesher.
func New() *Mesher {
	return &Mesher{}
}

// Mesh samples expr over the request's cube with 2^Depth cells per side.
// Every triangle gets its own three vertices, each carrying the face normal.
func (m *Mesher) Mesh(expr *tree.Node, req kernel.Request) (*kernel.Mesh, error) {
	if expr == nil {
		return nil, fmt.Errorf("sdfx: nil expression")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s := NewSDF3(expr, req.Center, req.Scale)

	renderer := render.NewMarchingCubesUniform(req.Cells())
	triangles := render.ToTriangles(s, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// SaveSTL writes m to path as a binary STL file.
func SaveSTL(path string, m *kernel.Mesh) error {
	tris := make([]*sdf.Triangle3, m.TriangleCount())
	for i := range tris {
		t := m.Triangle(i)
		tris[i] = &sdf.Triangle3{vec(t[0]), vec(t[1]), vec(t[2])}
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	return nil
}

func vec(p [3]float32) v3.Vec {
	return v3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}
