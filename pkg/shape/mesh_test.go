package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/fidgo/pkg/kernel"
	"github.com/chazu/fidgo/pkg/kernel/sdfx"
	"github.com/chazu/fidgo/pkg/tree"
)

type recordingMesher struct {
	calls []kernel.Request
	err   error
}

func (m *recordingMesher) Mesh(_ *tree.Node, req kernel.Request) (*kernel.Mesh, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &kernel.Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0, 0}}, nil
}

func TestMeshRequestFromBounds(t *testing.T) {
	m := &recordingMesher{}
	s := Translate(Box(2, 4, 1), 10, 0, 0)

	mesh, warn, err := Mesh(m, s, 6)
	require.NoError(t, err)
	assert.Nil(t, warn)
	assert.Equal(t, 1, mesh.VertexCount())

	require.Len(t, m.calls, 1)
	req := m.calls[0]
	assert.Equal(t, 6, req.Depth)
	assert.Equal(t, [3]float64{10, 0, 0}, req.Center)
	assert.InDelta(t, 4.04, req.Scale, 1e-12)
}

func TestMeshInfiniteBoundsWarns(t *testing.T) {
	m := &recordingMesher{}
	mesh, warn, err := Circle(2).Mesh(m, 4)
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.NotNil(t, mesh)
	assert.True(t, math.IsInf(warn.Original.ZMax, 1))
	assert.Equal(t, BoundingBox{-2, 2, -2, 2, -1, 1}, warn.Substituted)
	assert.Contains(t, warn.Error(), "non-finite")

	var asErr error = warn
	var target *NonFiniteBoundsWarning
	assert.True(t, errors.As(asErr, &target))

	assert.InDelta(t, 4.04, m.calls[0].Scale, 1e-12)
}

func TestMeshEmptyBoundsSkipsMesher(t *testing.T) {
	m := &recordingMesher{}
	disjoint := Intersection(Sphere(1), Translate(Sphere(1), 10, 0, 0))
	mesh, warn, err := Mesh(m, disjoint, 5)
	require.NoError(t, err)
	assert.Nil(t, warn)
	assert.True(t, mesh.IsEmpty())
	assert.Empty(t, m.calls)
}

func TestMeshPropagatesMesherError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := Mesh(&recordingMesher{err: boom}, Sphere(1), 3)
	require.ErrorIs(t, err, boom)
}

func TestMeshInfiniteCircleWithSdfx(t *testing.T) {
	mesh, warn, err := Mesh(sdfx.New(), Circle(1), 4)
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.False(t, mesh.IsEmpty())
	assert.Positive(t, mesh.TriangleCount())
}

func TestMeshSphereWithSdfx(t *testing.T) {
	mesh, warn, err := Sphere(1).Mesh(sdfx.New(), 5)
	require.NoError(t, err)
	assert.Nil(t, warn)
	require.False(t, mesh.IsEmpty())

	min, max := mesh.Extent()
	for a := 0; a < 3; a++ {
		assert.InDelta(t, -1, float64(min[a]), 0.1)
		assert.InDelta(t, 1, float64(max[a]), 0.1)
	}
}
