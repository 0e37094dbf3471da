package shape

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/chazu/fidgo/pkg/kernel"
)

// regionPadding scales the meshing cube slightly past the bounding box so
// surfaces lying on a face are still sampled.
const regionPadding = 1.01

// NonFiniteBoundsWarning reports that a shape had infinite bounding faces
// and was meshed inside a substituted finite box. The mesh is still
// produced, but it may be a truncated view of the shape.
type NonFiniteBoundsWarning struct {
	Original    BoundingBox
	Substituted BoundingBox
}

func (w *NonFiniteBoundsWarning) Error() string {
	return fmt.Sprintf("shape has at least one non-finite bounding box face %s; meshing inside %s instead",
		w.Original, w.Substituted)
}

// Mesh extracts a triangle mesh of s with m. Infinite faces of the
// bounding box are replaced by -1/+1 and reported through the returned
// warning. The meshed region is a cube around the box center whose side
// is 1.01 times the longest box side. A shape with empty bounds yields an
// empty mesh.
func Mesh(m kernel.Mesher, s Shape, depth int) (*kernel.Mesh, *NonFiniteBoundsWarning, error) {
	box, substituted := s.Bounds.NormalizeForMeshing()
	var warn *NonFiniteBoundsWarning
	if substituted {
		warn = &NonFiniteBoundsWarning{Original: s.Bounds, Substituted: box}
		slog.Warn("meshing non-finite shape", "bounds", s.Bounds.String(), "substituted", box.String())
	}
	if box.IsEmpty() {
		return &kernel.Mesh{}, warn, nil
	}

	sf := regionPadding * math.Max(box.XLength(), math.Max(box.YLength(), box.ZLength()))
	req := kernel.Request{Depth: depth, Center: box.Center(), Scale: sf}
	mesh, err := m.Mesh(s.Expr, req)
	if err != nil {
		return nil, warn, fmt.Errorf("shape: mesh: %w", err)
	}
	return mesh, warn, nil
}
