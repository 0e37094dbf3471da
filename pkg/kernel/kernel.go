// Package kernel defines the mesh extraction interface. Implementations
// (see kernel/sdfx) turn a distance-field expression into triangles.
package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/fidgo/pkg/tree"
)

// MaxDepth is the deepest subdivision a Request may ask for. Depth d
// samples 2^d cells along each side of the region.
const MaxDepth = 10

// ErrBadRequest is wrapped by Request.Validate failures.
var ErrBadRequest = errors.New("kernel: bad mesh request")

// Request describes the cubic region to mesh: a cube of side Scale around
// Center, subdivided Depth times.
type Request struct {
	Depth  int
	Center [3]float64
	Scale  float64
}

// Cells returns the number of sampling cells along each side.
func (r Request) Cells() int { return 1 << r.Depth }

// Validate checks the depth range and that the region has positive size.
func (r Request) Validate() error {
	if r.Depth < 1 || r.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside [1, %d]", ErrBadRequest, r.Depth, MaxDepth)
	}
	if !(r.Scale > 0) {
		return fmt.Errorf("%w: scale %g must be positive", ErrBadRequest, r.Scale)
	}
	return nil
}

// Mesher extracts the zero level set of a distance-field expression.
type Mesher interface {
	Mesh(expr *tree.Node, req Request) (*Mesh, error)
}
