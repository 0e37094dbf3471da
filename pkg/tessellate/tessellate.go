// Package tessellate turns a design into triangle meshes. One mesh is
// produced per part, in part order.
package tessellate

import (
	"context"
	"fmt"
	"runtime"

	"github.com/chazu/fidgo/pkg/design"
	"github.com/chazu/fidgo/pkg/kernel"
	"github.com/chazu/fidgo/pkg/shape"
	"golang.org/x/sync/errgroup"
)

// Warning ties a non-finite bounds warning to the part that raised it.
type Warning struct {
	Part string
	*shape.NonFiniteBoundsWarning
}

func (w Warning) Error() string {
	return fmt.Sprintf("part %s: %s", w.Part, w.NonFiniteBoundsWarning.Error())
}

// Result holds the meshes of a design plus any meshing warnings.
type Result struct {
	Meshes   []*kernel.Mesh
	Warnings []Warning
}

// Tessellate meshes every part of d with m at the given octree depth.
// Parts are meshed concurrently, so m must be safe for concurrent use.
// The tessellator is read-only and never mutates the design.
func Tessellate(ctx context.Context, d *design.Design, m kernel.Mesher, depth int) (*Result, error) {
	if d == nil {
		return &Result{}, nil
	}
	parts := d.Parts()
	meshes := make([]*kernel.Mesh, len(parts))
	warnings := make([]*shape.NonFiniteBoundsWarning, len(parts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range parts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mesh, warn, err := p.Shape.Mesh(m, depth)
			if err != nil {
				return fmt.Errorf("tessellate: part %s: %w", p.Name, err)
			}
			mesh.PartName = p.Name
			meshes[i] = mesh
			warnings[i] = warn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Meshes: meshes}
	for i, w := range warnings {
		if w != nil {
			res.Warnings = append(res.Warnings, Warning{Part: parts[i].Name, NonFiniteBoundsWarning: w})
		}
	}
	return res, nil
}
