package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/fidgo/pkg/design"
	"github.com/chazu/fidgo/pkg/kernel"
	"github.com/chazu/fidgo/pkg/kernel/sdfx"
	"github.com/chazu/fidgo/pkg/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Depth    int
	OutDir   string
	FromDB   []string
	Database string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render [script...]",
		Short: "Mesh scripts or stored shapes to STL",
		Long: `Evaluate each script, mesh every part it defines and write one binary
STL file per part, named <script>_<part>.stl. Scripts are rendered
concurrently. Stored shapes given with --from-db are written as <name>.stl.

Example:
  fidgo render bracket.fid
  fidgo render --depth 8 --out-dir build a.fid b.fid
  fidgo render --from-db knob --from-db lid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRenderFlags(cmd, opts)
			if len(args) == 0 && len(opts.FromDB) == 0 {
				return WrapExitError(ExitCommandError, "nothing to render",
					fmt.Errorf("give at least one script or --from-db name"))
			}
			return runRender(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", 0, "octree depth, 2^depth cells per side (default from config)")
	cmd.Flags().StringVarP(&opts.OutDir, "out-dir", "o", "", "output directory (default from config)")
	cmd.Flags().StringArrayVar(&opts.FromDB, "from-db", nil, "render a shape from the library (repeatable)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the shape library (default from config)")

	return cmd
}

// applyRenderFlags fills unset flags from the resolved configuration.
func applyRenderFlags(cmd *cobra.Command, opts *RenderOptions) {
	if !cmd.Flags().Changed("depth") {
		opts.Depth = opts.Config.Depth
	}
	if !cmd.Flags().Changed("out-dir") {
		opts.OutDir = opts.Config.OutDir
	}
	if !cmd.Flags().Changed("db") {
		opts.Database = opts.Config.Store
	}
}

func runRender(ctx context.Context, opts *RenderOptions, scripts []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "create output directory", err)
	}

	var st *store.Store
	if len(opts.FromDB) > 0 {
		var err error
		if st, err = store.Open(opts.Database); err != nil {
			return WrapExitError(ExitCommandError, "open shape library", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing shape library", "error", closeErr)
			}
		}()
	}

	mesher := sdfx.New()
	written := make([][]string, len(scripts)+len(opts.FromDB))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range scripts {
		g.Go(func() error {
			d, _, err := loadDesign(opts.RootOptions, path)
			if err != nil {
				return err
			}
			prefix := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			files, err := writeDesign(ctx, d, mesher, opts, prefix+"_")
			written[i] = files
			return err
		})
	}

	for j, name := range opts.FromDB {
		g.Go(func() error {
			rec, err := st.Load(ctx, name)
			if err != nil {
				return WrapExitError(ExitCommandError, "load shape", err)
			}
			d := design.New()
			d.AddPart(rec.Name, rec.Shape)
			files, err := writeDesign(ctx, d, mesher, opts, "")
			written[len(scripts)+j] = files
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, files := range written {
		for _, f := range files {
			fmt.Fprintln(out, f)
		}
	}
	return nil
}

// writeDesign meshes d and writes one STL per part, returning the paths.
func writeDesign(ctx context.Context, d *design.Design, m kernel.Mesher, opts *RenderOptions, prefix string) ([]string, error) {
	meshes, err := meshDesign(ctx, d, m, opts.Depth)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(meshes))
	for _, mesh := range meshes {
		if !design.SafePartName(mesh.PartName) {
			return nil, WrapExitError(ExitFailure, "write STL",
				fmt.Errorf("part name %q is not a plain file name", mesh.PartName))
		}
		if mesh.TriangleCount() == 0 {
			slog.Warn("part meshed to nothing", "part", mesh.PartName)
		}
		path := filepath.Join(opts.OutDir, prefix+mesh.PartName+".stl")
		if err := sdfx.SaveSTL(path, mesh); err != nil {
			return nil, WrapExitError(ExitCommandError, "write STL", err)
		}
		slog.Info("wrote mesh", "part", mesh.PartName, "triangles", mesh.TriangleCount(), "path", path)
		files = append(files, path)
	}
	return files, nil
}
