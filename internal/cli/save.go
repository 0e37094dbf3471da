package cli

import (
	"fmt"
	"log/slog"

	"github.com/chazu/fidgo/pkg/design"
	"github.com/chazu/fidgo/pkg/store"
	"github.com/spf13/cobra"
)

// StoreOptions holds the flags shared by the shape library commands.
type StoreOptions struct {
	*RootOptions
	Database string
	Part     string
}

// openStore opens the library named by --db, falling back to the config.
func openStore(cmd *cobra.Command, opts *StoreOptions) (*store.Store, error) {
	path := opts.Database
	if !cmd.Flags().Changed("db") {
		path = opts.Config.Store
	}
	slog.Debug("opening shape library", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open shape library", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing shape library", "error", err)
	}
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <name> <script>",
		Short: "Store a part of a script in the shape library",
		Long: `Evaluate a script and store one of its parts under <name>. A script
with a single part needs no --part flag.

Example:
  fidgo save knob knob.fid
  fidgo save --part plate --db lib.db plate bracket.fid`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			d, source, err := loadDesign(opts.RootOptions, path)
			if err != nil {
				return err
			}
			part, err := pickPart(d, opts.Part)
			if err != nil {
				return WrapExitError(ExitFailure, "choose part", fmt.Errorf("%s: %w", path, err))
			}

			st, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore(st)

			if err := st.Save(cmd.Context(), name, source, part.Shape); err != nil {
				return WrapExitError(ExitCommandError, "save shape", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s %s)\n", name, part.Shape.Exactness, part.Shape.Bounds)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the shape library (default from config)")
	cmd.Flags().StringVar(&opts.Part, "part", "", "part to store when the script defines several")

	return cmd
}

func pickPart(d *design.Design, name string) (*design.Part, error) {
	if name != "" {
		if p := d.Lookup(name); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("no part named %q", name)
	}
	if d.PartCount() != 1 {
		return nil, fmt.Errorf("script defines %d parts; choose one with --part", d.PartCount())
	}
	return d.Parts()[0], nil
}
