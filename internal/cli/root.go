// Package cli implements the fidgo command line.
package cli

import (
	"io"
	"log/slog"

	"github.com/chazu/fidgo/internal/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands plus the resolved
// configuration.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	Config     config.Config
}

// NewRootCommand creates the root command for the fidgo CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fidgo",
		Short: "fidgo - implicit solid modelling",
		Long: `Build solids from signed distance field expressions.

Shapes are written as Lisp scripts, meshed with marching cubes and
exported as STL, or kept in a local shape library.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}
			opts.Config = cfg
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewVMCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))

	return cmd
}

// setupLogging installs the default slog handler for the process.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
