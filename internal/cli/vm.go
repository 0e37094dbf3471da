package cli

import (
	"fmt"

	"github.com/chazu/fidgo/pkg/tree"
	"github.com/spf13/cobra"
)

// VMOptions holds flags for the vm command.
type VMOptions struct {
	*RootOptions
	Dot  bool
	Part string
}

// NewVMCommand creates the vm command.
func NewVMCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VMOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vm <script>",
		Short: "Print the expression graph of each part",
		Long: `Evaluate a script and print the expression graph of each part in the
line-oriented VM text format, or as Graphviz with --dot.

Example:
  fidgo vm bracket.fid
  fidgo vm --dot --part plate bracket.fid | dot -Tsvg > plate.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadDesign(opts.RootOptions, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range d.Parts() {
				if opts.Part != "" && p.Name != opts.Part {
					continue
				}
				if opts.Dot {
					if err := tree.WriteDot(out, p.Shape.Expr); err != nil {
						return WrapExitError(ExitCommandError, "write dot", err)
					}
					continue
				}
				fmt.Fprintf(out, "# part %s %s %s\n", p.Name, p.Shape.Exactness, p.Shape.Bounds)
				if err := tree.WriteVM(out, p.Shape.Expr); err != nil {
					return WrapExitError(ExitCommandError, "write vm", err)
				}
			}
			if opts.Part != "" && d.Lookup(opts.Part) == nil {
				return WrapExitError(ExitFailure, "unknown part", fmt.Errorf("%s has no part %q", args[0], opts.Part))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Dot, "dot", false, "emit Graphviz instead of VM text")
	cmd.Flags().StringVar(&opts.Part, "part", "", "only print this part")

	return cmd
}
