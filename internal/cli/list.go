package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the shapes in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore(st)

			recs, err := st.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list shapes", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tEXACTNESS\tBOUNDS\tUPDATED")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Shape.Exactness, r.Shape.Bounds, r.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the shape library (default from config)")

	return cmd
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rm <name>...",
		Short: "Remove shapes from the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer closeStore(st)

			for _, name := range args {
				if err := st.Delete(cmd.Context(), name); err != nil {
					return WrapExitError(ExitFailure, "remove shape", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the shape library (default from config)")

	return cmd
}
