package cli

import (
	"fmt"

	"github.com/bissquit/cstate/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if all {
				fmt.Fprint(cmd.OutOrStdout(), version.Info())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print all version information")
	return cmd
}
