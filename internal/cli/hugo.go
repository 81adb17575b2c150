package cli

import (
	"context"

	"github.com/bissquit/cstate/internal/hugo"
	"github.com/spf13/cobra"
)

func newDevCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dev",
		Short: "Run Hugo development server with cstate theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)

			runner := a.Hugo().WithStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			successColor.Fprintf(cmd.OutOrStdout(), "Running: %s\n", runner.CommandLine("server", runner.DevArgs()))
			return runner.Dev(cmd.Context())
		},
	}
}

// hugoFunc runs one hugo command with forwarded arguments.
type hugoFunc func(r *hugo.Runner, ctx context.Context, args []string) error

// newHugoCmd forwards every argument after the command name to hugo, so the
// global flags are not available here; use the environment instead.
func newHugoCmd(o *options, command, short string, run hugoFunc) *cobra.Command {
	return &cobra.Command{
		Use:                command + " [hugo flags]",
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)

			runner := a.Hugo().WithStreams(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			successColor.Fprintf(cmd.OutOrStdout(), "Running: %s\n", runner.CommandLine(command, args))
			return run(runner, cmd.Context(), args)
		},
	}
}
