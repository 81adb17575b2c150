package cli

import (
	"context"

	"github.com/bissquit/cstate/internal/domain"
	"github.com/bissquit/cstate/internal/questionnaire"
	"github.com/spf13/cobra"
)

type sessionFunc func(ctx context.Context, p questionnaire.Prompter) (*domain.OutputFile, error)

func newCreateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new incident or informational post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)
			return runSession(cmd, a.Create, "Incident")
		},
	}
}

func newDraftCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "draft",
		Short: "Create a new post from a pre-defined template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.load(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)
			return runSession(cmd, a.Draft, "Draft")
		},
	}
}

func runSession(cmd *cobra.Command, session sessionFunc, what string) error {
	out := cmd.OutOrStdout()
	p := questionnaire.NewTerminal(cmd.InOrStdin(), out)
	defer p.Close()

	file, err := session(cmd.Context(), p)
	if err != nil {
		return err
	}

	successColor.Fprintf(out, "%s created successfully at: %s\n", what, file.Path)
	noticeColor.Fprintln(out, "Remember to commit and push your changes!")
	return nil
}
