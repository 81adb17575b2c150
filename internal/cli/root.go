// Package cli implements the cstate command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bissquit/cstate/internal/app"
	"github.com/bissquit/cstate/internal/config"
	"github.com/bissquit/cstate/internal/hugo"
	"github.com/bissquit/cstate/internal/questionnaire"
	"github.com/bissquit/cstate/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitAborted = 130
)

var (
	successColor = color.New(color.FgGreen)
	noticeColor  = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

type options struct {
	configPath string
	root       string
	logLevel   string
}

const examples = `  cstate create       # Create a new incident post
  cstate draft        # Create a new post from a template
  cstate dev          # Run dev server from /exampleSite
  cstate serve        # Run hugo serve
  cstate build        # Run hugo build
  cstate build -w     # Run hugo build with watch flag`

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "cstate",
		Short:         "CLI to manage your cState status pages",
		Example:       examples,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "CLI configuration file (default "+config.DefaultFile+" when present)")
	root.PersistentFlags().StringVarP(&o.root, "root", "r", "", "Status page project root (default .)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newCreateCmd(o),
		newDraftCmd(o),
		newDevCmd(o),
		newHugoCmd(o, "serve", "Alias for hugo serve", (*hugo.Runner).Serve),
		newHugoCmd(o, "build", "Alias for hugo build", (*hugo.Runner).Build),
		newVersionCmd(),
	)

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		return report(root.ErrOrStderr(), err)
	}
	return ExitOK
}

func report(w io.Writer, err error) int {
	if errors.Is(err, questionnaire.ErrAborted) {
		noticeColor.Fprintln(w, "Aborted, nothing was written.")
		return ExitAborted
	}
	errorColor.Fprintf(w, "Error: %v\n", err)
	return ExitError
}

// load reads configuration, applies flag overrides and builds the app.
func (o *options) load(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.root != "" {
		cfg.Project.Root = o.root
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := app.New(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return a, nil
}

// closeApp flushes the app and logs, but does not return, close failures.
func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		a.Logger().Warn("close failed", "error", err)
	}
}
