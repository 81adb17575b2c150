// Package hugo runs the Hugo site generator as a subprocess.
package hugo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/bissquit/cstate/internal/pkg/ctxlog"
	"github.com/bissquit/cstate/internal/pkg/metrics"
)

// ErrSubprocessFailed is matched by every RunError.
var ErrSubprocessFailed = errors.New("hugo failed")

// RunError reports a failed invocation. ExitCode is -1 when the process could
// not be started.
type RunError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *RunError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSubprocessFailed.
func (e *RunError) Is(target error) bool {
	return target == ErrSubprocessFailed
}

// Config configures the runner.
type Config struct {
	Binary    string
	Dir       string
	Theme     string
	ThemesDir string
}

// Runner invokes hugo with the standard streams attached.
type Runner struct {
	config Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a runner attached to the process streams.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		config: cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithStreams replaces the streams handed to the subprocess.
func (r *Runner) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *Runner {
	r.stdin, r.stdout, r.stderr = stdin, stdout, stderr
	return r
}

// CommandLine returns the command line Run would execute.
func (r *Runner) CommandLine(command string, args []string) string {
	return strings.Join(append([]string{r.config.Binary, command}, args...), " ")
}

// Serve runs `hugo serve` with args forwarded verbatim.
func (r *Runner) Serve(ctx context.Context, args []string) error {
	return r.Run(ctx, "serve", args)
}

// Build runs `hugo build` with args forwarded verbatim.
func (r *Runner) Build(ctx context.Context, args []string) error {
	return r.Run(ctx, "build", args)
}

// Dev runs the development server against the theme checkout.
func (r *Runner) Dev(ctx context.Context) error {
	return r.Run(ctx, "server", r.DevArgs())
}

// DevArgs returns the arguments of the development server.
func (r *Runner) DevArgs() []string {
	var args []string
	if r.config.Theme != "" {
		args = append(args, "--theme="+r.config.Theme)
	}
	if r.config.ThemesDir != "" {
		args = append(args, "--themesDir="+r.config.ThemesDir)
	}
	return args
}

// Run executes hugo with command followed by args.
func (r *Runner) Run(ctx context.Context, command string, args []string) error {
	line := r.CommandLine(command, args)
	ctxlog.FromContext(ctx).Debug("running hugo", "command", line)

	cmd := exec.CommandContext(ctx, r.config.Binary, append([]string{command}, args...)...)
	cmd.Dir = r.config.Dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		metrics.HugoRuns.WithLabelValues(command, "failed").Inc()
		runErr := &RunError{Command: line, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			runErr.ExitCode = exitErr.ExitCode()
		}
		return runErr
	}

	metrics.HugoRuns.WithLabelValues(command, "ok").Inc()
	return nil
}
