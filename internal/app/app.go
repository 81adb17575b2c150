// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bissquit/cstate/internal/catalog"
	"github.com/bissquit/cstate/internal/catalog/configfile"
	"github.com/bissquit/cstate/internal/config"
	"github.com/bissquit/cstate/internal/domain"
	"github.com/bissquit/cstate/internal/hugo"
	"github.com/bissquit/cstate/internal/issues"
	"github.com/bissquit/cstate/internal/pkg/ctxlog"
	"github.com/bissquit/cstate/internal/pkg/metrics"
	"github.com/bissquit/cstate/internal/questionnaire"
)

// App represents the application instance.
type App struct {
	config *config.Config
	logger *slog.Logger
	issues *issues.Service
	hugo   *hugo.Runner
}

// New creates a new application instance. Log output goes to logOut.
func New(cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := initLogger(cfg.Log, logOut)

	root, err := filepath.Abs(cfg.Project.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	templatesDir := cfg.Project.TemplatesDir
	if templatesDir != "" && !filepath.IsAbs(templatesDir) {
		templatesDir = filepath.Join(root, templatesDir)
	}

	repo := configfile.NewRepository(root, cfg.Project.ConfigFile)
	issuesService := issues.NewService(
		issues.ServiceConfig{Root: root, ContentDir: cfg.Project.ContentDir},
		catalog.NewService(repo),
		issues.NewSkeletons(templatesDir),
		issues.NewFileWriter(),
	)

	runner := hugo.NewRunner(hugo.Config{
		Binary:    cfg.Hugo.Binary,
		Dir:       root,
		Theme:     cfg.Hugo.Theme,
		ThemesDir: cfg.Hugo.ThemesDir,
	})

	logger.Debug("application initialized",
		"root", root,
		"config_file", repo.Path(),
		"content_dir", cfg.Project.ContentDir,
	)

	return &App{
		config: cfg,
		logger: logger,
		issues: issuesService,
		hugo:   runner,
	}, nil
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Create runs a plain incident session.
func (a *App) Create(ctx context.Context, p questionnaire.Prompter) (*domain.OutputFile, error) {
	ctx = ctxlog.WithSession(ctx, a.logger, issues.FlowCreate)
	return a.issues.Create(ctx, p)
}

// Draft runs a template-driven session.
func (a *App) Draft(ctx context.Context, p questionnaire.Prompter) (*domain.OutputFile, error) {
	ctx = ctxlog.WithSession(ctx, a.logger, issues.FlowDraft)
	return a.issues.Draft(ctx, p)
}

// Hugo returns the site generator runner.
func (a *App) Hugo() *hugo.Runner {
	return a.hugo
}

// Close flushes metrics when a textfile is configured.
func (a *App) Close() error {
	if a.config.Metrics.Textfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.config.Metrics.Textfile); err != nil {
		a.logger.Error("failed to write metrics", "path", a.config.Metrics.Textfile, "error", err)
		return err
	}
	return nil
}

func initLogger(cfg config.LogConfig, out io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if out == nil {
		out = os.Stderr
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}
