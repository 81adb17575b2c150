// Package issues assembles status-page documents from session answers and
// writes them to the project's content directory.
package issues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/cstate/internal/domain"
	"github.com/bissquit/cstate/internal/pkg/ctxlog"
	"github.com/bissquit/cstate/internal/pkg/metrics"
	"github.com/bissquit/cstate/internal/questionnaire"
	"github.com/go-playground/validator/v10"
)

// Session flows.
const (
	FlowCreate = "create"
	FlowDraft  = "draft"
)

// fallbackNotices are shown to the operator when the component list cannot
// be read, independent of the log level.
var fallbackNotices = map[string]string{
	FlowCreate: "Could not read the project configuration. Make sure you are in the root directory of your status page project. Using default component choices.",
	FlowDraft:  "Could not read the project configuration. Make sure you are in the root directory of your status page project. You may want to cancel this operation with Ctrl+C.",
}

// ComponentSource provides the component choices of a session.
type ComponentSource interface {
	Components(ctx context.Context) domain.ComponentChoices
}

// ServiceConfig locates output files.
type ServiceConfig struct {
	Root       string
	ContentDir string
}

// Service runs authoring sessions.
type Service struct {
	config     ServiceConfig
	components ComponentSource
	skeletons  SkeletonSource
	writer     Writer
	validator  *validator.Validate
	now        func() time.Time
}

// NewService creates a new issues service.
func NewService(cfg ServiceConfig, components ComponentSource, skeletons SkeletonSource, writer Writer) *Service {
	return &Service{
		config:     cfg,
		components: components,
		skeletons:  skeletons,
		writer:     writer,
		validator:  domain.NewValidator(),
		now:        time.Now,
	}
}

// WithClock replaces the clock used for dates and file names.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create runs a plain incident session and writes the document.
func (s *Service) Create(ctx context.Context, p questionnaire.Prompter) (*domain.OutputFile, error) {
	return s.run(ctx, FlowCreate, p, questionnaire.IncidentQuestions(), s.incidentDocument)
}

// Draft runs a template-driven session and writes the document.
func (s *Service) Draft(ctx context.Context, p questionnaire.Prompter) (*domain.OutputFile, error) {
	return s.run(ctx, FlowDraft, p, questionnaire.DraftQuestions(), s.draftDocument)
}

type assembleFunc func(a *domain.AnswerSet, date string) (string, error)

func (s *Service) run(
	ctx context.Context,
	flow string,
	p questionnaire.Prompter,
	questions []questionnaire.Question,
	assemble assembleFunc,
) (*domain.OutputFile, error) {
	logger := ctxlog.FromContext(ctx)

	components := s.components.Components(ctx)
	if !components.Available {
		p.Notice(fallbackNotices[flow])
	}

	answers, err := questionnaire.Run(ctx, p, questions, components)
	if err != nil {
		metrics.Sessions.WithLabelValues(flow, outcome(err)).Inc()
		return nil, fmt.Errorf("collect answers: %w", err)
	}

	if err := s.validate(&answers); err != nil {
		metrics.Sessions.WithLabelValues(flow, "invalid").Inc()
		return nil, err
	}

	now := s.now()
	date := domain.FormatTimestamp(now)

	content, err := assemble(&answers, date)
	if err != nil {
		metrics.Sessions.WithLabelValues(flow, "failed").Inc()
		return nil, fmt.Errorf("assemble %s: %w", answers.Kind, err)
	}

	out := domain.OutputFile{
		Path:    Path(s.config.Root, s.config.ContentDir, answers.Title, now),
		Content: content,
	}

	if err := s.writer.Write(ctx, out); err != nil {
		metrics.Sessions.WithLabelValues(flow, "failed").Inc()
		return nil, err
	}

	metrics.Sessions.WithLabelValues(flow, "written").Inc()
	metrics.DocumentsWritten.WithLabelValues(string(answers.Kind)).Inc()
	logger.Info("document written",
		"kind", answers.Kind,
		"path", out.Path,
		"resolved_when", answers.ResolvedWhen,
	)

	return &out, nil
}

func (s *Service) validate(a *domain.AnswerSet) error {
	if err := s.validator.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidAnswers, err)
	}
	return a.CheckInvariants()
}

func (s *Service) incidentDocument(a *domain.AnswerSet, date string) (string, error) {
	return IncidentContent(BuildHeader(a, date), date), nil
}

func (s *Service) draftDocument(a *domain.AnswerSet, date string) (string, error) {
	skeleton, err := s.skeletons.Skeleton(a.Kind)
	if err != nil {
		return "", err
	}
	return DraftContent(skeleton, a, BuildHeader(a, date), date), nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, questionnaire.ErrAborted):
		return "aborted"
	default:
		return "failed"
	}
}
