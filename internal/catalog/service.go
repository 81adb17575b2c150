package catalog

import (
	"context"

	"github.com/bissquit/cstate/internal/domain"
	"github.com/bissquit/cstate/internal/pkg/ctxlog"
	"github.com/bissquit/cstate/internal/pkg/metrics"
)

// Service resolves component choices for a session.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Components returns the configured components. A repository failure is
// logged as a warning and reported through Available; it is never fatal.
func (s *Service) Components(ctx context.Context) domain.ComponentChoices {
	names, err := s.repo.ListComponents(ctx)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("could not read project configuration; run from the root of your status page project",
			"error", err,
		)
		metrics.ComponentFallbacks.Inc()
		return domain.ComponentChoices{}
	}
	return domain.ComponentChoices{Names: names, Available: true}
}
