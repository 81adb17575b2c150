package issues

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bissquit/cstate/internal/domain"
)

//go:embed templates/*.md
var templatesFS embed.FS

// skeletonFiles maps template kinds to their file names.
var skeletonFiles = map[domain.Kind]string{
	domain.KindIncidentPost: "incident-post.md",
	domain.KindMaintenance:  "maintenance.md",
	domain.KindExperiment:   "experiment.md",
	domain.KindPostmortem:   "postmortem.md",
}

// SkeletonSource loads the skeleton text of a template kind.
type SkeletonSource interface {
	Skeleton(kind domain.Kind) (string, error)
}

// Skeletons loads skeletons from an optional project directory and falls
// back to the built-in templates for files the directory does not have.
type Skeletons struct {
	dir string
}

// NewSkeletons creates a skeleton source. An empty dir uses only the
// built-in templates.
func NewSkeletons(dir string) *Skeletons {
	return &Skeletons{dir: dir}
}

// Skeleton returns the skeleton for kind.
func (s *Skeletons) Skeleton(kind domain.Kind) (string, error) {
	name, ok := skeletonFiles[kind]
	if !ok || !kind.IsTemplate() {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, kind)
	}

	if s.dir != "" {
		content, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return string(content), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read template %s: %w", name, err)
		}
	}

	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	return string(content), nil
}
