// Package configfile reads components from the project's config.yml.
package configfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bissquit/cstate/internal/catalog"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const systemsKey = "params.systems"

type system struct {
	Name string `koanf:"name"`
}

// Repository reads params.systems from a YAML project configuration.
type Repository struct {
	path string
}

// NewRepository creates a repository for the configuration file name under
// the project root.
func NewRepository(root, name string) *Repository {
	return &Repository{path: filepath.Join(root, name)}
}

// Path returns the configuration file path.
func (r *Repository) Path() string {
	return r.path
}

// ListComponents returns the name of every configured system in file order.
// Systems without a name are skipped.
func (r *Repository) ListComponents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(r.path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", catalog.ErrConfigUnavailable, r.path, err)
	}

	if !k.Exists(systemsKey) {
		return nil, fmt.Errorf("%w: %s has no %s", catalog.ErrConfigUnavailable, r.path, systemsKey)
	}

	var systems []system
	if err := k.Unmarshal(systemsKey, &systems); err != nil {
		return nil, fmt.Errorf("%w: parse %s in %s: %v", catalog.ErrConfigUnavailable, systemsKey, r.path, err)
	}

	names := make([]string, 0, len(systems))
	for _, s := range systems {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
