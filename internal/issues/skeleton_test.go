package issues

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bissquit/cstate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkeletons_BuiltIn(t *testing.T) {
	s := NewSkeletons("")

	for _, kind := range domain.TemplateKinds() {
		t.Run(string(kind), func(t *testing.T) {
			content, err := s.Skeleton(kind)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(content, PlaceholderFrontmatter))
			assert.Contains(t, content, PlaceholderTitle)
		})
	}
}

func TestSkeletons_ProjectOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "postmortem.md"), []byte("{{frontmatter}}\ncustom {{title}}\n"), 0o644))

	s := NewSkeletons(dir)

	content, err := s.Skeleton(domain.KindPostmortem)
	require.NoError(t, err)
	assert.Equal(t, "{{frontmatter}}\ncustom {{title}}\n", content)

	content, err = s.Skeleton(domain.KindMaintenance)
	require.NoError(t, err)
	assert.Contains(t, content, "*Scheduled* - {{title}}", "missing overrides fall back to the built-in file")
}

func TestSkeletons_MissingDirectoryFallsBack(t *testing.T) {
	s := NewSkeletons(filepath.Join(t.TempDir(), "absent"))

	content, err := s.Skeleton(domain.KindExperiment)
	require.NoError(t, err)
	assert.Contains(t, content, "*Experiment*")
}

func TestSkeletons_UnknownKind(t *testing.T) {
	_, err := NewSkeletons("").Skeleton(domain.KindIncident)
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	_, err = NewSkeletons("").Skeleton(domain.Kind("Retrospective"))
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
