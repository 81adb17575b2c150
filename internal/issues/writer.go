package issues

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bissquit/cstate/internal/domain"
)

// Writer persists a finished document.
type Writer interface {
	Write(ctx context.Context, f domain.OutputFile) error
}

// FileWriter writes documents to the local filesystem.
type FileWriter struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewFileWriter creates a filesystem writer.
func NewFileWriter() *FileWriter {
	return &FileWriter{dirPerm: 0o755, filePerm: 0o644}
}

// Write creates missing parent directories and writes the content through a
// temporary sibling that is renamed over the target, so a failed write never
// leaves a partial document. An existing file at the path is replaced.
func (w *FileWriter) Write(ctx context.Context, f domain.OutputFile) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, w.dirPerm); err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".cstate-*.tmp")
	if err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(f.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: f.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: f.Path, Err: err}
	}
	if err := os.Chmod(tmpName, w.filePerm); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: f.Path, Err: err}
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: f.Path, Err: err}
	}
	return nil
}
