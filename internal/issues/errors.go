package issues

import (
	"errors"
	"fmt"
)

// Document errors.
var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrWriteFailed     = errors.New("write failed")
)

// WriteError reports the path a document could not be written to. It
// matches ErrWriteFailed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrWriteFailed.
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}
