// Package catalog provides access to the monitored components of a status page.
package catalog

import (
	"context"
	"errors"
)

// ErrConfigUnavailable is returned when the project configuration cannot be
// read or does not list any systems.
var ErrConfigUnavailable = errors.New("project configuration unavailable")

// Repository defines the interface for component lookups.
type Repository interface {
	// ListComponents returns component names in configuration order.
	ListComponents(ctx context.Context) ([]string, error)
}
