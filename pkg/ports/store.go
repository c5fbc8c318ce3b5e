package ports

import (
	"context"

	"github.com/makebuild-code/slidenav/pkg/domain"
)

// PositionStore defines the interface for persisting the committed position.
// This enables "stop & resume" wizards: a returning visitor lands on the
// slide they left. Form answers are never stored here.
type PositionStore interface {
	// Save persists the position for a given session ID.
	Save(ctx context.Context, sessionID string, pos *domain.Position) error

	// Load retrieves the position for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Position, error)

	// Delete removes the position for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the known session IDs.
	List(ctx context.Context) ([]string, error)
}
