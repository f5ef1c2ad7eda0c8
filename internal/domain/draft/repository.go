package draft

import (
	"context"

	"cartline/internal/core/id"
)

// Repository defines draft session storage.
// Implementations may expire drafts after a TTL; an expired draft reads as
// not found.
type Repository interface {
	// Get retrieves a draft by ID.
	// Returns apperror.CodeNotFound for unknown or expired drafts.
	Get(ctx context.Context, draftID id.ID) (*Draft, error)

	// Save persists the whole draft (full replace).
	Save(ctx context.Context, d *Draft) error

	// Delete removes a draft.
	Delete(ctx context.Context, draftID id.ID) error
}
