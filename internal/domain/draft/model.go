// Package draft provides in-progress order and purchase drafts: the mutable
// session state around the order-line engine.
package draft

import (
	"context"
	"time"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/domain/orderline"
)

// Draft is one in-progress order (sale mode) or purchase (purchase mode).
// It lives only until submission; persistence of the submitted document is
// the downstream collaborator's job.
type Draft struct {
	ID        id.ID              `json:"id"`
	Mode      orderline.Mode     `json:"mode"`
	Lines     *orderline.LineSet `json:"lines"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewDraft creates an empty draft for the given mode.
func NewDraft(mode orderline.Mode) *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:        id.New(),
		Mode:      mode,
		Lines:     orderline.NewLineSet(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate implements entity.Validatable.
func (d *Draft) Validate(ctx context.Context) error {
	if !d.Mode.Valid() {
		return apperror.NewValidation("mode must be sale or purchase").
			WithDetail("field", "mode").
			WithDetail("value", string(d.Mode))
	}
	return nil
}

// Touch updates the modification timestamp.
func (d *Draft) Touch() {
	d.UpdatedAt = time.Now().UTC()
}

// Normalize repairs a draft deserialized from storage.
func (d *Draft) Normalize() {
	if d.Lines == nil {
		d.Lines = orderline.NewLineSet()
	}
}
