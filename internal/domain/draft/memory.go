package draft

import (
	"context"
	"encoding/json"
	"sync"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
)

// MemoryRepository is an in-process draft store.
// Used in tests and single-node deployments without Redis.
type MemoryRepository struct {
	mu     sync.RWMutex
	drafts map[id.ID][]byte
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{drafts: make(map[id.ID][]byte)}
}

// Get implements Repository.
func (r *MemoryRepository) Get(ctx context.Context, draftID id.ID) (*Draft, error) {
	r.mu.RLock()
	data, ok := r.drafts[draftID]
	r.mu.RUnlock()

	if !ok {
		return nil, apperror.NewNotFound("draft", draftID.String())
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, apperror.NewInternal(err)
	}
	d.Normalize()
	return &d, nil
}

// Save implements Repository. Drafts are stored serialized so callers never
// share mutable state with the store.
func (r *MemoryRepository) Save(ctx context.Context, d *Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return apperror.NewInternal(err)
	}

	r.mu.Lock()
	r.drafts[d.ID] = data
	r.mu.Unlock()
	return nil
}

// Delete implements Repository.
func (r *MemoryRepository) Delete(ctx context.Context, draftID id.ID) error {
	r.mu.Lock()
	delete(r.drafts, draftID)
	r.mu.Unlock()
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
