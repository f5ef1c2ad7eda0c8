package stock

import (
	"context"
	"sync"

	"cartline/internal/core/id"
)

// SelectionState is the observable state of the current product selection's
// stock fetch.
type SelectionState int

const (
	StateIdle SelectionState = iota
	StatePending
	StateReady
	StateFailed
)

// String returns the state name for logging and DTOs.
func (s SelectionState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SelectionTracker guards against out-of-order snapshot responses.
// Every in-flight fetch is keyed by the selected product id; a resolved
// snapshot is applied only if that id still matches the current selection.
// Discarding by identity comparison replaces explicit cancellation.
type SelectionTracker struct {
	mu       sync.Mutex
	selected id.ID
	state    SelectionState
	snapshot Snapshot
	err      error
}

// NewSelectionTracker creates an idle tracker.
func NewSelectionTracker() *SelectionTracker {
	return &SelectionTracker{}
}

// Select records a new product selection and marks its fetch pending.
// Any snapshot still in flight for the previous selection becomes stale.
func (t *SelectionTracker) Select(productID id.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = productID
	t.state = StatePending
	t.snapshot = Snapshot{}
	t.err = nil
}

// Clear resets the tracker to idle.
func (t *SelectionTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = id.Nil()
	t.state = StateIdle
	t.snapshot = Snapshot{}
	t.err = nil
}

// Resolve applies a fetched snapshot. Returns false when the snapshot no
// longer matches the current selection and was discarded.
func (t *SelectionTracker) Resolve(snap Snapshot) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if snap.ProductID != t.selected {
		return false
	}
	t.snapshot = snap
	t.state = StateReady
	t.err = nil
	return true
}

// Fail records a fetch failure. Returns false when the failure belongs to a
// selection that has since changed.
func (t *SelectionTracker) Fail(productID id.ID, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if productID != t.selected {
		return false
	}
	t.state = StateFailed
	t.err = err
	return true
}

// Current returns the selected product id and fetch state.
func (t *SelectionTracker) Current() (id.ID, SelectionState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected, t.state
}

// Snapshot returns the resolved snapshot, if the fetch for the current
// selection has completed.
func (t *SelectionTracker) Snapshot() (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateReady {
		return Snapshot{}, false
	}
	return t.snapshot, true
}

// Err returns the fetch error for the current selection, if it failed.
func (t *SelectionTracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateFailed {
		return nil
	}
	return t.err
}

// FetchSelected runs the oracle for the current selection and applies the
// result through the identity guard. Safe to call from a goroutine per
// selection; late results for replaced selections are dropped.
func (t *SelectionTracker) FetchSelected(ctx context.Context, oracle Oracle) bool {
	t.mu.Lock()
	productID := t.selected
	t.mu.Unlock()

	if id.IsNil(productID) {
		return false
	}

	snap, err := oracle.Fetch(ctx, productID)
	if err != nil {
		return t.Fail(productID, err)
	}
	return t.Resolve(snap)
}
