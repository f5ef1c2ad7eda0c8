// Package stock provides on-hand piece balances, average costs, and the
// point-in-time snapshots the order-line engine validates against.
package stock

import (
	"context"

	"cartline/internal/core/id"
	"cartline/internal/core/types"
)

// Snapshot is a point-in-time read of a product's stock position.
// It has no enforced freshness bound: it may be stale by the time a line
// built against it is committed.
type Snapshot struct {
	ProductID              id.ID       `json:"productId"`
	CurrentStockPieces     int64       `json:"currentStockPieces"`
	AverageCostPerPiece    types.Money `json:"averageCostPerPiece"`
	SuggestedPricePerPiece types.Money `json:"suggestedPricePerPiece"`
}

// Oracle answers stock snapshot queries.
// Fetch may fail (network, timeout) or report an unknown product; callers
// must treat both as "stock unknown" rather than a hard stop.
type Oracle interface {
	Fetch(ctx context.Context, productID id.ID) (Snapshot, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, productID id.ID) (Snapshot, error)

// Fetch implements Oracle.
func (f OracleFunc) Fetch(ctx context.Context, productID id.ID) (Snapshot, error) {
	return f(ctx, productID)
}
