package stock

import (
	"context"
	"time"

	"cartline/internal/core/id"
	"cartline/internal/core/types"
)

// Balance is the stored stock position for one product.
// Single-location model: balances are per product, not per warehouse.
type Balance struct {
	ProductID      id.ID       `db:"product_id" json:"productId"`
	QuantityPieces int64       `db:"quantity_pieces" json:"quantityPieces"`
	AverageCost    types.Money `db:"average_cost" json:"averageCost"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updatedAt"`
}

// Repository defines operations for stock balances.
type Repository interface {
	// GetBalance returns the current balance for a product.
	// Returns apperror.CodeNotFound if the product has no balance row
	// (new product with no cost history).
	GetBalance(ctx context.Context, productID id.ID) (Balance, error)

	// UpsertBalance creates or replaces the balance row for a product.
	UpsertBalance(ctx context.Context, b Balance) error

	// ListBalances returns all non-zero balances.
	ListBalances(ctx context.Context) ([]Balance, error)
}
