package product

import (
	"context"

	"cartline/internal/core/id"
	"cartline/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	// Create inserts a new product
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetBySKU retrieves a product by SKU (catalog code)
	GetBySKU(ctx context.Context, sku string) (*Product, error)

	// Update modifies an existing product (with optimistic locking)
	Update(ctx context.Context, p *Product) error

	// SetDeletionMark sets or clears the soft-delete mark
	SetDeletionMark(ctx context.Context, productID id.ID, marked bool) error

	// List retrieves products with filtering and pagination
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
