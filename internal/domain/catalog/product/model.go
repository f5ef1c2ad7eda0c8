// Package product provides the Product catalog.
// Products are sold in two co-existing units of measure: cartons and loose pieces.
package product

import (
	"context"

	"cartline/internal/core/apperror"
	"cartline/internal/core/entity"
)

// Product represents a catalog item.
// Code (inherited from Catalog) is the SKU.
type Product struct {
	entity.Catalog

	// PiecesPerCarton is the unit-conversion factor. A value of 0 is
	// normalized to 1 on validation (never divide by zero).
	PiecesPerCarton int64 `db:"pieces_per_carton" json:"piecesPerCarton"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`
}

// New creates a new Product with required fields.
func New(sku, name string, piecesPerCarton int64) *Product {
	if piecesPerCarton < 1 {
		piecesPerCarton = 1
	}
	return &Product{
		Catalog:         entity.NewCatalog(sku, name),
		PiecesPerCarton: piecesPerCarton,
	}
}

// SKU returns the product SKU (stored as catalog code).
func (p *Product) SKU() string {
	return p.Code
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Code == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if p.PiecesPerCarton < 1 {
		return apperror.NewValidation("pieces per carton must be at least 1").
			WithDetail("field", "piecesPerCarton").
			WithDetail("value", p.PiecesPerCarton)
	}

	return nil
}

// Normalize clamps the conversion factor to the valid range.
// Called before the factor feeds any conversion.
func (p *Product) Normalize() {
	if p.PiecesPerCarton < 1 {
		p.PiecesPerCarton = 1
	}
}
