package orderline

import (
	"cartline/internal/core/apperror"
)

// Edit replaces the quantity and price of a previously committed line,
// running the same quantity/price validation as Build. Edits never re-query
// live stock: the line keeps the AvailableStockAtAdd figure captured at
// original add time, so no stock ceiling is applied here.
//
// The edit is a full replace of cartons/pieces/price, never partial.
// LineID, product identity, and the conversion factor are preserved.
func Edit(existing LineItem, in AddInput, mode Mode) (LineItem, error) {
	totalPieces := ToTotalPieces(in.Cartons, in.Pieces, existing.PiecesPerCarton)
	if totalPieces <= 0 {
		return LineItem{}, apperror.NewZeroQuantity()
	}

	if !in.Price.IsPositive() {
		return LineItem{}, apperror.NewInvalidPrice()
	}

	unitPrice := in.Price
	if mode == ModePurchase {
		unitPrice = PricePerPieceFromPerCarton(in.Price, existing.PiecesPerCarton)
	}

	updated := existing
	updated.Cartons = clampNonNegative(in.Cartons)
	updated.Pieces = clampNonNegative(in.Pieces)
	updated.TotalPieces = totalPieces
	updated.UnitPrice = unitPrice
	updated.LineTotal = lineTotal(totalPieces, unitPrice)
	return updated, nil
}
