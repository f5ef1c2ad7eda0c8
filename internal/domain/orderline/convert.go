// Package orderline implements the carton/piece quantity-and-pricing engine
// shared by sales-order and purchase-order line entry.
package orderline

import (
	"cartline/internal/core/types"
)

// ToTotalPieces converts a carton/piece split into a total piece count.
// Negative inputs are clamped to zero and a conversion factor below 1 is
// treated as 1, so the result is never negative and never NaN-propagated.
func ToTotalPieces(cartons, pieces, piecesPerCarton int64) int64 {
	if piecesPerCarton < 1 {
		piecesPerCarton = 1
	}
	if cartons < 0 {
		cartons = 0
	}
	if pieces < 0 {
		pieces = 0
	}
	return cartons*piecesPerCarton + pieces
}

// ToCartonsAndPieces splits a total piece count into full cartons and a
// remainder of loose pieces. Display only ("available stock ≈ N cartons");
// never fed back into an editable field, the round-trip is lossy.
func ToCartonsAndPieces(totalPieces, piecesPerCarton int64) (cartons, pieces int64) {
	if piecesPerCarton < 1 {
		piecesPerCarton = 1
	}
	if totalPieces < 0 {
		totalPieces = 0
	}
	return totalPieces / piecesPerCarton, totalPieces % piecesPerCarton
}

// PricePerPieceFromPerCarton derives the per-piece price from a per-carton
// price. The division is carried at full decimal precision so that
// totalPieces × pricePerPiece reconstructs the carton-priced total exactly
// when totalPieces is an exact multiple of piecesPerCarton.
func PricePerPieceFromPerCarton(pricePerCarton types.Money, piecesPerCarton int64) types.Money {
	if piecesPerCarton < 1 {
		piecesPerCarton = 1
	}
	return pricePerCarton.Div(types.NewMoneyFromInt(piecesPerCarton))
}
