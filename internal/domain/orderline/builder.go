package orderline

import (
	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/core/types"
	"cartline/internal/domain/catalog/product"
	"cartline/internal/domain/stock"
)

// Build validates a candidate line and produces a committed LineItem.
//
// Validation short-circuits on the first failure, in order: product
// selected, non-zero quantity, positive price, no duplicate in the target
// set, and (sale mode only, when a snapshot is available) stock sufficiency.
// A nil snapshot means the fetch was still pending or had failed; the stock
// ceiling is then skipped and the line is marked StockUnknown.
func Build(p *product.Product, in AddInput, mode Mode, snap *stock.Snapshot, set *LineSet) (LineItem, error) {
	if p == nil {
		return LineItem{}, apperror.NewNoProductSelected()
	}

	piecesPerCarton := p.PiecesPerCarton
	if piecesPerCarton < 1 {
		piecesPerCarton = 1
	}

	totalPieces := ToTotalPieces(in.Cartons, in.Pieces, piecesPerCarton)
	if totalPieces <= 0 {
		return LineItem{}, apperror.NewZeroQuantity()
	}

	if !in.Price.IsPositive() {
		return LineItem{}, apperror.NewInvalidPrice()
	}

	if set != nil && set.Contains(p.ID) {
		return LineItem{}, apperror.NewDuplicateProduct(p.ID.String())
	}

	var availableAtAdd int64
	stockUnknown := snap == nil
	if snap != nil {
		availableAtAdd = snap.CurrentStockPieces
		if mode == ModeSale && totalPieces > snap.CurrentStockPieces {
			return LineItem{}, apperror.NewInsufficientStock(p.ID.String(), totalPieces, snap.CurrentStockPieces)
		}
	}

	// Purchase prices are entered per carton; normalize to per piece so
	// both modes store the same thing.
	unitPrice := in.Price
	if mode == ModePurchase {
		unitPrice = PricePerPieceFromPerCarton(in.Price, piecesPerCarton)
	}

	return LineItem{
		LineID:              id.New(),
		ProductID:           p.ID,
		ProductSKU:          p.Code,
		ProductName:         p.Name,
		PiecesPerCarton:     piecesPerCarton,
		Cartons:             clampNonNegative(in.Cartons),
		Pieces:              clampNonNegative(in.Pieces),
		TotalPieces:         totalPieces,
		UnitPrice:           unitPrice,
		LineTotal:           lineTotal(totalPieces, unitPrice),
		AvailableStockAtAdd: availableAtAdd,
		StockUnknown:        stockUnknown,
	}, nil
}

func lineTotal(totalPieces int64, unitPrice types.Money) types.Money {
	return types.NewMoneyFromInt(totalPieces).Mul(unitPrice)
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
