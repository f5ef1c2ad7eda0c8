package dto

import (
	"time"

	"cartline/internal/domain/orderline"
	"cartline/internal/domain/stock"
)

// ReceiptRequest records incoming stock.
type ReceiptRequest struct {
	Pieces   int64   `json:"pieces" binding:"required"`
	UnitCost float64 `json:"unitCost"`
}

// IssueRequest records outgoing stock.
type IssueRequest struct {
	Pieces int64 `json:"pieces" binding:"required"`
}

// SnapshotResponse is the API representation of a stock snapshot.
// ApproxCartons/ApproxPieces break the piece count into whole cartons
// for display; they are not used in any calculation.
type SnapshotResponse struct {
	ProductID          string  `json:"productId"`
	CurrentStock       int64   `json:"currentStock"`
	AverageCost        float64 `json:"averageCost"`
	SuggestedSalePrice float64 `json:"suggestedSalePrice"`
	ApproxCartons      int64   `json:"approxCartons"`
	ApproxPieces       int64   `json:"approxPieces"`
}

// FromSnapshot converts a domain snapshot to a response.
func FromSnapshot(s stock.Snapshot, piecesPerCarton int64) SnapshotResponse {
	cartons, pieces := orderline.ToCartonsAndPieces(s.CurrentStockPieces, piecesPerCarton)
	return SnapshotResponse{
		ProductID:          s.ProductID.String(),
		CurrentStock:       s.CurrentStockPieces,
		AverageCost:        s.AverageCostPerPiece.InexactFloat64(),
		SuggestedSalePrice: s.SuggestedPricePerPiece.InexactFloat64(),
		ApproxCartons:      cartons,
		ApproxPieces:       pieces,
	}
}

// BalanceResponse is the API representation of a stored balance.
type BalanceResponse struct {
	ProductID      string    `json:"productId"`
	QuantityPieces int64     `json:"quantityPieces"`
	AverageCost    float64   `json:"averageCost"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromBalance converts a domain balance to a response.
func FromBalance(b stock.Balance) BalanceResponse {
	return BalanceResponse{
		ProductID:      b.ProductID.String(),
		QuantityPieces: b.QuantityPieces,
		AverageCost:    b.AverageCost.InexactFloat64(),
		UpdatedAt:      b.UpdatedAt,
	}
}

// FromBalanceList converts a list of balances.
func FromBalanceList(balances []stock.Balance) []BalanceResponse {
	out := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, FromBalance(b))
	}
	return out
}
