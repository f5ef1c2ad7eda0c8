package orderline

import (
	"cartline/internal/core/id"
	"cartline/internal/core/types"
)

// Mode is the direction the engine operates in. Sales decrement notional
// stock and price per piece; purchases increment stock and are priced per
// carton (normalized to per piece on storage).
type Mode string

const (
	ModeSale     Mode = "sale"
	ModePurchase Mode = "purchase"
)

// Valid reports whether the mode is one of the two known directions.
func (m Mode) Valid() bool {
	return m == ModeSale || m == ModePurchase
}

// LineItem is one committed product row within an order or purchase.
// It is created only by Build and mutated only by Edit; derived fields are
// computed once at that point and never hand-edited.
type LineItem struct {
	LineID id.ID `json:"lineId"`

	ProductID   id.ID  `json:"productId"`
	ProductSKU  string `json:"productSku"`
	ProductName string `json:"productName"`

	// PiecesPerCarton is captured at add time and immutable for the life
	// of the line, even if the catalog factor changes afterwards.
	PiecesPerCarton int64 `json:"piecesPerCarton"`

	// Raw user input, independently non-negative.
	Cartons int64 `json:"cartons"`
	Pieces  int64 `json:"pieces"`

	// TotalPieces = Cartons × PiecesPerCarton + Pieces.
	TotalPieces int64 `json:"totalPieces"`

	// UnitPrice is always stored per piece. Purchase lines are entered per
	// carton and normalized before storage.
	UnitPrice types.Money `json:"unitPrice"`

	// LineTotal = TotalPieces × UnitPrice, computed once and stored.
	LineTotal types.Money `json:"lineTotal"`

	// AvailableStockAtAdd is the snapshot figure used for the accept/reject
	// decision. Retained for audit display, not re-validated later.
	AvailableStockAtAdd int64 `json:"availableStockAtAddTime"`

	// StockUnknown marks lines accepted while the stock snapshot was
	// unavailable (fetch pending or failed).
	StockUnknown bool `json:"stockUnknown,omitempty"`
}

// AddInput is the raw user input for creating or editing a line.
// Price is per piece for sale lines and per carton for purchase lines.
type AddInput struct {
	Cartons int64
	Pieces  int64
	Price   types.Money
}
