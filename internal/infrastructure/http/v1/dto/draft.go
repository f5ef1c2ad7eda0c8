package dto

import (
	"time"

	"cartline/internal/core/types"
	"cartline/internal/domain/draft"
	"cartline/internal/domain/orderline"
)

// StartDraftRequest opens a new sale or purchase draft.
type StartDraftRequest struct {
	Mode string `json:"mode" binding:"required,oneof=sale purchase"`
}

// AddLineRequest is the raw entry for a new line. Negative quantities are
// clamped to zero by the engine, so no lower bound is enforced here; price
// semantics (per piece vs per carton) depend on the draft mode.
type AddLineRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	Cartons   int64   `json:"cartons"`
	Pieces    int64   `json:"pieces"`
	Price     float64 `json:"price"`
}

// ToInput converts the request to engine input.
func (r *AddLineRequest) ToInput() orderline.AddInput {
	return orderline.AddInput{
		Cartons: r.Cartons,
		Pieces:  r.Pieces,
		Price:   types.NewMoney(r.Price),
	}
}

// EditLineRequest replaces the quantity and price of an existing line.
type EditLineRequest struct {
	Cartons int64   `json:"cartons"`
	Pieces  int64   `json:"pieces"`
	Price   float64 `json:"price"`
}

// ToInput converts the request to engine input.
func (r *EditLineRequest) ToInput() orderline.AddInput {
	return orderline.AddInput{
		Cartons: r.Cartons,
		Pieces:  r.Pieces,
		Price:   types.NewMoney(r.Price),
	}
}

// LineItemResponse is the API representation of a committed line.
type LineItemResponse struct {
	LineID                  string  `json:"lineId"`
	ProductID               string  `json:"productId"`
	ProductSKU              string  `json:"productSku"`
	ProductName             string  `json:"productName"`
	PiecesPerCarton         int64   `json:"piecesPerCarton"`
	Cartons                 int64   `json:"cartons"`
	Pieces                  int64   `json:"pieces"`
	TotalPieces             int64   `json:"totalPieces"`
	UnitPrice               float64 `json:"unitPrice"`
	LineTotal               float64 `json:"lineTotal"`
	AvailableStockAtAddTime int64   `json:"availableStockAtAddTime"`
	StockUnknown            bool    `json:"stockUnknown,omitempty"`
}

// FromLineItem converts a domain line to a response.
func FromLineItem(li orderline.LineItem) LineItemResponse {
	return LineItemResponse{
		LineID:                  li.LineID.String(),
		ProductID:               li.ProductID.String(),
		ProductSKU:              li.ProductSKU,
		ProductName:             li.ProductName,
		PiecesPerCarton:         li.PiecesPerCarton,
		Cartons:                 li.Cartons,
		Pieces:                  li.Pieces,
		TotalPieces:             li.TotalPieces,
		UnitPrice:               li.UnitPrice.InexactFloat64(),
		LineTotal:               li.LineTotal.InexactFloat64(),
		AvailableStockAtAddTime: li.AvailableStockAtAdd,
		StockUnknown:            li.StockUnknown,
	}
}

// TotalsResponse carries the aggregate figures over the current lines.
type TotalsResponse struct {
	ItemCount   int     `json:"itemCount"`
	TotalPieces int64   `json:"totalPieces"`
	Subtotal    float64 `json:"subtotal"`
}

// FromTotals converts domain totals to a response.
func FromTotals(t orderline.Totals) TotalsResponse {
	return TotalsResponse{
		ItemCount:   t.ItemCount,
		TotalPieces: t.TotalPieces,
		Subtotal:    t.Subtotal.InexactFloat64(),
	}
}

// LineResultResponse reports a committed or edited line with fresh totals.
type LineResultResponse struct {
	Line         LineItemResponse `json:"line"`
	Totals       TotalsResponse   `json:"totals"`
	StockWarning string           `json:"stockWarning,omitempty"`
}

// FromLineResult converts a service line result to a response.
func FromLineResult(res *draft.LineResult) LineResultResponse {
	return LineResultResponse{
		Line:         FromLineItem(res.Line),
		Totals:       FromTotals(res.Totals),
		StockWarning: res.StockWarning,
	}
}

// DraftResponse is the API representation of a draft.
type DraftResponse struct {
	ID        string             `json:"id"`
	Mode      string             `json:"mode"`
	Lines     []LineItemResponse `json:"lines"`
	Totals    TotalsResponse     `json:"totals"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// FromDraft converts a domain draft to a response.
func FromDraft(d *draft.Draft) DraftResponse {
	items := d.Lines.Items()
	lines := make([]LineItemResponse, 0, len(items))
	for _, li := range items {
		lines = append(lines, FromLineItem(li))
	}
	return DraftResponse{
		ID:        d.ID.String(),
		Mode:      string(d.Mode),
		Lines:     lines,
		Totals:    FromTotals(d.Lines.Totals()),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// PayloadLineResponse is the per-line shape of the submission payload.
type PayloadLineResponse struct {
	ProductID       string  `json:"productId"`
	Cartons         int64   `json:"cartons"`
	Pieces          int64   `json:"pieces"`
	PiecesPerCarton int64   `json:"piecesPerCarton"`
	Quantity        int64   `json:"quantity"`
	Price           float64 `json:"price"`
	Total           float64 `json:"total"`
}

// SubmissionResponse is the rendered submission payload.
type SubmissionResponse struct {
	Lines      []PayloadLineResponse `json:"lines"`
	Subtotal   float64               `json:"subtotal"`
	GrandTotal float64               `json:"grandTotal"`
}

// FromSubmission converts a domain payload to a response.
func FromSubmission(p orderline.SubmissionPayload) SubmissionResponse {
	lines := make([]PayloadLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, PayloadLineResponse{
			ProductID:       l.ProductID.String(),
			Cartons:         l.Cartons,
			Pieces:          l.Pieces,
			PiecesPerCarton: l.PiecesPerCarton,
			Quantity:        l.Quantity,
			Price:           l.Price.InexactFloat64(),
			Total:           l.Total.InexactFloat64(),
		})
	}
	return SubmissionResponse{
		Lines:      lines,
		Subtotal:   p.Subtotal.InexactFloat64(),
		GrandTotal: p.GrandTotal.InexactFloat64(),
	}
}
