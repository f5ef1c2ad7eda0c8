package orderline

import (
	"encoding/json"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/core/types"
)

// LineSet is an ordered collection of committed line items for one order or
// purchase. Invariant: no two items share the same product id; a second add
// for an existing product is rejected, never merged.
type LineSet struct {
	items []LineItem
}

// NewLineSet creates an empty line set.
func NewLineSet() *LineSet {
	return &LineSet{items: make([]LineItem, 0)}
}

// Len returns the number of committed lines.
func (s *LineSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the committed lines in order.
func (s *LineSet) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the line at index.
func (s *LineSet) Get(index int) (LineItem, error) {
	if index < 0 || index >= len(s.items) {
		return LineItem{}, apperror.NewNotFound("line", index)
	}
	return s.items[index], nil
}

// Contains reports whether a product already has a line in the set.
func (s *LineSet) Contains(productID id.ID) bool {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Append adds a committed line. The duplicate check is delegated to Build
// but re-asserted here as a second invariant gate.
func (s *LineSet) Append(li LineItem) error {
	if s.Contains(li.ProductID) {
		return apperror.NewDuplicateProduct(li.ProductID.String())
	}
	s.items = append(s.items, li)
	return nil
}

// Remove deletes the line at index unconditionally. Confirmation, if any,
// is a UI concern.
func (s *LineSet) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return apperror.NewNotFound("line", index)
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// Replace swaps the line at index with an edited one. ProductID and
// PiecesPerCarton are immutable per line; a mismatch is a caller bug.
func (s *LineSet) Replace(index int, updated LineItem) error {
	if index < 0 || index >= len(s.items) {
		return apperror.NewNotFound("line", index)
	}

	existing := s.items[index]
	if updated.ProductID != existing.ProductID {
		return apperror.NewValidation("line product cannot change on edit").
			WithDetail("field", "productId")
	}
	if updated.PiecesPerCarton != existing.PiecesPerCarton {
		return apperror.NewValidation("line conversion factor cannot change on edit").
			WithDetail("field", "piecesPerCarton")
	}

	s.items[index] = updated
	return nil
}

// Totals are the aggregate figures over the current lines.
type Totals struct {
	ItemCount   int         `json:"itemCount"`
	TotalPieces int64       `json:"totalPieces"`
	Subtotal    types.Money `json:"subtotal"`
}

// Totals recomputes aggregates on every read, never cached across mutation,
// so the result reflects the current set exactly.
func (s *LineSet) Totals() Totals {
	t := Totals{ItemCount: len(s.items), Subtotal: types.Zero()}
	for i := range s.items {
		t.TotalPieces += s.items[i].TotalPieces
		t.Subtotal = t.Subtotal.Add(s.items[i].LineTotal)
	}
	return t
}

// PayloadLine is the per-line shape the order/purchase submission
// collaborator serializes into its REST payload.
type PayloadLine struct {
	ProductID       id.ID       `json:"productId"`
	Cartons         int64       `json:"cartons"`
	Pieces          int64       `json:"pieces"`
	PiecesPerCarton int64       `json:"piecesPerCarton"`
	Quantity        int64       `json:"quantity"`
	Price           types.Money `json:"price"`
	Total           types.Money `json:"total"`
}

// SubmissionPayload is the output contract consumed downstream.
// Discount and tax are applied by the submission layer, so the grand total
// here equals the subtotal.
type SubmissionPayload struct {
	Lines      []PayloadLine `json:"lines"`
	Subtotal   types.Money   `json:"subtotal"`
	GrandTotal types.Money   `json:"grandTotal"`
}

// Payload renders the submission payload for the current lines.
func (s *LineSet) Payload() SubmissionPayload {
	lines := make([]PayloadLine, len(s.items))
	for i, li := range s.items {
		lines[i] = PayloadLine{
			ProductID:       li.ProductID,
			Cartons:         li.Cartons,
			Pieces:          li.Pieces,
			PiecesPerCarton: li.PiecesPerCarton,
			Quantity:        li.TotalPieces,
			Price:           li.UnitPrice,
			Total:           li.LineTotal,
		}
	}

	subtotal := s.Totals().Subtotal
	return SubmissionPayload{
		Lines:      lines,
		Subtotal:   subtotal,
		GrandTotal: subtotal,
	}
}

// lineSetJSON is the serialized form; items stay unexported at runtime so
// mutation goes through the invariant-checking methods.
type lineSetJSON struct {
	Items []LineItem `json:"items"`
}

// MarshalJSON implements json.Marshaler.
func (s *LineSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineSetJSON{Items: s.items})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *LineSet) UnmarshalJSON(data []byte) error {
	var raw lineSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.items = raw.Items
	if s.items == nil {
		s.items = make([]LineItem, 0)
	}
	return nil
}
