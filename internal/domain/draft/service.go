package draft

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/domain/catalog/product"
	"cartline/internal/domain/orderline"
	"cartline/internal/domain/stock"
	"cartline/pkg/logger"
)

var tracer = otel.Tracer("cartline/draft")

// Service provides business operations on drafts. Each operation is a thin
// adapter around the orderline engine, so sale entry, purchase entry, and
// edits all share one validation path.
type Service struct {
	repo     Repository
	products *product.Service
	oracle   stock.Oracle
}

// NewService creates a new draft service.
func NewService(repo Repository, products *product.Service, oracle stock.Oracle) *Service {
	return &Service{
		repo:     repo,
		products: products,
		oracle:   oracle,
	}
}

// LineResult reports a committed or edited line together with fresh totals.
type LineResult struct {
	Line   orderline.LineItem `json:"line"`
	Totals orderline.Totals   `json:"totals"`

	// StockWarning is set when the stock snapshot was unavailable and the
	// sufficiency check was skipped. Rendered as a banner, never a block.
	StockWarning string `json:"stockWarning,omitempty"`
}

// Start creates and persists an empty draft.
func (s *Service) Start(ctx context.Context, mode orderline.Mode) (*Draft, error) {
	d := NewDraft(mode)
	if err := d.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	logger.Info(ctx, "draft started", "id", d.ID, "mode", d.Mode)
	return d, nil
}

// Get retrieves a draft.
func (s *Service) Get(ctx context.Context, draftID id.ID) (*Draft, error) {
	return s.repo.Get(ctx, draftID)
}

// AddLine validates and commits a new line on the draft.
//
// The stock snapshot is fetched fresh for the candidate product. A failed
// or unknown fetch does not block entry: for purchases stock is being
// increased anyway, and for sales the ceiling check soft-fails open with a
// warning on the result.
func (s *Service) AddLine(ctx context.Context, draftID, productID id.ID, in orderline.AddInput) (*LineResult, error) {
	ctx, span := tracer.Start(ctx, "draft.add_line",
		trace.WithAttributes(
			attribute.String("draft.id", draftID.String()),
			attribute.String("product.id", productID.String()),
		))
	defer span.End()

	d, err := s.repo.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if id.IsNil(productID) {
		return nil, apperror.NewNoProductSelected()
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	snap, warning := s.fetchSnapshot(ctx, productID)

	line, err := orderline.Build(p, in, d.Mode, snap, d.Lines)
	if err != nil {
		return nil, err
	}

	if err := d.Lines.Append(line); err != nil {
		return nil, err
	}

	d.Touch()
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	logger.Info(ctx, "line added",
		"draft_id", d.ID,
		"product_id", productID,
		"total_pieces", line.TotalPieces,
	)

	return &LineResult{Line: line, Totals: d.Lines.Totals(), StockWarning: warning}, nil
}

// EditLine replaces the quantity and price of an existing line.
// The stock ceiling is not re-checked: the line keeps the availability
// captured at add time.
func (s *Service) EditLine(ctx context.Context, draftID id.ID, index int, in orderline.AddInput) (*LineResult, error) {
	ctx, span := tracer.Start(ctx, "draft.edit_line",
		trace.WithAttributes(attribute.String("draft.id", draftID.String())))
	defer span.End()

	d, err := s.repo.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	existing, err := d.Lines.Get(index)
	if err != nil {
		return nil, err
	}

	updated, err := orderline.Edit(existing, in, d.Mode)
	if err != nil {
		return nil, err
	}

	if err := d.Lines.Replace(index, updated); err != nil {
		return nil, err
	}

	d.Touch()
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	return &LineResult{Line: updated, Totals: d.Lines.Totals()}, nil
}

// RemoveLine deletes a line by index.
func (s *Service) RemoveLine(ctx context.Context, draftID id.ID, index int) (*Draft, error) {
	d, err := s.repo.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if err := d.Lines.Remove(index); err != nil {
		return nil, err
	}

	d.Touch()
	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	return d, nil
}

// Submit renders the submission payload and clears the draft.
// Actual persistence of the submitted order or purchase is the downstream
// collaborator's call; nothing here needs rollback if it fails.
func (s *Service) Submit(ctx context.Context, draftID id.ID) (orderline.SubmissionPayload, error) {
	ctx, span := tracer.Start(ctx, "draft.submit",
		trace.WithAttributes(attribute.String("draft.id", draftID.String())))
	defer span.End()

	d, err := s.repo.Get(ctx, draftID)
	if err != nil {
		return orderline.SubmissionPayload{}, err
	}

	if d.Lines.Len() == 0 {
		return orderline.SubmissionPayload{}, apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	payload := d.Lines.Payload()

	if err := s.repo.Delete(ctx, draftID); err != nil {
		return orderline.SubmissionPayload{}, fmt.Errorf("delete draft: %w", err)
	}

	logger.Info(ctx, "draft submitted",
		"draft_id", d.ID,
		"mode", d.Mode,
		"lines", len(payload.Lines),
		"subtotal", payload.Subtotal,
	)

	return payload, nil
}

// fetchSnapshot queries the oracle, degrading any failure to a nil snapshot
// plus a human-readable warning.
func (s *Service) fetchSnapshot(ctx context.Context, productID id.ID) (*stock.Snapshot, string) {
	snap, err := s.oracle.Fetch(ctx, productID)
	if err != nil {
		logger.Warn(ctx, "stock snapshot unavailable",
			"product_id", productID,
			"error", err,
		)
		return nil, "stock level unknown, quantity was not checked against availability"
	}
	return &snap, ""
}
