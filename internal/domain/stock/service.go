package stock

import (
	"context"
	"fmt"
	"time"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/core/types"
	"cartline/pkg/logger"
)

// DefaultMarkup is the multiplier applied to average cost to derive the
// suggested sale price when no markup is configured.
var DefaultMarkup = types.MustMoney("1.25")

// Service provides stock balances and snapshots.
// It is the Oracle implementation backed by the balance store.
type Service struct {
	repo   Repository
	markup types.Money
}

// NewService creates a new stock service.
// A non-positive markup falls back to DefaultMarkup.
func NewService(repo Repository, markup types.Money) *Service {
	if !markup.IsPositive() {
		markup = DefaultMarkup
	}
	return &Service{repo: repo, markup: markup}
}

// Fetch implements Oracle. Returns the current snapshot for a product.
// A product with no balance row has no cost history; the error is the
// caller's signal to degrade to "stock unknown".
func (s *Service) Fetch(ctx context.Context, productID id.ID) (Snapshot, error) {
	b, err := s.repo.GetBalance(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Snapshot{}, err
		}
		return Snapshot{}, apperror.NewStockFetchFailed(productID.String(), err)
	}

	return Snapshot{
		ProductID:              b.ProductID,
		CurrentStockPieces:     b.QuantityPieces,
		AverageCostPerPiece:    b.AverageCost,
		SuggestedPricePerPiece: b.AverageCost.Mul(s.markup),
	}, nil
}

// RecordReceipt increases the balance and folds the receipt cost into the
// moving average: newAvg = (qty*avg + pieces*unitCost) / (qty+pieces).
func (s *Service) RecordReceipt(ctx context.Context, productID id.ID, pieces int64, unitCost types.Money) (Balance, error) {
	if pieces <= 0 {
		return Balance{}, apperror.NewValidation("pieces must be positive").
			WithDetail("field", "pieces")
	}
	if unitCost.IsNegative() {
		return Balance{}, apperror.NewValidation("unit cost cannot be negative").
			WithDetail("field", "unitCost")
	}

	b, err := s.repo.GetBalance(ctx, productID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return Balance{}, fmt.Errorf("get balance: %w", err)
		}
		b = Balance{ProductID: productID}
	}

	oldQty := types.NewMoneyFromInt(b.QuantityPieces)
	inQty := types.NewMoneyFromInt(pieces)
	totalQty := oldQty.Add(inQty)

	totalCost := oldQty.Mul(b.AverageCost).Add(inQty.Mul(unitCost))
	b.AverageCost = totalCost.Div(totalQty)
	b.QuantityPieces += pieces
	b.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpsertBalance(ctx, b); err != nil {
		return Balance{}, fmt.Errorf("upsert balance: %w", err)
	}

	logger.Info(ctx, "stock receipt recorded",
		"product_id", productID,
		"pieces", pieces,
		"new_quantity", b.QuantityPieces,
	)

	return b, nil
}

// RecordIssue decreases the balance; the average cost is unchanged.
// Rejects issues that would drive the balance negative.
func (s *Service) RecordIssue(ctx context.Context, productID id.ID, pieces int64) (Balance, error) {
	if pieces <= 0 {
		return Balance{}, apperror.NewValidation("pieces must be positive").
			WithDetail("field", "pieces")
	}

	b, err := s.repo.GetBalance(ctx, productID)
	if err != nil {
		return Balance{}, err
	}

	if b.QuantityPieces < pieces {
		return Balance{}, apperror.NewInsufficientStock(productID.String(), pieces, b.QuantityPieces)
	}

	b.QuantityPieces -= pieces
	b.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpsertBalance(ctx, b); err != nil {
		return Balance{}, fmt.Errorf("upsert balance: %w", err)
	}

	logger.Info(ctx, "stock issue recorded",
		"product_id", productID,
		"pieces", pieces,
		"new_quantity", b.QuantityPieces,
	)

	return b, nil
}

// ListBalances returns all non-zero balances.
func (s *Service) ListBalances(ctx context.Context) ([]Balance, error) {
	return s.repo.ListBalances(ctx)
}

var _ Oracle = (*Service)(nil)
