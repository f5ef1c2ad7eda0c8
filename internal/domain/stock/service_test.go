package stock

import (
	"context"
	"errors"
	"testing"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/core/types"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	balances map[id.ID]Balance
	getErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{balances: make(map[id.ID]Balance)}
}

func (r *fakeRepo) GetBalance(ctx context.Context, productID id.ID) (Balance, error) {
	if r.getErr != nil {
		return Balance{}, r.getErr
	}
	b, ok := r.balances[productID]
	if !ok {
		return Balance{}, apperror.NewNotFound("stock balance", productID.String())
	}
	return b, nil
}

func (r *fakeRepo) UpsertBalance(ctx context.Context, b Balance) error {
	r.balances[b.ProductID] = b
	return nil
}

func (r *fakeRepo) ListBalances(ctx context.Context) ([]Balance, error) {
	out := make([]Balance, 0, len(r.balances))
	for _, b := range r.balances {
		out = append(out, b)
	}
	return out, nil
}

func TestReceiptMovingAverage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, DefaultMarkup)
	ctx := context.Background()
	productID := id.New()

	// First receipt sets the average outright.
	b, err := svc.RecordReceipt(ctx, productID, 100, types.MustMoney("10"))
	if err != nil {
		t.Fatalf("first receipt: %v", err)
	}
	if b.QuantityPieces != 100 || !b.AverageCost.Equal(types.MustMoney("10")) {
		t.Fatalf("balance = %+v", b)
	}

	// (100*10 + 50*16) / 150 = 12
	b, err = svc.RecordReceipt(ctx, productID, 50, types.MustMoney("16"))
	if err != nil {
		t.Fatalf("second receipt: %v", err)
	}
	if b.QuantityPieces != 150 {
		t.Errorf("quantity = %d, want 150", b.QuantityPieces)
	}
	if !b.AverageCost.Equal(types.MustMoney("12")) {
		t.Errorf("average cost = %s, want 12", b.AverageCost)
	}
}

func TestReceiptValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), DefaultMarkup)
	ctx := context.Background()

	if _, err := svc.RecordReceipt(ctx, id.New(), 0, types.MustMoney("10")); apperror.CodeOf(err) != apperror.CodeValidation {
		t.Errorf("zero pieces: got %v", err)
	}
	if _, err := svc.RecordReceipt(ctx, id.New(), 5, types.MustMoney("-1")); apperror.CodeOf(err) != apperror.CodeValidation {
		t.Errorf("negative cost: got %v", err)
	}
}

func TestIssueKeepsAverageCost(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, DefaultMarkup)
	ctx := context.Background()
	productID := id.New()

	if _, err := svc.RecordReceipt(ctx, productID, 100, types.MustMoney("10")); err != nil {
		t.Fatalf("receipt: %v", err)
	}

	b, err := svc.RecordIssue(ctx, productID, 30)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if b.QuantityPieces != 70 {
		t.Errorf("quantity = %d, want 70", b.QuantityPieces)
	}
	if !b.AverageCost.Equal(types.MustMoney("10")) {
		t.Errorf("average cost = %s, want unchanged 10", b.AverageCost)
	}
}

func TestIssueInsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, DefaultMarkup)
	ctx := context.Background()
	productID := id.New()

	if _, err := svc.RecordReceipt(ctx, productID, 10, types.MustMoney("10")); err != nil {
		t.Fatalf("receipt: %v", err)
	}

	_, err := svc.RecordIssue(ctx, productID, 11)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("want INSUFFICIENT_STOCK, got %v", err)
	}
	if appErr.Details["requested"] != int64(11) || appErr.Details["available"] != int64(10) {
		t.Errorf("details = %v", appErr.Details)
	}
}

func TestFetchAppliesMarkup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, types.MustMoney("1.25"))
	ctx := context.Background()
	productID := id.New()

	if _, err := svc.RecordReceipt(ctx, productID, 100, types.MustMoney("12")); err != nil {
		t.Fatalf("receipt: %v", err)
	}

	snap, err := svc.Fetch(ctx, productID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.CurrentStockPieces != 100 {
		t.Errorf("stock = %d, want 100", snap.CurrentStockPieces)
	}
	if !snap.AverageCostPerPiece.Equal(types.MustMoney("12")) {
		t.Errorf("average cost = %s, want 12", snap.AverageCostPerPiece)
	}
	if !snap.SuggestedPricePerPiece.Equal(types.MustMoney("15")) {
		t.Errorf("suggested price = %s, want 15", snap.SuggestedPricePerPiece)
	}
}

func TestFetchUnknownProductPropagatesNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), DefaultMarkup)

	_, err := svc.Fetch(context.Background(), id.New())
	if !apperror.IsNotFound(err) {
		t.Fatalf("want NOT_FOUND (stock unknown signal), got %v", err)
	}
}

func TestFetchInfrastructureFailureWrapped(t *testing.T) {
	repo := newFakeRepo()
	cause := errors.New("connection refused")
	repo.getErr = cause
	svc := NewService(repo, DefaultMarkup)

	_, err := svc.Fetch(context.Background(), id.New())
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeStockFetchFailed {
		t.Fatalf("want STOCK_FETCH_FAILED, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
}

func TestNewServiceFallsBackToDefaultMarkup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, types.Zero())
	ctx := context.Background()
	productID := id.New()

	if _, err := svc.RecordReceipt(ctx, productID, 10, types.MustMoney("100")); err != nil {
		t.Fatalf("receipt: %v", err)
	}

	snap, err := svc.Fetch(ctx, productID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !snap.SuggestedPricePerPiece.Equal(types.MustMoney("125")) {
		t.Errorf("suggested price = %s, want 125 from default markup", snap.SuggestedPricePerPiece)
	}
}
