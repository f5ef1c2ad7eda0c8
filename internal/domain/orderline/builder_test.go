package orderline

import (
	"testing"

	"cartline/internal/core/apperror"
	"cartline/internal/core/types"
	"cartline/internal/domain/catalog/product"
	"cartline/internal/domain/stock"
)

func testProduct(ppc int64) *product.Product {
	return product.New("SKU-001", "Cooking Oil 1L", ppc)
}

func testSnapshot(p *product.Product, pieces int64) *stock.Snapshot {
	return &stock.Snapshot{
		ProductID:          p.ID,
		CurrentStockPieces: pieces,
	}
}

func TestBuildRejectsNoProduct(t *testing.T) {
	_, err := Build(nil, AddInput{Cartons: 1, Price: types.MustMoney("10")}, ModeSale, nil, NewLineSet())
	if apperror.CodeOf(err) != apperror.CodeNoProductSelected {
		t.Fatalf("want NO_PRODUCT_SELECTED, got %v", err)
	}
}

func TestBuildRejectsZeroQuantity(t *testing.T) {
	p := testProduct(24)

	tests := []struct {
		name string
		in   AddInput
	}{
		{"both zero", AddInput{Price: types.MustMoney("10")}},
		{"both negative", AddInput{Cartons: -2, Pieces: -3, Price: types.MustMoney("10")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(p, tt.in, ModeSale, testSnapshot(p, 100), NewLineSet())
			if apperror.CodeOf(err) != apperror.CodeZeroQuantity {
				t.Fatalf("want ZERO_QUANTITY, got %v", err)
			}
		})
	}
}

func TestBuildRejectsInvalidPrice(t *testing.T) {
	p := testProduct(24)

	for _, price := range []string{"0", "-5"} {
		_, err := Build(p, AddInput{Pieces: 1, Price: types.MustMoney(price)}, ModeSale, testSnapshot(p, 100), NewLineSet())
		if apperror.CodeOf(err) != apperror.CodeInvalidPrice {
			t.Fatalf("price %s: want INVALID_PRICE, got %v", price, err)
		}
	}
}

func TestBuildRejectsDuplicateProduct(t *testing.T) {
	p := testProduct(24)
	set := NewLineSet()

	first, err := Build(p, AddInput{Pieces: 2, Price: types.MustMoney("10")}, ModeSale, testSnapshot(p, 100), set)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := set.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}

	_, err = Build(p, AddInput{Pieces: 3, Price: types.MustMoney("10")}, ModeSale, testSnapshot(p, 100), set)
	if apperror.CodeOf(err) != apperror.CodeDuplicateProduct {
		t.Fatalf("want DUPLICATE_PRODUCT, got %v", err)
	}

	// The rejected add must not touch the set; quantities are never merged.
	if set.Len() != 1 {
		t.Fatalf("set len = %d, want 1", set.Len())
	}
	got, _ := set.Get(0)
	if got.TotalPieces != 2 {
		t.Fatalf("existing line mutated: total pieces = %d, want 2", got.TotalPieces)
	}
}

func TestBuildSaleStockCeiling(t *testing.T) {
	p := testProduct(1)

	// Requesting exactly the available quantity passes.
	li, err := Build(p, AddInput{Pieces: 50, Price: types.MustMoney("10")}, ModeSale, testSnapshot(p, 50), NewLineSet())
	if err != nil {
		t.Fatalf("50 of 50: %v", err)
	}
	if li.AvailableStockAtAdd != 50 {
		t.Errorf("AvailableStockAtAdd = %d, want 50", li.AvailableStockAtAdd)
	}
	if li.StockUnknown {
		t.Error("StockUnknown set with a live snapshot")
	}

	// One more piece is rejected with both figures in the details.
	_, err = Build(p, AddInput{Pieces: 51, Price: types.MustMoney("10")}, ModeSale, testSnapshot(p, 50), NewLineSet())
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("want INSUFFICIENT_STOCK, got %v", err)
	}
	if appErr.Details["requested"] != int64(51) || appErr.Details["available"] != int64(50) {
		t.Errorf("details = %v, want requested=51 available=50", appErr.Details)
	}
}

func TestBuildPurchaseIgnoresStockCeiling(t *testing.T) {
	p := testProduct(1)

	li, err := Build(p, AddInput{Pieces: 500, Price: types.MustMoney("10")}, ModePurchase, testSnapshot(p, 3), NewLineSet())
	if err != nil {
		t.Fatalf("purchase above stock: %v", err)
	}
	if li.AvailableStockAtAdd != 3 {
		t.Errorf("AvailableStockAtAdd = %d, want 3", li.AvailableStockAtAdd)
	}
}

func TestBuildNilSnapshotSoftFailsOpen(t *testing.T) {
	p := testProduct(1)

	li, err := Build(p, AddInput{Pieces: 9999, Price: types.MustMoney("10")}, ModeSale, nil, NewLineSet())
	if err != nil {
		t.Fatalf("sale with unknown stock: %v", err)
	}
	if !li.StockUnknown {
		t.Error("StockUnknown not set")
	}
	if li.AvailableStockAtAdd != 0 {
		t.Errorf("AvailableStockAtAdd = %d, want 0", li.AvailableStockAtAdd)
	}
}

func TestBuildPurchaseNormalizesCartonPrice(t *testing.T) {
	p := testProduct(24)

	// 3 cartons + 5 pieces at 1200 per carton of 24.
	li, err := Build(p, AddInput{Cartons: 3, Pieces: 5, Price: types.MustMoney("1200")}, ModePurchase, nil, NewLineSet())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if li.TotalPieces != 77 {
		t.Errorf("TotalPieces = %d, want 77", li.TotalPieces)
	}
	if !li.UnitPrice.Equal(types.MustMoney("50")) {
		t.Errorf("UnitPrice = %s, want 50 per piece", li.UnitPrice)
	}
	if !li.LineTotal.Equal(types.MustMoney("3850")) {
		t.Errorf("LineTotal = %s, want 3850", li.LineTotal)
	}
}

func TestBuildSalePriceIsPerPiece(t *testing.T) {
	p := testProduct(24)

	li, err := Build(p, AddInput{Cartons: 1, Pieces: 0, Price: types.MustMoney("55")}, ModeSale, testSnapshot(p, 100), NewLineSet())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !li.UnitPrice.Equal(types.MustMoney("55")) {
		t.Errorf("UnitPrice = %s, want 55 (entered per piece, no normalization)", li.UnitPrice)
	}
	if !li.LineTotal.Equal(types.MustMoney("1320")) {
		t.Errorf("LineTotal = %s, want 1320", li.LineTotal)
	}
}

func TestBuildClampsNegativeInputSides(t *testing.T) {
	p := testProduct(24)

	li, err := Build(p, AddInput{Cartons: -2, Pieces: 5, Price: types.MustMoney("10")}, ModeSale, testSnapshot(p, 100), NewLineSet())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if li.Cartons != 0 || li.Pieces != 5 || li.TotalPieces != 5 {
		t.Errorf("got cartons=%d pieces=%d total=%d, want 0/5/5", li.Cartons, li.Pieces, li.TotalPieces)
	}
}

func TestBuildCapturesFactorAtAddTime(t *testing.T) {
	p := testProduct(24)

	li, err := Build(p, AddInput{Cartons: 1, Price: types.MustMoney("10")}, ModeSale, testSnapshot(p, 100), NewLineSet())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// A later catalog change must not affect the committed line.
	p.PiecesPerCarton = 12
	if li.PiecesPerCarton != 24 {
		t.Errorf("line factor = %d, want captured 24", li.PiecesPerCarton)
	}
}
