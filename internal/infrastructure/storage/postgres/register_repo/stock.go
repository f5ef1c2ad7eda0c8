// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/domain/stock"
	"cartline/internal/infrastructure/storage/postgres"
)

const balanceTable = "stock_balances"

var balanceColumns = []string{
	"product_id", "quantity_pieces", "average_cost", "updated_at",
}

// StockRepo is the PostgreSQL implementation of stock.Repository.
type StockRepo struct {
	db postgres.Querier
}

// NewStockRepo creates a new stock balance repository.
func NewStockRepo(db postgres.Querier) *StockRepo {
	return &StockRepo{db: db}
}

// GetBalance implements stock.Repository.
func (r *StockRepo) GetBalance(ctx context.Context, productID id.ID) (stock.Balance, error) {
	q := postgres.Builder().
		Select(balanceColumns...).
		From(balanceTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return stock.Balance{}, fmt.Errorf("build select: %w", err)
	}

	var b stock.Balance
	if err := pgxscan.Get(ctx, r.db, &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return stock.Balance{}, apperror.NewNotFound("stock balance", productID.String())
		}
		return stock.Balance{}, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// UpsertBalance implements stock.Repository.
func (r *StockRepo) UpsertBalance(ctx context.Context, b stock.Balance) error {
	q := postgres.Builder().
		Insert(balanceTable).
		Columns(balanceColumns...).
		Values(b.ProductID, b.QuantityPieces, b.AverageCost, b.UpdatedAt).
		Suffix(`ON CONFLICT (product_id) DO UPDATE SET
			quantity_pieces = EXCLUDED.quantity_pieces,
			average_cost = EXCLUDED.average_cost,
			updated_at = EXCLUDED.updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListBalances implements stock.Repository.
func (r *StockRepo) ListBalances(ctx context.Context) ([]stock.Balance, error) {
	q := postgres.Builder().
		Select(balanceColumns...).
		From(balanceTable).
		Where(squirrel.Gt{"quantity_pieces": 0}).
		OrderBy("product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	balances := []stock.Balance{}
	if err := pgxscan.Select(ctx, r.db, &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	return balances, nil
}

var _ stock.Repository = (*StockRepo)(nil)
