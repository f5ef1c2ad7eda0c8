package register_repo

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/core/types"
	"cartline/internal/domain/stock"
)

func setupMock(t *testing.T) (pgxmock.PgxPoolIface, *StockRepo) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewStockRepo(mock)
}

func TestStockRepoGetBalance(t *testing.T) {
	mock, repo := setupMock(t)
	productID := id.New()
	now := time.Now().UTC()

	// squirrel resolves driver.Valuer predicate args, so the id arrives
	// at the driver as its string form.
	mock.ExpectQuery("SELECT (.+) FROM stock_balances WHERE product_id =").
		WithArgs(productID.String()).
		WillReturnRows(pgxmock.NewRows([]string{
			"product_id", "quantity_pieces", "average_cost", "updated_at",
		}).AddRow(productID, int64(150), types.MustMoney("12.5"), now))

	b, err := repo.GetBalance(context.Background(), productID)
	require.NoError(t, err)

	assert.Equal(t, productID, b.ProductID)
	assert.Equal(t, int64(150), b.QuantityPieces)
	assert.True(t, b.AverageCost.Equal(types.MustMoney("12.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepoGetBalanceMissingRow(t *testing.T) {
	mock, repo := setupMock(t)
	productID := id.New()

	mock.ExpectQuery("SELECT (.+) FROM stock_balances WHERE product_id =").
		WithArgs(productID.String()).
		WillReturnRows(pgxmock.NewRows([]string{
			"product_id", "quantity_pieces", "average_cost", "updated_at",
		}))

	_, err := repo.GetBalance(context.Background(), productID)
	assert.True(t, apperror.IsNotFound(err), "no balance row reads as not found, not as zero stock")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepoUpsertBalance(t *testing.T) {
	mock, repo := setupMock(t)
	b := stock.Balance{
		ProductID:      id.New(),
		QuantityPieces: 150,
		AverageCost:    types.MustMoney("12"),
		UpdatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO stock_balances (.+) ON CONFLICT").
		WithArgs(b.ProductID, b.QuantityPieces, b.AverageCost, b.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.UpsertBalance(context.Background(), b)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepoListBalances(t *testing.T) {
	mock, repo := setupMock(t)
	productID := id.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM stock_balances WHERE quantity_pieces >").
		WithArgs(0).
		WillReturnRows(pgxmock.NewRows([]string{
			"product_id", "quantity_pieces", "average_cost", "updated_at",
		}).AddRow(productID, int64(10), types.MustMoney("3"), now))

	balances, err := repo.ListBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, productID, balances[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
