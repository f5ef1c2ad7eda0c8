package catalog_repo

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartline/internal/core/apperror"
	"cartline/internal/domain"
	"cartline/internal/domain/catalog/product"
)

func setupMock(t *testing.T) (pgxmock.PgxPoolIface, *ProductRepo) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewProductRepo(mock)
}

func productRow(p *product.Product) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "deletion_mark", "version", "code", "name",
		"pieces_per_carton", "description", "barcode",
	}).AddRow(p.ID, p.DeletionMark, p.Version, p.Code, p.Name,
		p.PiecesPerCarton, p.Description, p.Barcode)
}

func TestProductRepoCreate(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)

	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.DeletionMark, p.Version, p.Code, p.Name,
			p.PiecesPerCarton, p.Description, p.Barcode).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoGetByID(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)

	// squirrel resolves driver.Valuer predicate args, so the id arrives
	// at the driver as its string form.
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs(p.ID.String()).
		WillReturnRows(productRow(p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "OIL-1L", got.Code)
	assert.Equal(t, int64(24), got.PiecesPerCarton)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoGetByIDNotFound(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id =").
		WithArgs(p.ID.String()).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "deletion_mark", "version", "code", "name",
			"pieces_per_carton", "description", "barcode",
		}))

	_, err := repo.GetByID(context.Background(), p.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoGetBySKU(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE code =").
		WithArgs("OIL-1L").
		WillReturnRows(productRow(p))

	got, err := repo.GetBySKU(context.Background(), "OIL-1L")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoUpdate(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)
	p.Version = 3

	mock.ExpectExec("UPDATE products SET").
		WithArgs(p.DeletionMark, p.Code, p.Name, p.PiecesPerCarton,
			p.Description, p.Barcode, p.ID.String(), 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 4, p.Version, "version bumped after successful update")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoUpdateStaleVersion(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)
	p.Version = 3

	mock.ExpectExec("UPDATE products SET").
		WithArgs(p.DeletionMark, p.Code, p.Name, p.PiecesPerCarton,
			p.Description, p.Barcode, p.ID.String(), 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(err))
	assert.Equal(t, 3, p.Version, "version unchanged on conflict")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoSetDeletionMark(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)

	mock.ExpectExec("UPDATE products SET deletion_mark =").
		WithArgs(true, p.ID.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SetDeletionMark(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoList(t *testing.T) {
	mock, repo := setupMock(t)
	p := product.New("OIL-1L", "Cooking Oil 1L", 24)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(false).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT (.+) FROM products WHERE deletion_mark =").
		WithArgs(false).
		WillReturnRows(productRow(p))

	res, err := repo.List(context.Background(), domain.DefaultListFilter())
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.TotalCount)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "OIL-1L", res.Items[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepoExistsBySKU(t *testing.T) {
	mock, repo := setupMock(t)

	mock.ExpectQuery("SELECT 1 FROM products").
		WithArgs("OIL-1L").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsBySKU(context.Background(), "OIL-1L")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("SELECT 1 FROM products").
		WithArgs("MISSING").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))

	exists, err = repo.ExistsBySKU(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductOrderBy(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name ASC"},
		{"-name", "name DESC"},
		{"code", "code ASC"},
		{"-code", "code DESC"},
		{"", "name ASC"},
		{"id; DROP TABLE products", "name ASC"},
	}

	for _, tt := range tests {
		if got := productOrderBy(tt.in); got != tt.want {
			t.Errorf("productOrderBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
