// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/domain"
	"cartline/internal/domain/catalog/product"
	"cartline/internal/infrastructure/storage/postgres"
)

const productTable = "products"

var productColumns = []string{
	"id", "deletion_mark", "version", "code", "name",
	"pieces_per_carton", "description", "barcode",
}

// ProductRepo is the PostgreSQL implementation of product.Repository.
type ProductRepo struct {
	db postgres.Querier
}

// NewProductRepo creates a new product repository.
func NewProductRepo(db postgres.Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create implements product.Repository.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := postgres.Builder().
		Insert(productTable).
		Columns(productColumns...).
		Values(p.ID, p.DeletionMark, p.Version, p.Code, p.Name,
			p.PiecesPerCarton, p.Description, p.Barcode)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID implements product.Repository.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"id": productID}, productID.String())
}

// GetBySKU implements product.Repository.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	return r.getOne(ctx, squirrel.Eq{"code": sku}, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, where squirrel.Eq, ref string) (*product.Product, error) {
	q := postgres.Builder().
		Select(productColumns...).
		From(productTable).
		Where(where)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.db, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", ref)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update implements product.Repository with optimistic locking.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := postgres.Builder().
		Update(productTable).
		Set("deletion_mark", p.DeletionMark).
		Set("code", p.Code).
		Set("name", p.Name).
		Set("pieces_per_carton", p.PiecesPerCarton).
		Set("description", p.Description).
		Set("barcode", p.Barcode).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": p.ID}).
		Where(squirrel.Eq{"version": p.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflict("product was modified by another user, refresh and try again").
			WithDetail("id", p.ID.String())
	}

	p.Version++
	return nil
}

// SetDeletionMark implements product.Repository.
func (r *ProductRepo) SetDeletionMark(ctx context.Context, productID id.ID, marked bool) error {
	q := postgres.Builder().
		Update(productTable).
		Set("deletion_mark", marked).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set deletion mark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

// List implements product.Repository.
func (r *ProductRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	result := domain.ListResult[*product.Product]{
		Items:  []*product.Product{},
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	base := postgres.Builder().
		Select(productColumns...).
		From(productTable)

	countQ := postgres.Builder().
		Select("COUNT(*)").
		From(productTable)

	if !filter.IncludeDeleted {
		cond := squirrel.Eq{"deletion_mark": false}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"name": pattern},
		}
		base = base.Where(cond)
		countQ = countQ.Where(cond)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count products: %w", err)
	}

	base = base.OrderBy(productOrderBy(filter.OrderBy))
	if filter.Limit > 0 {
		base = base.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		base = base.Offset(uint64(filter.Offset))
	}

	sql, args, err := base.ToSql()
	if err != nil {
		return result, fmt.Errorf("build select: %w", err)
	}

	if err := pgxscan.Select(ctx, r.db, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list products: %w", err)
	}
	return result, nil
}

// ExistsBySKU implements product.Repository.
func (r *ProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	q := postgres.Builder().
		Select("1").
		From(productTable).
		Where(squirrel.Eq{"code": sku}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check sku: %w", err)
	}
	return true, nil
}

// productOrderBy maps a filter sort key to a safe ORDER BY clause.
// Unknown columns fall back to name to keep the clause injection-proof.
func productOrderBy(orderBy string) string {
	col := strings.TrimPrefix(orderBy, "-")
	desc := strings.HasPrefix(orderBy, "-")

	switch col {
	case "code", "name":
	default:
		col = "name"
		desc = false
	}

	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

var _ product.Repository = (*ProductRepo)(nil)
