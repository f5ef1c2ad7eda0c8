package dto

import (
	"cartline/internal/domain"
	"cartline/internal/domain/catalog/product"
)

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	SKU             string  `json:"sku" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	PiecesPerCarton int64   `json:"piecesPerCarton"`
	Description     *string `json:"description"`
	Barcode         *string `json:"barcode"`
}

// ToModel converts the request to a domain model.
func (r *CreateProductRequest) ToModel() *product.Product {
	p := product.New(r.SKU, r.Name, r.PiecesPerCarton)
	p.Description = r.Description
	p.Barcode = r.Barcode
	return p
}

// UpdateProductRequest is the payload for updating a product.
type UpdateProductRequest struct {
	SKU             string  `json:"sku" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	PiecesPerCarton int64   `json:"piecesPerCarton"`
	Description     *string `json:"description"`
	Barcode         *string `json:"barcode"`
	Version         int     `json:"version"`
}

// ApplyTo copies request fields onto an existing product.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.SKU
	p.Name = r.Name
	p.PiecesPerCarton = r.PiecesPerCarton
	p.Description = r.Description
	p.Barcode = r.Barcode
	p.Version = r.Version
}

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ID              string  `json:"id"`
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	PiecesPerCarton int64   `json:"piecesPerCarton"`
	Description     *string `json:"description,omitempty"`
	Barcode         *string `json:"barcode,omitempty"`
	DeletionMark    bool    `json:"deletionMark"`
	Version         int     `json:"version"`
}

// FromProduct converts a domain product to a response.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID.String(),
		SKU:             p.Code,
		Name:            p.Name,
		PiecesPerCarton: p.PiecesPerCarton,
		Description:     p.Description,
		Barcode:         p.Barcode,
		DeletionMark:    p.DeletionMark,
		Version:         p.Version,
	}
}

// ProductListResponse is a paginated product list.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	TotalCount int64             `json:"totalCount"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// FromProductList converts a list result to a response.
func FromProductList(res domain.ListResult[*product.Product]) ProductListResponse {
	items := make([]ProductResponse, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, FromProduct(p))
	}
	return ProductListResponse{
		Items:      items,
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	}
}

// ToFilter converts list query params to a domain filter.
func (q *ListQuery) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	if q.Search != "" {
		f.Search = q.Search
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	if q.Offset > 0 {
		f.Offset = q.Offset
	}
	return f
}
