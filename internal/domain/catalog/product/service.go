package product

import (
	"context"
	"fmt"

	"cartline/internal/core/apperror"
	"cartline/internal/core/id"
	"cartline/internal/domain"
	"cartline/pkg/logger"
)

// Service provides business logic for the Product catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	p.Normalize()

	if err := p.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsBySKU(ctx, p.Code)
	if err != nil {
		return fmt.Errorf("check sku: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("product", "sku", p.Code)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	logger.Info(ctx, "product created", "id", p.ID, "sku", p.Code)
	return nil
}

// GetByID retrieves a product by ID.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

// GetBySKU retrieves a product by SKU.
func (s *Service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	p, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

// Update validates and persists changes to a product.
// PiecesPerCarton changes affect only lines added afterwards; committed lines
// keep the factor captured at add time.
func (s *Service) Update(ctx context.Context, p *Product) error {
	p.Normalize()

	if err := p.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetBySKU(ctx, p.Code)
	if err == nil && existing.ID != p.ID {
		return apperror.NewDuplicate("product", "sku", p.Code)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

// Delete soft-deletes a product.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.SetDeletionMark(ctx, productID, true)
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}
