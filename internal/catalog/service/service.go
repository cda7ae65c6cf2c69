// Package service implements the business logic for the product catalog.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
	"github.com/marves/pcpartstore/pkg/pagination"
)

// Service implements catalog operations on top of a product provider.
type Service struct {
	provider repository.Provider
	logger   *slog.Logger
}

// New creates a new catalog service.
func New(provider repository.Provider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// ListProducts returns a filtered, paginated product listing. A page past the
// end of the result set is clamped to the last page rather than returning an
// empty page.
func (s *Service) ListProducts(ctx context.Context, filter repository.Filter) (*pagination.Result[domain.Product], error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = pagination.DefaultPageSize
	}
	if filter.PageSize > pagination.MaxPageSize {
		filter.PageSize = pagination.MaxPageSize
	}

	products, total, err := s.provider.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	totalPages := pagination.TotalPages(total, filter.PageSize)
	if clamped := pagination.ClampPage(filter.Page, totalPages); clamped != filter.Page {
		s.logger.DebugContext(ctx, "requested page past end, clamping",
			slog.Int("requested", filter.Page),
			slog.Int("clamped", clamped),
		)
		filter.Page = clamped
		products, total, err = s.provider.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
	}

	result := pagination.NewResult(products, total, pagination.Params{Page: filter.Page, PageSize: filter.PageSize})
	return &result, nil
}

// GetProduct retrieves a product by its ID.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.provider.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListFeatured returns the featured products.
func (s *Service) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	products, err := s.provider.ListFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return products, nil
}

// Categories returns the category labels available for filtering.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.provider.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func validateFilter(filter repository.Filter) error {
	if filter.Category != nil && !domain.IsValidCategory(string(*filter.Category)) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown category %q", *filter.Category))
	}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return apperrors.InvalidInput("minPrice must not be negative")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return apperrors.InvalidInput("maxPrice must not be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return apperrors.InvalidInput("minPrice must not exceed maxPrice")
	}
	return nil
}
