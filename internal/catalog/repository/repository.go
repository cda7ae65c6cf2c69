package repository

import (
	"context"

	"github.com/marves/pcpartstore/internal/catalog/domain"
)

// Filter defines criteria for listing products. Nil fields are not applied;
// set fields combine conjunctively.
type Filter struct {
	Category *domain.Category
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
	Page     int
	PageSize int
}

// Provider defines the interface to the product data source. Implementations
// must preserve catalog order when filtering and use offset-based pagination:
// page N covers item range [(N-1)*pageSize, N*pageSize) of the filtered set.
type Provider interface {
	// List returns the requested page of products matching the filter along
	// with the total count across all pages.
	List(ctx context.Context, filter Filter) ([]domain.Product, int, error)

	// GetByID retrieves a product by its identifier. A missing product yields
	// an error wrapping apperrors.ErrNotFound, distinct from transport failures.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ListFeatured returns the ordered featured products, without pagination.
	ListFeatured(ctx context.Context) ([]domain.Product, error)

	// Categories returns the set of category labels the provider sells.
	Categories(ctx context.Context) ([]domain.Category, error)
}
