// Package memory provides an in-memory product catalog backed by a seeded
// data set. It is the default provider for local development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
)

// Provider serves products from an in-memory slice. Catalog order is the
// insertion order of the seed data and is stable across calls.
type Provider struct {
	mu       sync.RWMutex
	products []domain.Product
}

// New creates a Provider seeded with the default catalog.
func New() *Provider {
	return &Provider{products: seedProducts()}
}

// NewWithProducts creates a Provider holding the given products in order.
func NewWithProducts(products []domain.Product) *Provider {
	return &Provider{products: products}
}

func (p *Provider) List(ctx context.Context, filter repository.Filter) ([]domain.Product, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	filtered := make([]domain.Product, 0, len(p.products))
	for _, prod := range p.products {
		if matches(prod, filter) {
			filtered = append(filtered, prod)
		}
	}

	total := len(filtered)

	start := (filter.Page - 1) * filter.PageSize
	if start >= total {
		return []domain.Product{}, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (p *Provider) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	for i := range p.products {
		if p.products[i].ID == id {
			prod := p.products[i]
			return &prod, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

func (p *Provider) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	featured := make([]domain.Product, 0)
	for _, prod := range p.products {
		if prod.Featured {
			featured = append(featured, prod)
		}
	}
	return featured, nil
}

func (p *Provider) Categories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.Categories(), nil
}

// matches reports whether a product satisfies every set filter field.
func matches(prod domain.Product, f repository.Filter) bool {
	if f.Category != nil && prod.Category != *f.Category {
		return false
	}
	if f.MinPrice != nil && prod.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && prod.Price > *f.MaxPrice {
		return false
	}
	if f.InStock != nil {
		if *f.InStock && prod.Stock <= 0 {
			return false
		}
		if !*f.InStock && prod.Stock != 0 {
			return false
		}
	}
	return true
}
