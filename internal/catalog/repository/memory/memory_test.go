package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
)

func boolPtr(b bool) *bool { return &b }

func categoryPtr(c domain.Category) *domain.Category { return &c }

func TestList_Pagination(t *testing.T) {
	p := New()
	ctx := context.Background()

	page1, total, err := p.List(ctx, repository.Filter{Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	require.Len(t, page1, 4)
	assert.Equal(t, "1", page1[0].ID)

	page3, total, err := p.List(ctx, repository.Filter{Page: 3, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Len(t, page3, 2)

	// Past the last page yields an empty slice, not an error.
	page4, total, err := p.List(ctx, repository.Filter{Page: 4, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Empty(t, page4)
}

func TestList_Filters(t *testing.T) {
	p := New()
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    repository.Filter
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "by category",
			filter:    repository.Filter{Category: categoryPtr(domain.CategoryCPU), Page: 1, PageSize: 9},
			wantIDs:   []string{"1", "9"},
			wantTotal: 2,
		},
		{
			name:      "min price",
			filter:    repository.Filter{MinPrice: floatPtr(400), Page: 1, PageSize: 9},
			wantIDs:   []string{"1", "2", "9"},
			wantTotal: 3,
		},
		{
			name:      "max price",
			filter:    repository.Filter{MaxPrice: floatPtr(100), Page: 1, PageSize: 9},
			wantIDs:   []string{"3", "7"},
			wantTotal: 2,
		},
		{
			name:      "in stock only",
			filter:    repository.Filter{InStock: boolPtr(true), Page: 1, PageSize: 9},
			wantTotal: 8,
		},
		{
			name:      "out of stock only",
			filter:    repository.Filter{InStock: boolPtr(false), Page: 1, PageSize: 9},
			wantIDs:   []string{"7", "10"},
			wantTotal: 2,
		},
		{
			name: "conjunctive",
			filter: repository.Filter{
				Category: categoryPtr(domain.CategoryStorage),
				MaxPrice: floatPtr(120),
				InStock:  boolPtr(true),
				Page:     1,
				PageSize: 9,
			},
			wantIDs:   []string{"3"},
			wantTotal: 1,
		},
		{
			name:      "no matches",
			filter:    repository.Filter{MinPrice: floatPtr(9999), Page: 1, PageSize: 9},
			wantIDs:   []string{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := p.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			if tt.wantIDs != nil {
				ids := make([]string, 0, len(products))
				for _, prod := range products {
					ids = append(ids, prod.ID)
				}
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestList_PreservesCatalogOrder(t *testing.T) {
	p := New()

	products, _, err := p.List(context.Background(), repository.Filter{Page: 1, PageSize: 100})
	require.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, prod := range products {
		ids = append(ids, prod.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, ids)
}

func TestGetByID(t *testing.T) {
	p := New()
	ctx := context.Background()

	prod, err := p.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "NVIDIA GeForce RTX 4080", prod.Name)
	assert.Equal(t, domain.CategoryGPU, prod.Category)

	_, err = p.GetByID(ctx, "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListFeatured(t *testing.T) {
	p := New()

	featured, err := p.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 3)
	for _, prod := range featured {
		assert.True(t, prod.Featured)
	}
}

func TestCategories(t *testing.T) {
	p := New()

	cats, err := p.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Categories(), cats)
	assert.Len(t, cats, 8)
}

func TestList_CancelledContext(t *testing.T) {
	p := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.List(ctx, repository.Filter{Page: 1, PageSize: 9})
	assert.ErrorIs(t, err, context.Canceled)
}
