package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
)

// --- Mock Provider ---

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) List(ctx context.Context, filter repository.Filter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProvider) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProvider) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProvider) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(provider *mockProvider) *Service {
	return New(provider, newTestLogger())
}

func floatPtr(f float64) *float64 { return &f }

func categoryPtr(c domain.Category) *domain.Category { return &c }

func products(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{ID: string(rune('a' + i)), Name: "Part", Price: 10, Category: domain.CategoryCPU}
	}
	return out
}

// --- ListProducts ---

func TestListProducts_Defaults(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	provider.On("List", mock.Anything, repository.Filter{Page: 1, PageSize: 10}).
		Return(products(3), 3, nil)

	result, err := svc.ListProducts(context.Background(), repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.PageSize)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.TotalPages)
	assert.Len(t, result.Data, 3)
	provider.AssertExpectations(t)
}

func TestListProducts_ClampsPagePastEnd(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	// 25 products, 9 per page: 3 pages. Page 4 clamps to page 3.
	provider.On("List", mock.Anything, repository.Filter{Page: 4, PageSize: 9}).
		Return([]domain.Product{}, 25, nil).Once()
	provider.On("List", mock.Anything, repository.Filter{Page: 3, PageSize: 9}).
		Return(products(7), 25, nil).Once()

	result, err := svc.ListProducts(context.Background(), repository.Filter{Page: 4, PageSize: 9})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 25, result.Total)
	assert.Len(t, result.Data, 7)
	provider.AssertExpectations(t)
}

func TestListProducts_EmptyResultStaysOnPageOne(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	provider.On("List", mock.Anything, repository.Filter{Page: 1, PageSize: 9}).
		Return([]domain.Product{}, 0, nil).Once()

	result, err := svc.ListProducts(context.Background(), repository.Filter{Page: 1, PageSize: 9})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, result.TotalPages)
	assert.Empty(t, result.Data)
	provider.AssertExpectations(t)
}

func TestListProducts_InvalidFilter(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	tests := []struct {
		name   string
		filter repository.Filter
	}{
		{"unknown category", repository.Filter{Category: categoryPtr("Keyboards")}},
		{"negative min price", repository.Filter{MinPrice: floatPtr(-1)}},
		{"negative max price", repository.Filter{MaxPrice: floatPtr(-5)}},
		{"min above max", repository.Filter{MinPrice: floatPtr(100), MaxPrice: floatPtr(50)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListProducts(context.Background(), tt.filter)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
	provider.AssertNotCalled(t, "List")
}

func TestListProducts_ProviderError(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	provider.On("List", mock.Anything, mock.Anything).
		Return([]domain.Product{}, 0, errors.New("connection refused"))

	_, err := svc.ListProducts(context.Background(), repository.Filter{})
	require.Error(t, err)
	provider.AssertExpectations(t)
}

// --- GetProduct ---

func TestGetProduct_Success(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	want := &domain.Product{ID: "1", Name: "AMD Ryzen 9 5900X"}
	provider.On("GetByID", mock.Anything, "1").Return(want, nil)

	got, err := svc.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	provider.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	provider.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NotFound("product", "missing"))

	_, err := svc.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	provider.AssertExpectations(t)
}

func TestGetProduct_EmptyID(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	_, err := svc.GetProduct(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	provider.AssertNotCalled(t, "GetByID")
}

// --- ListFeatured / Categories ---

func TestListFeatured(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	provider.On("ListFeatured", mock.Anything).Return(products(3), nil)

	featured, err := svc.ListFeatured(context.Background())
	require.NoError(t, err)
	assert.Len(t, featured, 3)
	provider.AssertExpectations(t)
}

func TestCategories(t *testing.T) {
	provider := new(mockProvider)
	svc := newTestService(provider)

	provider.On("Categories", mock.Anything).Return(domain.Categories(), nil)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Categories(), cats)
	provider.AssertExpectations(t)
}
