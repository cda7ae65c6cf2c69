// Package postgres implements the catalog provider on PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	"github.com/marves/pcpartstore/pkg/database"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
)

// Provider implements repository.Provider using PostgreSQL.
type Provider struct {
	pool database.DBTX
}

// New creates a PostgreSQL-backed catalog provider.
func New(pool database.DBTX) *Provider {
	return &Provider{pool: pool}
}

const listColumns = `id, name, price, description, category, stock, image, specifications, brand, model, discount_percentage, rating, images, featured`

// List returns the requested page of products matching the filter. Catalog
// order is the numeric product id, matching the seed ordering.
func (p *Provider) List(ctx context.Context, filter repository.Filter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, string(*filter.Category))
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	if filter.InStock != nil {
		if *filter.InStock {
			conditions = append(conditions, "stock > 0")
		} else {
			conditions = append(conditions, "stock = 0")
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// count(*) OVER() returns the total matching count in the same query.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY id::int
		LIMIT $%d OFFSET $%d`,
		listColumns, whereClause, argIndex, argIndex+1,
	)

	limit := filter.PageSize
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	args = append(args, limit, offset)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		prod, specsJSON, err := scanRow(rows, &totalCount)
		if err != nil {
			return nil, 0, err
		}
		if err := unmarshalSpecs(prod, specsJSON); err != nil {
			return nil, 0, err
		}
		products = append(products, *prod)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	// The window count is zero-valued when no rows matched; fall back to a
	// plain count so past-the-end pages still report the real total.
	if len(products) == 0 {
		countQuery := fmt.Sprintf("SELECT count(*) FROM products %s", whereClause)
		if err := p.pool.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("count products: %w", err)
		}
	}

	return products, totalCount, nil
}

// GetByID retrieves a single product, including its reviews.
func (p *Provider) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, reviews
		FROM products
		WHERE id = $1`, listColumns)

	var (
		prod        domain.Product
		specsJSON   []byte
		reviewsJSON []byte
	)

	err := p.pool.QueryRow(ctx, query, id).Scan(
		&prod.ID,
		&prod.Name,
		&prod.Price,
		&prod.Description,
		&prod.Category,
		&prod.Stock,
		&prod.Image,
		&specsJSON,
		&prod.Brand,
		&prod.Model,
		&prod.DiscountPercentage,
		&prod.Rating,
		&prod.Images,
		&prod.Featured,
		&reviewsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if err := unmarshalSpecs(&prod, specsJSON); err != nil {
		return nil, err
	}
	if reviewsJSON != nil {
		if err := json.Unmarshal(reviewsJSON, &prod.Reviews); err != nil {
			return nil, fmt.Errorf("unmarshal reviews: %w", err)
		}
	}

	return &prod, nil
}

// ListFeatured returns the featured products in catalog order.
func (p *Provider) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE featured
		ORDER BY id::int`, listColumns)

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()

	featured := []domain.Product{}
	for rows.Next() {
		prod, specsJSON, err := scanRow(rows, nil)
		if err != nil {
			return nil, err
		}
		if err := unmarshalSpecs(prod, specsJSON); err != nil {
			return nil, err
		}
		featured = append(featured, *prod)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate featured rows: %w", err)
	}

	return featured, nil
}

// Categories returns the catalog's category labels in canonical order,
// restricted to categories that have at least one product.
func (p *Provider) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := p.pool.Query(ctx, `SELECT DISTINCT category FROM products`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	present := make(map[domain.Category]bool)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		present[c] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	ordered := make([]domain.Category, 0, len(present))
	for _, c := range domain.Categories() {
		if present[c] {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// scanRow scans one listing row. totalCount may be nil for queries without
// the window count column.
func scanRow(rows pgx.Rows, totalCount *int) (*domain.Product, []byte, error) {
	var (
		prod      domain.Product
		specsJSON []byte
	)

	dest := []any{
		&prod.ID,
		&prod.Name,
		&prod.Price,
		&prod.Description,
		&prod.Category,
		&prod.Stock,
		&prod.Image,
		&specsJSON,
		&prod.Brand,
		&prod.Model,
		&prod.DiscountPercentage,
		&prod.Rating,
		&prod.Images,
		&prod.Featured,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, nil, fmt.Errorf("scan product row: %w", err)
	}
	return &prod, specsJSON, nil
}

func unmarshalSpecs(prod *domain.Product, specsJSON []byte) error {
	if specsJSON == nil {
		return nil
	}
	if err := json.Unmarshal(specsJSON, &prod.Specifications); err != nil {
		return fmt.Errorf("unmarshal specifications: %w", err)
	}
	return nil
}
