// Package httpapi implements the catalog provider against an upstream
// products API, protected by a retrying client and a circuit breaker.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	"github.com/marves/pcpartstore/pkg/httpclient"
	"github.com/marves/pcpartstore/pkg/pagination"
)

const serviceName = "products-api"

// Provider fetches products from an upstream HTTP API. The upstream speaks
// the same wire format as this service: listings are wrapped in a pagination
// envelope, featured products and categories are bare arrays.
type Provider struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
}

// New creates an HTTP-backed catalog provider. baseURL should point at the
// upstream API root, e.g. "https://parts.example.com/api".
func New(client *httpclient.CircuitBreakerClient, baseURL string) *Provider {
	return &Provider{
		client:  client,
		baseURL: baseURL,
	}
}

func (p *Provider) List(ctx context.Context, filter repository.Filter) ([]domain.Product, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(filter.Page))
	q.Set("limit", strconv.Itoa(filter.PageSize))
	if filter.Category != nil {
		q.Set("category", string(*filter.Category))
	}
	if filter.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.InStock != nil {
		q.Set("inStock", strconv.FormatBool(*filter.InStock))
	}

	var result pagination.Result[domain.Product]
	if err := p.getJSON(ctx, "/products?"+q.Encode(), &result); err != nil {
		return nil, 0, err
	}
	if result.Data == nil {
		result.Data = []domain.Product{}
	}
	return result.Data, result.Total, nil
}

func (p *Provider) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := p.getJSON(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *Provider) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := p.getJSON(ctx, "/products/featured", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (p *Provider) Categories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := p.getJSON(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// getJSON performs a GET against the upstream and decodes the response body
// into out. Non-2xx responses are mapped to application errors.
func (p *Provider) getJSON(ctx context.Context, path string, out any) error {
	resp, err := p.client.Get(ctx, p.baseURL+path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, serviceName)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
