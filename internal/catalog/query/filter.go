package query

import (
	"net/url"
	"strconv"

	"github.com/marves/pcpartstore/internal/catalog/domain"
	"github.com/marves/pcpartstore/internal/catalog/repository"
)

// Query string keys. Defaults are omitted when encoding: an absent filter
// has no key, and page 1 has no page key, so equal states always produce
// byte-identical query strings.
const (
	keyCategory = "category"
	keyMinPrice = "minPrice"
	keyMaxPrice = "maxPrice"
	keyInStock  = "inStock"
	keyPage     = "page"
)

// FilterState is the user-selected product query: optional filters plus the
// current page. FilterState is a value type and is comparable with ==.
type FilterState struct {
	Category Opt[domain.Category]
	MinPrice Opt[float64]
	MaxPrice Opt[float64]
	InStock  Opt[bool]
	Page     int
}

// DefaultFilterState returns the unfiltered first page.
func DefaultFilterState() FilterState {
	return FilterState{Page: 1}
}

// Patch describes a partial filter change. A nil field leaves the current
// value unchanged; a non-nil field overwrites it, where None clears the
// filter and Some sets it. Page is deliberately absent: page changes go
// through SetPage, and every filter change resets the page.
type Patch struct {
	Category *Opt[domain.Category]
	MinPrice *Opt[float64]
	MaxPrice *Opt[float64]
	InStock  *Opt[bool]
}

// apply returns f with the patch's set fields overwritten.
func (p Patch) apply(f FilterState) FilterState {
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.MinPrice != nil {
		f.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		f.MaxPrice = *p.MaxPrice
	}
	if p.InStock != nil {
		f.InStock = *p.InStock
	}
	return f
}

// Encode renders the canonical query string representation. Absent filters
// and page 1 are omitted.
func (f FilterState) Encode() url.Values {
	q := url.Values{}
	if c, ok := f.Category.Get(); ok {
		q.Set(keyCategory, string(c))
	}
	if v, ok := f.MinPrice.Get(); ok {
		q.Set(keyMinPrice, formatPrice(v))
	}
	if v, ok := f.MaxPrice.Get(); ok {
		q.Set(keyMaxPrice, formatPrice(v))
	}
	if v, ok := f.InStock.Get(); ok {
		q.Set(keyInStock, strconv.FormatBool(v))
	}
	if f.Page > 1 {
		q.Set(keyPage, strconv.Itoa(f.Page))
	}
	return q
}

// Decode derives a FilterState from a query string. Unknown categories,
// unparseable numbers, and out-of-range pages degrade to absent/default
// rather than erroring, so shared links with junk parameters still resolve.
func Decode(q url.Values) FilterState {
	f := DefaultFilterState()

	if c := q.Get(keyCategory); domain.IsValidCategory(c) {
		f.Category = Some(domain.Category(c))
	}
	if v, err := strconv.ParseFloat(q.Get(keyMinPrice), 64); err == nil && v >= 0 {
		f.MinPrice = Some(v)
	}
	if v, err := strconv.ParseFloat(q.Get(keyMaxPrice), 64); err == nil && v >= 0 {
		f.MaxPrice = Some(v)
	}
	switch q.Get(keyInStock) {
	case "true":
		f.InStock = Some(true)
	case "false":
		f.InStock = Some(false)
	}
	if v, err := strconv.Atoi(q.Get(keyPage)); err == nil && v >= 1 {
		f.Page = v
	}

	return f
}

// CacheKey returns a stable identifier for the full request tuple, suitable
// for deduplicating or superseding in-flight fetches downstream.
func (f FilterState) CacheKey(pageSize int) string {
	q := f.Encode()
	q.Set(keyPage, strconv.Itoa(f.Page))
	q.Set("limit", strconv.Itoa(pageSize))
	return q.Encode()
}

// repositoryFilter converts the state into a provider filter.
func (f FilterState) repositoryFilter(pageSize int) repository.Filter {
	return repository.Filter{
		Category: f.Category.Ptr(),
		MinPrice: f.MinPrice.Ptr(),
		MaxPrice: f.MaxPrice.Ptr(),
		InStock:  f.InStock.Ptr(),
		Page:     f.Page,
		PageSize: pageSize,
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
