package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories_ClosedSetOfEight(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 8)

	seen := make(map[Category]struct{}, len(cats))
	for _, c := range cats {
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 8, "categories must be distinct")
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("CPU"))
	assert.True(t, IsValidCategory("Power Supply"))
	assert.False(t, IsValidCategory("cpu"))
	assert.False(t, IsValidCategory("Keyboard"))
	assert.False(t, IsValidCategory(""))
}

func TestProduct_InStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 3}).InStock())
	assert.False(t, (&Product{Stock: 0}).InStock())
}

func TestProduct_DiscountedPrice(t *testing.T) {
	p := &Product{Price: 200, DiscountPercentage: 25}
	assert.InDelta(t, 150, p.DiscountedPrice(), 1e-9)

	noDiscount := &Product{Price: 99.99}
	assert.Equal(t, 99.99, noDiscount.DiscountedPrice())
}
