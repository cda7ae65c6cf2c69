package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	catalog "github.com/marves/pcpartstore/internal/catalog/domain"
)

func item(id string, price float64, qty int) CartItem {
	return CartItem{
		Product:  catalog.Product{ID: id, Name: "Part " + id, Price: price},
		Quantity: qty,
	}
}

func TestNewCart_Empty(t *testing.T) {
	c := NewCart("sess-1")
	assert.Equal(t, "sess-1", c.SessionID)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, 0.0, c.TotalAmount())
}

func TestTotalAmount(t *testing.T) {
	c := NewCart("sess-1")
	c.Items = []CartItem{
		item("1", 499.99, 2),
		item("2", 99.99, 1),
	}
	assert.InDelta(t, 1099.97, c.TotalAmount(), 0.001)
}

func TestTotalAmount_OrderIndependent(t *testing.T) {
	a := NewCart("a")
	a.Items = []CartItem{item("1", 100, 1), item("2", 50, 3)}
	b := NewCart("b")
	b.Items = []CartItem{item("2", 50, 3), item("1", 100, 1)}
	assert.Equal(t, a.TotalAmount(), b.TotalAmount())
}

func TestItemCount_SumsQuantities(t *testing.T) {
	c := NewCart("sess-1")
	c.Items = []CartItem{item("1", 10, 3), item("2", 20, 2)}
	assert.Equal(t, 5, c.ItemCount())
}

func TestFindItemIndex(t *testing.T) {
	c := NewCart("sess-1")
	c.Items = []CartItem{item("1", 10, 1), item("2", 20, 1)}

	assert.Equal(t, 0, c.FindItemIndex("1"))
	assert.Equal(t, 1, c.FindItemIndex("2"))
	assert.Equal(t, -1, c.FindItemIndex("3"))
}
