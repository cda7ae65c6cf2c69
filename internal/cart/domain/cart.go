// Package domain defines the cart data model.
package domain

import (
	"time"

	catalog "github.com/marves/pcpartstore/internal/catalog/domain"
)

// Cart represents a shopping cart scoped to one storefront session.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem pairs a product snapshot with a quantity. Quantity is always
// positive: an item whose quantity drops below 1 is removed from the cart,
// never stored at zero.
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// NewCart returns an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []CartItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

// TotalAmount calculates the sum of listed price times quantity over all
// items. Discounts are presentation-level and ignored here.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of all quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the item holding the given product, or
// -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
