package repository

import (
	"context"

	"github.com/marves/pcpartstore/internal/cart/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing snapshot for the
	// session. Writes are full-snapshot overwrites, never deltas.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart by session ID.
	Delete(ctx context.Context, sessionID string) error
}
