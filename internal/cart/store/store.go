// Package store holds the authoritative in-memory cart state for a session,
// hydrated once from the repository and persisted back after every mutation.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/marves/pcpartstore/internal/cart/domain"
	"github.com/marves/pcpartstore/internal/cart/event"
	"github.com/marves/pcpartstore/internal/cart/repository"
	catalog "github.com/marves/pcpartstore/internal/catalog/domain"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
)

// ErrNotHydrated is returned by mutations attempted before Hydrate has run.
// Rejecting early writes prevents an empty cart from overwriting a real
// persisted snapshot.
var ErrNotHydrated = errors.New("cart store not hydrated")

// Store is the single source of truth for one session's cart. All methods
// are safe for concurrent use.
type Store struct {
	sessionID string
	repo      repository.CartRepository
	events    *event.Producer
	logger    *slog.Logger

	mu       sync.Mutex
	cart     *domain.Cart
	hydrated bool
	subs     map[int]func(domain.Cart)
	nextSub  int
}

// New creates a store for the given session. The store starts empty and not
// ready; call Hydrate before mutating. events may be nil.
func New(sessionID string, repo repository.CartRepository, events *event.Producer, logger *slog.Logger) *Store {
	return &Store{
		sessionID: sessionID,
		repo:      repo,
		events:    events,
		logger:    logger,
		cart:      domain.NewCart(sessionID),
		subs:      make(map[int]func(domain.Cart)),
	}
}

// Hydrate loads the persisted snapshot, if any. An absent snapshot yields an
// empty cart; a malformed or unreadable snapshot is logged and discarded,
// never surfaced. Hydrate is idempotent: repeat calls are no-ops.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}

	cart, err := s.repo.Get(ctx, s.sessionID)
	switch {
	case err == nil:
		if cart.Items == nil {
			cart.Items = []domain.CartItem{}
		}
		cart.SessionID = s.sessionID
		s.cart = cart
	case errors.Is(err, apperrors.ErrNotFound):
		// First visit, start empty.
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		s.logger.WarnContext(ctx, "discarding unreadable cart snapshot",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.hydrated = true
	return nil
}

// Ready reports whether the store has been hydrated.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// AddItem adds one unit of the product, merging with an existing line for
// the same product ID.
func (s *Store) AddItem(ctx context.Context, product catalog.Product) error {
	return s.AddItemWithQuantity(ctx, product, 1)
}

// AddItemWithQuantity adds the given number of units. Quantities below 1
// are clamped to 1: a deliberate add never silently turns into a no-op or a
// removal.
func (s *Store) AddItemWithQuantity(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	return s.mutate(ctx, func(cart *domain.Cart) {
		if i := cart.FindItemIndex(product.ID); i >= 0 {
			cart.Items[i].Quantity += quantity
			return
		}
		cart.Items = append(cart.Items, domain.CartItem{Product: product, Quantity: quantity})
	})
}

// RemoveItem deletes the line for the given product. Removing a product not
// in the cart is a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	return s.mutate(ctx, func(cart *domain.Cart) {
		if i := cart.FindItemIndex(productID); i >= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
	})
}

// UpdateQuantity sets the line's quantity to exactly quantity. A quantity
// below 1 removes the line. Unknown products are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, productID)
	}

	return s.mutate(ctx, func(cart *domain.Cart) {
		if i := cart.FindItemIndex(productID); i >= 0 {
			cart.Items[i].Quantity = quantity
		}
	})
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}

	s.cart.Items = []domain.CartItem{}
	s.cart.UpdatedAt = time.Now().UTC()
	s.persistLocked(ctx)
	subs, snapshot := s.subscribersLocked()
	s.mu.Unlock()

	if err := s.events.PublishCartCleared(ctx, s.sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}

	notify(subs, snapshot)
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.cart.Items)
}

// ItemCount returns the sum of all quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Total returns the undiscounted cart total.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalAmount()
}

// Snapshot returns a copy of the full cart.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a callback invoked with a cart snapshot after every
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(domain.Cart)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn to the cart under the lock, persists the new snapshot,
// publishes the updated state, and notifies subscribers.
func (s *Store) mutate(ctx context.Context, fn func(cart *domain.Cart)) error {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}

	fn(s.cart)
	s.cart.UpdatedAt = time.Now().UTC()
	s.persistLocked(ctx)
	subs, snapshot := s.subscribersLocked()
	s.mu.Unlock()

	if err := s.events.PublishCartUpdated(ctx, &snapshot); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}

	notify(subs, snapshot)
	return nil
}

// persistLocked writes the full snapshot back to the repository. The write
// is best-effort: failures are logged and swallowed.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.cart); err != nil {
		s.logger.WarnContext(ctx, "cart persistence failed",
			slog.String("session_id", s.sessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Store) snapshotLocked() domain.Cart {
	snapshot := *s.cart
	snapshot.Items = copyItems(s.cart.Items)
	return snapshot
}

func (s *Store) subscribersLocked() ([]func(domain.Cart), domain.Cart) {
	subs := make([]func(domain.Cart), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs, s.snapshotLocked()
}

func copyItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

func notify(subs []func(domain.Cart), snapshot domain.Cart) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
