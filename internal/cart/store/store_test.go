package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marves/pcpartstore/internal/cart/domain"
	cartredis "github.com/marves/pcpartstore/internal/cart/repository/redis"
	catalog "github.com/marves/pcpartstore/internal/catalog/domain"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setup(t *testing.T) (*Store, *cartredis.CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := cartredis.NewCartRepository(client, 24*time.Hour)
	return New("sess-1", repo, nil, testLogger()), repo, mr
}

func product(id string, price float64) catalog.Product {
	return catalog.Product{ID: id, Name: "Part " + id, Price: price, Category: catalog.CategoryCPU, Stock: 10}
}

func TestMutationsRejectedBeforeHydration(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	assert.False(t, s.Ready())
	assert.ErrorIs(t, s.AddItem(ctx, product("1", 100)), ErrNotHydrated)
	assert.ErrorIs(t, s.RemoveItem(ctx, "1"), ErrNotHydrated)
	assert.ErrorIs(t, s.UpdateQuantity(ctx, "1", 2), ErrNotHydrated)
	assert.ErrorIs(t, s.Clear(ctx), ErrNotHydrated)
}

func TestHydrate_EmptyWhenNoSnapshot(t *testing.T) {
	s, _, _ := setup(t)

	require.NoError(t, s.Hydrate(context.Background()))
	assert.True(t, s.Ready())
	assert.Empty(t, s.Items())
}

func TestHydrate_Idempotent(t *testing.T) {
	s, repo, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.Hydrate(ctx))
	require.NoError(t, s.AddItem(ctx, product("1", 100)))

	// A second store hydrated from the same snapshot sees identical state,
	// and hydrating twice changes nothing.
	s2 := New("sess-1", repo, nil, testLogger())
	require.NoError(t, s2.Hydrate(ctx))
	require.NoError(t, s2.Hydrate(ctx))
	assert.Equal(t, s.Items(), s2.Items())
	assert.Equal(t, s.Total(), s2.Total())
}

func TestHydrate_MalformedSnapshotStartsEmpty(t *testing.T) {
	s, _, mr := setup(t)

	require.NoError(t, mr.Set("cart:sess-1", "{{corrupt"))

	require.NoError(t, s.Hydrate(context.Background()))
	assert.True(t, s.Ready())
	assert.Empty(t, s.Items())

	// The store is usable after discarding the snapshot.
	require.NoError(t, s.AddItem(context.Background(), product("1", 50)))
	assert.Equal(t, 1, s.ItemCount())
}

func TestAddItem_MergesByProductID(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	p := product("1", 100)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AddItem(ctx, p))
	}

	items := s.Items()
	require.Len(t, items, 1, "never two lines for the same product")
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, s.ItemCount())
}

func TestAddItemWithQuantity_ClampsToOne(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	require.NoError(t, s.AddItemWithQuantity(ctx, product("1", 100), 0))
	require.NoError(t, s.AddItemWithQuantity(ctx, product("2", 50), -3))
	require.NoError(t, s.AddItemWithQuantity(ctx, product("3", 10), 4))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 4, items[2].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	require.NoError(t, s.AddItemWithQuantity(ctx, product("1", 100), 3))

	// Absolute, not incremental.
	require.NoError(t, s.UpdateQuantity(ctx, "1", 2))
	assert.Equal(t, 2, s.ItemCount())

	// Unknown product is a no-op.
	require.NoError(t, s.UpdateQuantity(ctx, "missing", 7))
	assert.Equal(t, 2, s.ItemCount())
}

func TestUpdateQuantity_BelowOneRemoves(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	for _, q := range []int{0, -1, -100} {
		require.NoError(t, s.AddItem(ctx, product("1", 100)))
		require.NoError(t, s.UpdateQuantity(ctx, "1", q))
		assert.Empty(t, s.Items(), "quantity %d must remove the line", q)
	}
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	require.NoError(t, s.RemoveItem(ctx, "not-there"))
	assert.Empty(t, s.Items())
}

func TestEndToEndScenario(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	p := product("1", 100)
	require.NoError(t, s.AddItem(ctx, p))
	require.NoError(t, s.AddItem(ctx, p))
	assert.Equal(t, 2, s.ItemCount())
	assert.Equal(t, 200.0, s.Total())

	require.NoError(t, s.UpdateQuantity(ctx, "1", 1))
	assert.Equal(t, 1, s.ItemCount())
	assert.Equal(t, 100.0, s.Total())

	require.NoError(t, s.RemoveItem(ctx, "1"))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0.0, s.Total())
}

func TestMutationsPersistAcrossStores(t *testing.T) {
	s, repo, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	require.NoError(t, s.AddItemWithQuantity(ctx, product("1", 499.99), 2))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.AddItem(ctx, product("2", 99.99)))

	s2 := New("sess-1", repo, nil, testLogger())
	require.NoError(t, s2.Hydrate(ctx))
	require.Len(t, s2.Items(), 1)
	assert.Equal(t, "2", s2.Items()[0].Product.ID)
}

// failingRepo simulates a broken persistence backend.
type failingRepo struct{}

func (failingRepo) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return nil, apperrors.NotFound("cart", sessionID)
}

func (failingRepo) Save(ctx context.Context, cart *domain.Cart) error {
	return errors.New("disk full")
}

func (failingRepo) Delete(ctx context.Context, sessionID string) error {
	return errors.New("disk full")
}

func TestPersistenceIsBestEffort(t *testing.T) {
	s := New("sess-1", failingRepo{}, nil, testLogger())
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	// Failed writes never surface; in-memory state still advances.
	require.NoError(t, s.AddItem(ctx, product("1", 100)))
	assert.Equal(t, 1, s.ItemCount())
}

func TestSubscribe(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	var mu sync.Mutex
	var counts []int
	unsubscribe := s.Subscribe(func(c domain.Cart) {
		mu.Lock()
		counts = append(counts, c.ItemCount())
		mu.Unlock()
	})

	require.NoError(t, s.AddItem(ctx, product("1", 100)))
	require.NoError(t, s.AddItem(ctx, product("1", 100)))
	require.NoError(t, s.RemoveItem(ctx, "1"))

	mu.Lock()
	assert.Equal(t, []int{1, 2, 0}, counts)
	mu.Unlock()

	unsubscribe()
	require.NoError(t, s.AddItem(ctx, product("1", 100)))
	mu.Lock()
	assert.Len(t, counts, 3)
	mu.Unlock()
}

func TestManager_ForSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := cartredis.NewCartRepository(client, 24*time.Hour)
	m := NewManager(repo, nil, testLogger())
	ctx := context.Background()

	a, err := m.ForSession(ctx, "sess-a")
	require.NoError(t, err)
	require.NoError(t, a.AddItem(ctx, product("1", 100)))

	// Same session returns the same store; other sessions are isolated.
	a2, err := m.ForSession(ctx, "sess-a")
	require.NoError(t, err)
	assert.Same(t, a, a2)

	b, err := m.ForSession(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, b.Items())

	// Eviction drops memory but not the snapshot.
	m.Evict("sess-a")
	a3, err := m.ForSession(ctx, "sess-a")
	require.NoError(t, err)
	assert.NotSame(t, a, a3)
	assert.Equal(t, 1, a3.ItemCount())
}
