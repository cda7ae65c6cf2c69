package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marves/pcpartstore/internal/cart/domain"
	catalog "github.com/marves/pcpartstore/internal/catalog/domain"
	apperrors "github.com/marves/pcpartstore/pkg/errors"
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, 24*time.Hour)
	return repo, mr
}

func sampleCart() *domain.Cart {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Cart{
		SessionID: "sess-001",
		Items: []domain.CartItem{
			{
				Product: catalog.Product{
					ID:       "1",
					Name:     "AMD Ryzen 9 5900X",
					Price:    499.99,
					Category: catalog.CategoryCPU,
					Stock:    10,
				},
				Quantity: 2,
			},
		},
		UpdatedAt: now,
	}
}

func TestGet_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set("cart:"+cart.SessionID, string(data)))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart.SessionID, got.SessionID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "1", got.Items[0].Product.ID)
	assert.Equal(t, 499.99, got.Items[0].Product.Price)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Get(context.Background(), "nonexistent-session")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGet_MalformedSnapshot(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("cart:sess-bad", "{{not-valid-json"))

	got, err := repo.Get(context.Background(), "sess-bad")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart")
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSave_RoundTrip(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Equal(t, cart.Items, got.Items)

	// The snapshot carries a TTL.
	mr.FastForward(25 * time.Hour)
	_, err = repo.Get(context.Background(), cart.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSave_OverwritesSnapshot(t *testing.T) {
	repo, _ := setupTestRedis(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))

	cart.Items = []domain.CartItem{}
	require.NoError(t, repo.Save(context.Background(), cart))

	got, err := repo.Get(context.Background(), cart.SessionID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestDelete(t *testing.T) {
	repo, _ := setupTestRedis(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), cart))
	require.NoError(t, repo.Delete(context.Background(), cart.SessionID))

	_, err := repo.Get(context.Background(), cart.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting a missing cart is not an error.
	assert.NoError(t, repo.Delete(context.Background(), "nonexistent-session"))
}
