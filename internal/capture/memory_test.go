package capture_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadim-su/dnswire/internal/capture"
)

func newExchange(name string) *capture.Exchange {
	return &capture.Exchange{
		Name:      name,
		QueryType: "A",
		Server:    "8.8.8.8:53",
		Query:     []byte{0x41, 0x59, 0x01, 0x00},
		Response:  []byte{0x41, 0x59, 0x81, 0x80},
		RCode:     "NOERROR",
		Duration:  12 * time.Millisecond,
	}
}

func TestMemoryStorePutAssignsID(t *testing.T) {
	store := capture.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	first := newExchange("example.com")
	second := newExchange("example.org")

	require.NoError(t, store.Put(ctx, first))
	require.NoError(t, store.Put(ctx, second))

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero(), "Put must stamp CreatedAt")
}

func TestMemoryStoreGet(t *testing.T) {
	store := capture.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	exchange := newExchange("example.com")
	require.NoError(t, store.Put(ctx, exchange))

	got, err := store.Get(ctx, exchange.ID)
	require.NoError(t, err)
	assert.Equal(t, exchange.Name, got.Name)
	assert.Equal(t, exchange.Query, got.Query)
	assert.Equal(t, exchange.Response, got.Response)

	_, err = store.Get(ctx, "exchange:999")
	assert.ErrorIs(t, err, capture.ErrExchangeNotFound)
}

func TestMemoryStoreListOrder(t *testing.T) {
	store := capture.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	names := []string{"a.example.com", "b.example.com", "c.example.com"}
	for _, name := range names {
		require.NoError(t, store.Put(ctx, newExchange(name)))
	}

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, len(names))
	for i, exchange := range listed {
		assert.Equal(t, names[i], exchange.Name, "insertion order must be preserved")
	}
}

func TestMemoryStoreListByName(t *testing.T) {
	store := capture.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newExchange("example.com")))
	require.NoError(t, store.Put(ctx, newExchange("example.org")))
	require.NoError(t, store.Put(ctx, newExchange("example.com")))

	matches, err := store.ListByName(ctx, "example.com")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	none, err := store.ListByName(ctx, "absent.example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreIsolation(t *testing.T) {
	// Stored exchanges are copies; mutating the caller's value afterwards
	// must not affect what the store returns.
	store := capture.NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	exchange := newExchange("example.com")
	require.NoError(t, store.Put(ctx, exchange))
	exchange.Name = "mutated"

	got, err := store.Get(ctx, exchange.ID)
	require.NoError(t, err)
	assert.Equal(t, "example.com", got.Name)
}

func TestMemoryStoreClosed(t *testing.T) {
	store := capture.NewMemoryStore()
	ctx := context.Background()

	exchange := newExchange("example.com")
	require.NoError(t, store.Put(ctx, exchange))
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Put(ctx, newExchange("x")), capture.ErrStoreClosed)
	_, err := store.Get(ctx, exchange.ID)
	assert.ErrorIs(t, err, capture.ErrStoreClosed)
	_, err = store.List(ctx)
	assert.ErrorIs(t, err, capture.ErrStoreClosed)
	_, err = store.ListByName(ctx, "example.com")
	assert.ErrorIs(t, err, capture.ErrStoreClosed)
}
