package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gtcli/internal/store"
)

func cacheFixture(t *testing.T) (*ClientCache, *store.Store) {
	t.Helper()

	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, st.AddAccount(store.Account{
		Email: "a@x.com",
		OAuth2: store.OAuth2{
			ClientID:     "c",
			ClientSecret: "s",
			RefreshToken: "r",
		},
	}))

	return NewClientCache(st, nil, nil), st
}

func TestClientCacheLazyConstruction(t *testing.T) {
	cache, _ := cacheFixture(t)
	ctx := context.Background()

	assert.Equal(t, 0, cache.Len())

	client, err := cache.ForAccount(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", client.Email())
	assert.Equal(t, 1, cache.Len())

	// Second lookup returns the same cached client.
	again, err := cache.ForAccount(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Same(t, client, again)
	assert.Equal(t, 1, cache.Len())
}

func TestClientCacheUnknownAccount(t *testing.T) {
	cache, _ := cacheFixture(t)

	_, err := cache.ForAccount(context.Background(), "missing@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account not found: missing@x.com")
}

func TestClientCacheInvalidate(t *testing.T) {
	cache, _ := cacheFixture(t)
	ctx := context.Background()

	first, err := cache.ForAccount(ctx, "a@x.com")
	require.NoError(t, err)

	cache.Invalidate("a@x.com")
	assert.Equal(t, 0, cache.Len())

	second, err := cache.ForAccount(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestClientCacheClear(t *testing.T) {
	cache, st := cacheFixture(t)
	ctx := context.Background()

	require.NoError(t, st.AddAccount(store.Account{
		Email:  "b@x.com",
		OAuth2: store.OAuth2{ClientID: "c", ClientSecret: "s", RefreshToken: "r"},
	}))

	_, err := cache.ForAccount(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = cache.ForAccount(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}
