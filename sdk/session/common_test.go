package session

import (
	"context"
	"sync"
	"testing"

	"github.com/gamerecs/gamerecs/sdk/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeNavigator struct {
	redirects []View
	reloads   int
	browsed   []string
	mu        sync.Mutex
}

func (f *fakeNavigator) Redirect(_ context.Context, view View) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.redirects = append(f.redirects, view)
}

func (f *fakeNavigator) Reload(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
}

func (f *fakeNavigator) Browse(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.browsed = append(f.browsed, url)
	return nil
}

func newTestBackends() storage.Backends {
	return storage.Backends{
		Durable:   storage.NewMemoryStore(),
		Ephemeral: storage.NewMemoryStore(),
	}
}

func requireStored(
	t *testing.T,
	store storage.Store,
	key string,
	expected string,
) {
	value, ok, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "expected %q to be stored", key)
	require.Equal(t, expected, value)
}

func requireEmpty(t *testing.T, store storage.Store) {
	for _, key := range []string{storage.KeyAuthToken, storage.KeyCurrentUser} {
		_, ok, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		require.False(t, ok, "expected %q not to be stored", key)
	}
}

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("not-a-real-secret"))
	require.NoError(t, err)
	return token
}

// recorder collects the values an Observable delivers.
type recorder[T any] struct {
	values []T
	mu     sync.Mutex
}

func (r *recorder[T]) record(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}
