// Package storage provides the key/value backends that hold a persisted
// session.
package storage

import "context"

const (
	// KeyAuthToken is the key under which the bearer token is stored.
	KeyAuthToken = "auth_token"
	// KeyCurrentUser is the key under which the JSON encoded user is stored.
	KeyCurrentUser = "current_user"
)

// Store is a minimal key/value store.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value string) error
	// Remove deletes the given keys. Removing an absent key is not an error.
	Remove(ctx context.Context, keys ...string) error
}

// Backends pairs the durable store, which survives restarts, with the
// ephemeral store, which lasts only as long as the current browsing session.
type Backends struct {
	Durable   Store
	Ephemeral Store
}

// For returns the store a session should be written to and the store that
// must be cleared so that at most one of them ever holds a session.
func (b Backends) For(remember bool) (target Store, other Store) {
	if remember {
		return b.Durable, b.Ephemeral
	}
	return b.Ephemeral, b.Durable
}

// All returns both stores, durable first.
func (b Backends) All() []Store {
	return []Store{b.Durable, b.Ephemeral}
}
