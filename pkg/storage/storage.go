// Package storage provides the durable local key-value slot the storefront
// persists its session state into. Only the cart manager writes the cart key
// and only the auth session writes the token key.
package storage

import (
	"context"
	"errors"
)

const (
	// CartKey holds the serialized cart line items.
	CartKey = "cart_items"
	// AuthTokenKey holds the bearer token for the active session.
	AuthTokenKey = "auth_token"
)

// ErrNotFound reports an absent key. Absence is a normal state: an empty cart
// is represented by the cart key not existing at all.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable string-keyed blob store surviving process restarts.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
