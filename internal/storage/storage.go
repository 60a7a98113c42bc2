// Package storage defines the key-value persistence contract used by the
// cart and wishlist engines, plus the storage keys they write under.
package storage

import "context"

// Storage keys, one per engine.
const (
	CartKey     = "ecommerce_cart"
	WishlistKey = "ecommerce_wishlist"
)

// Store is an asynchronous string key-value store. Get reports a missing
// key as ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by stores that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Key returns name prefixed by namespace, or name when namespace is empty.
func Key(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + ":" + name
}
