// Package redis implements storage.Store on Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
)

// Store keeps each value in a Redis string with no expiry.
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed store.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get retrieves key. A missing key returns ok == false.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	ctx, end := database.TraceQuery(ctx, "redis", "Get", "GET "+key)
	defer func() { end(err) }()

	value, err = s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites key.
func (s *Store) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := database.TraceQuery(ctx, "redis", "Set", "SET "+key)
	defer func() { end(err) }()

	if err = s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
