package repository

import (
	"context"
	"time"
)

// StateStore holds short-lived keyed flags such as revoked token IDs.
// Entries disappear once their TTL elapses; a zero TTL never expires.
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
