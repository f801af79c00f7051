package service

import (
	"context"
	"time"

	"aiptrack/backend/internal/repository"
)

const revokedTokenPrefix = "revoked_jti:"

// TokenRevoker tracks logged-out token IDs until they would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type stateStoreRevoker struct {
	store repository.StateStore
	now   func() time.Time
}

func NewTokenRevoker(store repository.StateStore) TokenRevoker {
	return &stateStoreRevoker{store: store, now: time.Now}
}

func (r *stateStoreRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	return r.store.Set(ctx, revokedTokenPrefix+jti, []byte{1}, ttl)
}

func (r *stateStoreRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return r.store.Exists(ctx, revokedTokenPrefix+jti)
}
