package repository

import (
	"context"
	"time"
)

// TokenRepository tracks revoked token ids until they would expire anyway.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
