package repository

import (
	"context"
	"time"

	domainRepo "medical-appointments-api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked_token:"

type tokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) domainRepo.TokenRepository {
	return &tokenRepository{client: client}
}

func (r *tokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedTokenKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *tokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := r.client.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
