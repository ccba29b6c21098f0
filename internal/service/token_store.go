package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenRevoker records logged-out token ids until their expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisTokenRevoker keeps revoked token ids as expiring Redis keys.
type RedisTokenRevoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{client: client, now: time.Now}
}

func (r *RedisTokenRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err()
}

func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, revokedKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NoopTokenRevoker is used when no Redis is configured; logout then only
// discards the token client-side.
type NoopTokenRevoker struct{}

func (NoopTokenRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopTokenRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
