package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient connects to Redis and verifies the connection.
// It returns nil without error when Redis is disabled.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// NewIdempotencyStore returns a Redis store when client is set and an
// in-memory store otherwise
func NewIdempotencyStore(client *redis.Client, logger *zap.Logger) shared.IdempotencyStore {
	if client != nil {
		logger.Info("Using Redis idempotency store")
		return NewRedisIdempotencyStore(client, "")
	}
	logger.Warn("Redis disabled, idempotency keys are kept in process memory")
	return NewInMemoryIdempotencyStore()
}
