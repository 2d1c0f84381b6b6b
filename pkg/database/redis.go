package database

import (
	"context"
	"time"

	"luminacine/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient returns nil when no address is configured or the server
// does not answer; the catalog cache is skipped in that case.
func NewRedisClient(ctx context.Context, config utils.RedisConfig, log *zap.Logger) *redis.Client {
	if config.Addr == "" {
		log.Info("Redis not configured, catalog cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, catalog cache disabled",
			zap.String("addr", config.Addr),
			zap.Error(err))
		client.Close()
		return nil
	}

	return client
}
