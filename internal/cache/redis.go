// Package cache manages the Redis client used by the rate limiter. Aggregate
// computations are deliberately not cached; every dashboard load recomputes
// from the database.
package cache

import (
	"context"
	"log/slog"
	"time"

	"skilltrack/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Client is the shared Redis client, nil when Redis is unavailable.
var Client *redis.Client

// InitRedis connects to Redis at addr. A failed connection is not fatal; the
// rate limiter fails open without it.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis connection failed, continuing without rate limiting",
			slog.String("addr", addr),
			slog.String("error", err.Error()),
		)
		Client = nil
	} else {
		middleware.Logger.Info("Redis connected", slog.String("addr", addr))
	}
}

// GetClient returns the shared Redis client, which may be nil.
func GetClient() *redis.Client {
	return Client
}
