// Package redis opens the shared Redis connection used by the quote cache
// and the session store.
package redis

import (
	"context"
	"log/slog"
	"net"
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis using REDIS_HOST, REDIS_PORT and
// REDIS_PASSWORD. The server runs without Redis when this fails: quote
// caching is bypassed and sessions fall back to SQL.
func NewRedisClient() (*redis.Client, error) {
	addr := net.JoinHostPort(os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"))

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("redis connected", "address", addr)
	return rdb, nil
}
