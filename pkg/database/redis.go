package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/stockroom/config"
)

// ConnectRedis builds a client from REDIS_ADDR / REDIS_PASSWORD and pings it.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	return OpenRedis(ctx, config.RedisAddr(), config.RedisPassword())
}

// OpenRedis returns a pinged client, or an error with the client closed.
func OpenRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          0,
		DialTimeout: 2 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("database: redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
