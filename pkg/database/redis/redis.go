package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"myBizHub/pkg/config"
)

// NewRedisClient connects to the usage store and fails fast when it is
// unreachable.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg.Redis))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", net.JoinHostPort(cfg.Redis.RedisHost, cfg.Redis.RedisPort), err)
	}

	return client, nil
}

// Options maps RedisConfig onto go-redis client options.
func Options(rc config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         net.JoinHostPort(rc.RedisHost, rc.RedisPort),
		Username:     rc.RedisUsername,
		Password:     rc.RedisPassword,
		DB:           rc.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
	}
}

// CloseRedisClient closes the Redis connection
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
