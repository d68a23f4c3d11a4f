package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"trip-track/internal/general/config"
	"trip-track/internal/general/logger"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient connects to Redis, verifies connectivity, and returns the client.
func NewClient(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*goredis.Client, error) {
	start := time.Now()

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         net.JoinHostPort(cfg.Redis.Host, strconv.Itoa(cfg.Redis.Port)),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info(ctx, "redis_connected", "Connected to Redis", map[string]any{
		"host":        cfg.Redis.Host,
		"port":        cfg.Redis.Port,
		"db":          cfg.Redis.DB,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return rdb, nil
}
