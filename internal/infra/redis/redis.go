package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/sifan077/GifBoard/config"
)

const (
	clientName        = "gifboard"
	dialTimeout       = 2 * time.Second
	defaultCmdTimeout = 250 * time.Millisecond
	cacheMaxRetries   = 1
)

// Options translates cfg into client options for the gif list cache. Commands
// time out quickly and retry once: a slow cache is treated as a miss by the
// callers rather than holding up the request.
func Options(cfg config.RedisConfig) *redis.Options {
	port := cfg.Port
	if port == 0 {
		port = 6379
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCmdTimeout
	}

	return &redis.Options{
		Addr:         net.JoinHostPort(lo.CoalesceOrEmpty(cfg.Host, "localhost"), strconv.Itoa(port)),
		ClientName:   clientName,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolTimeout:  2 * timeout,
		MaxRetries:   cacheMaxRetries,
	}
}

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(Options(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", rdb.Options().Addr, err)
	}
	return rdb, nil
}
