package infra

import (
	"context"
	"fmt"
	"time"

	"datecourse/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, url string, log *logger.Logger) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info("Redis connected", "addr", opts.Addr)
	return client, nil
}
