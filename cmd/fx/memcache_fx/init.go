package memcache_fx

import (
	"context"

	"datecourse/internal/config"
	"datecourse/internal/infra"
	"datecourse/pkg/logger"
	mem "datecourse/pkg/memcache"
	"go.uber.org/fx"
)

const sessionKeyPrefix = "datecourse:session:"

var Module = fx.Provide(provideSessionStore)

// provideSessionStore uses Redis when REDIS_URL is set and a process-local map otherwise.
func provideSessionStore(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (mem.SessionStore, error) {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set, planning sessions are kept in memory")
		return mem.NewMemoryStore(), nil
	}

	client, err := infra.NewRedisClient(context.Background(), cfg.RedisURL, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	return mem.NewRedisStore(client, sessionKeyPrefix), nil
}
