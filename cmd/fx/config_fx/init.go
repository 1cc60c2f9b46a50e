package config_fx

import (
	"datecourse/internal/config"
	"datecourse/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Provide(config.Load, provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(log.Sync))
	return log, nil
}
