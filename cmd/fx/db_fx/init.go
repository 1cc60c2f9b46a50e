package db_fx

import (
	"datecourse/internal/api/controllers"
	"datecourse/internal/config"
	"datecourse/internal/infra"
	"datecourse/pkg/logger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideDB, providePinger)

func provideDB(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db, log)
	}))
	return db, nil
}

func providePinger(db *gorm.DB) (controllers.Pinger, error) {
	return db.DB()
}
