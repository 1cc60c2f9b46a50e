package itinerary_fx

import (
	"datecourse/internal/config"
	"datecourse/internal/repositories"
	"datecourse/internal/services"
	"datecourse/pkg/logger"
	mem "datecourse/pkg/memcache"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(provideItineraryRepo, provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(
	cfg *config.Config,
	venues services.VenueServiceInterface,
	preferences services.PreferenceServiceInterface,
	weather services.WeatherService,
	repo repositories.ItineraryRepository,
	sessions mem.SessionStore,
	log *logger.Logger,
) services.ItineraryServiceInterface {
	settings := services.ItinerarySettings{
		Lunch:                cfg.Lunch,
		Dinner:               cfg.Dinner,
		DefaultDurationHours: cfg.DefaultDurationHours,
		SessionTTL:           cfg.SessionTTL,
	}
	return services.NewItineraryService(venues, preferences, weather, repo, sessions, settings, log)
}
