package venue_fx

import (
	"datecourse/internal/repositories"
	"datecourse/internal/services"
	"datecourse/pkg/logger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideVenueRepo, provideVenueService)

func provideVenueRepo(db *gorm.DB) repositories.VenueRepository {
	return repositories.NewVenueRepository(db)
}

func provideVenueService(venueRepo repositories.VenueRepository, log *logger.Logger) services.VenueServiceInterface {
	return services.NewVenueService(venueRepo, log)
}
