package feedback_fx

import (
	"datecourse/internal/repositories"
	"datecourse/internal/services"
	"datecourse/pkg/logger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideFeedbackRepo, providePreferenceRepo, providePreferenceService,
)

func provideFeedbackRepo(db *gorm.DB) repositories.FeedbackRepositoryInterface {
	return repositories.NewFeedbackRepository(db)
}

func providePreferenceRepo(db *gorm.DB) repositories.PreferenceRepository {
	return repositories.NewPreferenceRepository(db)
}

func providePreferenceService(
	prefRepo repositories.PreferenceRepository,
	feedbackRepo repositories.FeedbackRepositoryInterface,
	venueRepo repositories.VenueRepository,
	log *logger.Logger,
) services.PreferenceServiceInterface {
	return services.NewPreferenceService(prefRepo, feedbackRepo, venueRepo, log)
}
