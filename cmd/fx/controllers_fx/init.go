package controllers_fx

import (
	"datecourse/internal/api/controllers"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewHealthController),
	fx.Provide(controllers.NewVenueController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewPreferenceController))
