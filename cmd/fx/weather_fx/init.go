package weather_fx

import (
	"datecourse/internal/config"
	"datecourse/internal/services"
	"datecourse/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Provide(provideWeatherService)

func provideWeatherService(cfg *config.Config, log *logger.Logger) services.WeatherService {
	return services.NewOpenMeteoClient(
		cfg.WeatherBaseURL,
		cfg.WeatherTimeout,
		cfg.WeatherCacheTTL,
		services.NewInMemoryWeatherCache(),
		log,
	)
}
