package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"datecourse/cmd/fx/config_fx"
	"datecourse/cmd/fx/controllers_fx"
	"datecourse/cmd/fx/db_fx"
	"datecourse/cmd/fx/feedback_fx"
	"datecourse/cmd/fx/itinerary_fx"
	"datecourse/cmd/fx/memcache_fx"
	"datecourse/cmd/fx/venue_fx"
	"datecourse/cmd/fx/weather_fx"
	"datecourse/internal/api/controllers"
	"datecourse/internal/config"
	"datecourse/pkg/logger"
	"datecourse/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		venue_fx.Module,
		feedback_fx.Module,
		weather_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Zap()}
		}),

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("Starting HTTP server", "addr", srv.Addr)
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *logger.Logger,
	healthController *controllers.HealthController,
	venueController *controllers.VenueController,
	itineraryController *controllers.ItineraryController,
	preferenceController *controllers.PreferenceController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogMiddleware(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.Origins))

	RegisterRoutes(r, cfg, healthController, venueController, itineraryController, preferenceController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	healthController *controllers.HealthController,
	venueController *controllers.VenueController,
	itineraryController *controllers.ItineraryController,
	preferenceController *controllers.PreferenceController) {

	r.GET("/health", healthController.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)
	admin := middleware.AdminKeyMiddleware(cfg.AdminKeyHash)

	venueGroup := r.Group("/venues")
	venueGroup.GET("", venueController.ListVenues)
	venueGroup.GET("/:id", venueController.GetVenue)
	venueGroup.POST("", admin, venueController.CreateVenue)
	venueGroup.DELETE("/:id", admin, venueController.DeleteVenue)

	itineraryGroup := r.Group("/itineraries", auth)
	itineraryGroup.POST("", itineraryController.GenerateItinerary)
	itineraryGroup.GET("", itineraryController.ListItineraries)
	itineraryGroup.GET("/:id", itineraryController.GetItinerary)
	itineraryGroup.POST("/:sessionId/feedback", itineraryController.Replan)

	preferenceGroup := r.Group("/preferences", auth)
	preferenceGroup.GET("", preferenceController.GetPreference)
	preferenceGroup.PUT("", preferenceController.UpdatePreference)
	preferenceGroup.GET("/venues", preferenceController.RecommendVenues)
	preferenceGroup.GET("/feedback", preferenceController.ListFeedback)
	preferenceGroup.POST("/feedback", preferenceController.SubmitFeedback)
}
