package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"datecourse/internal/planner"
	"datecourse/pkg/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	AppEnv  string
	Origins []string

	PostgresURL string
	RedisURL    string

	JWTSecret    []byte
	AdminKeyHash string

	WeatherBaseURL  string
	WeatherTimeout  time.Duration
	WeatherCacheTTL time.Duration
	SessionTTL      time.Duration

	Lunch                planner.MealWindow
	Dinner               planner.MealWindow
	DefaultDurationHours float64
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		Origins:        splitList(os.Getenv("CORS_ORIGINS")),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AdminKeyHash:   os.Getenv("ADMIN_KEY_HASH"),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com"),
	}

	var err error
	if cfg.WeatherTimeout, err = getDuration("WEATHER_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.WeatherCacheTTL, err = getDuration("WEATHER_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Lunch, err = getWindow("LUNCH_WINDOW", planner.DefaultLunchWindow); err != nil {
		return nil, err
	}
	if cfg.Dinner, err = getWindow("DINNER_WINDOW", planner.DefaultDinnerWindow); err != nil {
		return nil, err
	}
	if cfg.DefaultDurationHours, err = getFloat("DEFAULT_DURATION_HOURS", 6); err != nil {
		return nil, err
	}
	if cfg.DefaultDurationHours <= 0 {
		return nil, fmt.Errorf("DEFAULT_DURATION_HOURS must be positive")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getWindow(key string, def planner.MealWindow) (planner.MealWindow, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	start, end, err := utils.ParseWindow(v)
	if err != nil {
		return planner.MealWindow{}, fmt.Errorf("%s: %w", key, err)
	}
	return planner.MealWindow{Start: start, End: end}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
