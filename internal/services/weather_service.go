package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"datecourse/internal/planner"
	"datecourse/pkg/logger"
	"datecourse/pkg/metrics"
	"datecourse/pkg/utils"
	gobreaker "github.com/sony/gobreaker/v2"
)

// WeatherService never fails: lookups that cannot be served fall back to planner.DefaultWeather.
type WeatherService interface {
	Current(ctx context.Context, lat, lng float64) planner.Weather
}

// WeatherKey is a coordinate rounded to two decimals (about 1 km), so nearby lookups
// share a cache entry.
type WeatherKey struct {
	Lat int
	Lng int
}

func NewWeatherKey(lat, lng float64) WeatherKey {
	return WeatherKey{Lat: int(math.Round(lat * 100)), Lng: int(math.Round(lng * 100))}
}

type weatherCacheEntry struct {
	Weather   planner.Weather
	ExpiresAt time.Time
}

// WeatherCache holds recent lookups per WeatherKey.
type WeatherCache interface {
	Get(k WeatherKey) (planner.Weather, bool)
	Set(k WeatherKey, w planner.Weather, ttl time.Duration)
}

type inMemoryWeatherCache struct {
	mu    sync.RWMutex
	store map[WeatherKey]weatherCacheEntry
	now   func() time.Time
}

func NewInMemoryWeatherCache() WeatherCache {
	return &inMemoryWeatherCache{store: make(map[WeatherKey]weatherCacheEntry), now: time.Now}
}

func (c *inMemoryWeatherCache) Get(k WeatherKey) (planner.Weather, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || c.now().After(it.ExpiresAt) {
		return planner.Weather{}, false
	}
	return it.Weather, true
}

func (c *inMemoryWeatherCache) Set(k WeatherKey, w planner.Weather, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = weatherCacheEntry{Weather: w, ExpiresAt: c.now().Add(ttl)}
}

// OpenMeteoClient reads current conditions from the Open-Meteo forecast API.
type OpenMeteoClient struct {
	HTTP     *http.Client
	BaseURL  string
	Cache    WeatherCache
	CacheTTL time.Duration

	breaker *gobreaker.CircuitBreaker[planner.Weather]
	log     *logger.Logger
}

func NewOpenMeteoClient(baseURL string, timeout, cacheTTL time.Duration, cache WeatherCache, log *logger.Logger) *OpenMeteoClient {
	log = log.With("service", "WeatherService")

	settings := gobreaker.Settings{
		Name:        "open-meteo",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("weather circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &OpenMeteoClient{
		HTTP:     &http.Client{Timeout: timeout},
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Cache:    cache,
		CacheTTL: cacheTTL,
		breaker:  gobreaker.NewCircuitBreaker[planner.Weather](settings),
		log:      log,
	}
}

func (c *OpenMeteoClient) Current(ctx context.Context, lat, lng float64) planner.Weather {
	key := NewWeatherKey(lat, lng)
	if w, ok := c.Cache.Get(key); ok {
		metrics.WeatherLookups.WithLabelValues("cache").Inc()
		return w
	}

	w, err := c.breaker.Execute(func() (planner.Weather, error) {
		return c.fetch(ctx, lat, lng)
	})
	if err != nil {
		metrics.WeatherLookups.WithLabelValues("fallback").Inc()
		c.log.Warn("weather lookup failed, using default", "lat", lat, "lng", lng, "error", err)
		return planner.DefaultWeather
	}

	metrics.WeatherLookups.WithLabelValues("remote").Inc()
	c.Cache.Set(key, w, c.CacheTTL)
	return w
}

type openMeteoResponse struct {
	Current *struct {
		Temperature   float64 `json:"temperature_2m"`
		Precipitation float64 `json:"precipitation"`
		Rain          float64 `json:"rain"`
	} `json:"current"`
}

func (c *OpenMeteoClient) fetch(ctx context.Context, lat, lng float64) (planner.Weather, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lng))
	q.Set("current", "temperature_2m,precipitation,rain")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return planner.Weather{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return planner.Weather{}, fmt.Errorf("%w: %v", utils.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return planner.Weather{}, fmt.Errorf("%w: status %d", utils.ErrWeatherUnavailable, resp.StatusCode)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return planner.Weather{}, fmt.Errorf("%w: decode: %v", utils.ErrWeatherUnavailable, err)
	}
	if body.Current == nil {
		return planner.Weather{}, fmt.Errorf("%w: no current block", utils.ErrWeatherUnavailable)
	}

	return planner.Weather{
		Temperature: body.Current.Temperature,
		IsRaining:   body.Current.Precipitation > 0 || body.Current.Rain > 0,
	}, nil
}
