package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"datecourse/internal/planner"
	"datecourse/pkg/logger"
)

func newWeatherServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/v1/forecast" || r.URL.Query().Get("current") == "" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestWeatherClient(baseURL string) *OpenMeteoClient {
	return NewOpenMeteoClient(baseURL, time.Second, time.Minute, NewInMemoryWeatherCache(), logger.NewNop())
}

func TestOpenMeteoClient_Current(t *testing.T) {
	tests := []struct {
		name string
		body string
		want planner.Weather
	}{
		{"dry", `{"current":{"temperature_2m":18.5,"precipitation":0,"rain":0}}`, planner.Weather{Temperature: 18.5}},
		{"precipitation", `{"current":{"temperature_2m":9,"precipitation":0.4,"rain":0}}`, planner.Weather{Temperature: 9, IsRaining: true}},
		{"rain", `{"current":{"temperature_2m":11,"precipitation":0,"rain":1.2}}`, planner.Weather{Temperature: 11, IsRaining: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newWeatherServer(t, http.StatusOK, tt.body)
			client := newTestWeatherClient(srv.URL)

			if got := client.Current(context.Background(), testLat, testLng); got != tt.want {
				t.Errorf("Current = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpenMeteoClient_CachesByRoundedCoordinate(t *testing.T) {
	srv, hits := newWeatherServer(t, http.StatusOK, `{"current":{"temperature_2m":20,"precipitation":0,"rain":0}}`)
	client := newTestWeatherClient(srv.URL)

	client.Current(context.Background(), 37.5665, 126.9780)
	client.Current(context.Background(), 37.5671, 126.9782)
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("remote hits = %d, want 1 for nearby coordinates", n)
	}

	client.Current(context.Background(), 35.1796, 129.0756)
	if n := atomic.LoadInt32(hits); n != 2 {
		t.Errorf("remote hits = %d, want 2 after a distant lookup", n)
	}
}

func TestOpenMeteoClient_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed body", http.StatusOK, `{"current":`},
		{"missing block", http.StatusOK, `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newWeatherServer(t, tt.status, tt.body)
			client := newTestWeatherClient(srv.URL)

			if got := client.Current(context.Background(), testLat, testLng); got != planner.DefaultWeather {
				t.Errorf("Current = %+v, want default", got)
			}
		})
	}
}

func TestOpenMeteoClient_BreakerStopsCallingFailingUpstream(t *testing.T) {
	srv, hits := newWeatherServer(t, http.StatusBadGateway, ``)
	client := newTestWeatherClient(srv.URL)

	for i := 0; i < 5; i++ {
		// Distinct coordinates so nothing could be served from cache.
		if got := client.Current(context.Background(), float64(i), float64(i)); got != planner.DefaultWeather {
			t.Fatalf("call %d: got %+v", i, got)
		}
	}
	if n := atomic.LoadInt32(hits); n != 3 {
		t.Errorf("remote hits = %d, want 3 before the breaker opened", n)
	}
}

func TestOpenMeteoClient_Unreachable(t *testing.T) {
	client := newTestWeatherClient("http://127.0.0.1:1")
	if got := client.Current(context.Background(), testLat, testLng); got != planner.DefaultWeather {
		t.Errorf("Current = %+v, want default", got)
	}
}

func TestInMemoryWeatherCache_SharesRoundedKeyAndExpires(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := &inMemoryWeatherCache{store: make(map[WeatherKey]weatherCacheEntry), now: func() time.Time { return now }}

	cache.Set(NewWeatherKey(37.5665, 126.9780), planner.Weather{Temperature: 9, IsRaining: true}, time.Minute)

	got, ok := cache.Get(NewWeatherKey(37.5681, 126.9759))
	if !ok || got.Temperature != 9 || !got.IsRaining {
		t.Fatalf("nearby lookup = %+v, %v", got, ok)
	}
	if _, ok := cache.Get(NewWeatherKey(37.58, 126.98)); ok {
		t.Error("a different rounded coordinate hit the cache")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get(NewWeatherKey(37.5665, 126.9780)); ok {
		t.Error("expired entry was returned")
	}
}
