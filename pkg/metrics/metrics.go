// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route template and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datecourse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datecourse_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// ItinerariesGenerated counts planning runs.
	// Labels:
	//   - kind: "generate", "replan"
	//   - outcome: "success", "error"
	ItinerariesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datecourse_itineraries_generated_total",
			Help: "Total number of itineraries planned",
		},
		[]string{"kind", "outcome"},
	)

	ItinerarySteps = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "datecourse_itinerary_steps",
			Help:    "Number of steps per generated itinerary, start venue included",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)

	// WeatherLookups counts weather lookups.
	// Labels:
	//   - source: "cache", "remote", "fallback"
	WeatherLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datecourse_weather_lookups_total",
			Help: "Total number of weather lookups by source",
		},
		[]string{"source"},
	)
)
