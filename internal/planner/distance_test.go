package planner

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		expectedKm             float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 37.5665, lng1: 126.9780, lat2: 37.5665, lng2: 126.9780,
			expectedKm: 0,
			tolerance:  1e-9,
		},
		{
			name: "Seoul City Hall to Gangnam Station",
			lat1: 37.5665, lng1: 126.9780, lat2: 37.4979, lng2: 127.0276,
			expectedKm: 8.78,
			tolerance:  0.2,
		},
		{
			name: "London to Paris",
			lat1: 51.5074, lng1: -0.1278, lat2: 48.8566, lng2: 2.3522,
			expectedKm: 344,
			tolerance:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.expectedKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.expectedKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := [][2]float64{
		{37.5665, 126.9780},
		{37.4979, 127.0276},
		{35.1796, 129.0756},
		{-33.8688, 151.2093},
	}
	for _, a := range points {
		for _, b := range points {
			ab := DistanceKm(a[0], a[1], b[0], b[1])
			ba := DistanceKm(b[0], b[1], a[0], a[1])
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance %v->%v = %f but %v->%v = %f", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestTravelMinutes(t *testing.T) {
	tests := []struct {
		name      string
		km        float64
		transport Transport
		want      int
	}{
		{"foot zero", 0, TransportFoot, 0},
		{"foot rounds up", 0.3, TransportFoot, 4},
		{"foot one km", 1, TransportFoot, 12},
		{"foot capped", 20, TransportFoot, 90},
		{"car adds parking", 2, TransportCar, 16},
		{"car capped before parking", 50, TransportCar, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TravelMinutes(tt.km, tt.transport); got != tt.want {
				t.Errorf("TravelMinutes(%v, %s) = %d, want %d", tt.km, tt.transport, got, tt.want)
			}
		})
	}
}
