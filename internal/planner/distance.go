package planner

import "math"

const (
	earthRadiusKm = 6371.0

	// MaxWalkKm is the hard per-hop cutoff for foot transport.
	MaxWalkKm = 1.5

	walkMinutesPerKm  = 12.0
	maxWalkMinutes    = 90.0
	driveMinutesPerKm = 3.0
	maxDriveMinutes   = 60.0
	parkingMinutes    = 10
)

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func venueDistance(a, b Venue) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

// TravelMinutes converts a hop distance into whole minutes of travel, rounding up.
func TravelMinutes(distanceKm float64, transport Transport) int {
	if transport == TransportCar {
		drive := math.Min(distanceKm*driveMinutesPerKm, maxDriveMinutes)
		return int(math.Ceil(drive)) + parkingMinutes
	}
	walk := math.Min(distanceKm*walkMinutesPerKm, maxWalkMinutes)
	return int(math.Ceil(walk))
}
