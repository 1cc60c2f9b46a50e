package response_models

type ItineraryResponse struct {
	ID              string         `json:"id"`
	SessionID       string         `json:"session_id"`
	Steps           []StepResponse `json:"steps"`
	TotalDistanceKm float64        `json:"total_distance_km"`
	TotalMinutes    int            `json:"total_minutes"`
	StartTime       string         `json:"start_time"`
	EndTime         string         `json:"end_time"`
	Weather         Weather        `json:"weather"`
}

type StepResponse struct {
	Position      int     `json:"position"`
	Venue         Venue   `json:"venue"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	TravelMinutes int     `json:"travel_minutes"`
	DistanceKm    float64 `json:"distance_km"`
	MealType      string  `json:"meal_type,omitempty"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	IsRaining   bool    `json:"is_raining"`
}
