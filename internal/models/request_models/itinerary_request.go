package request_models

// GenerateItineraryRequest describes one outing. Times are "HH:MM" wall-clock strings.
type GenerateItineraryRequest struct {
	StartVenueID string `json:"start_venue_id" binding:"required,uuid"`
	EndVenueID   string `json:"end_venue_id" binding:"omitempty,uuid"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`

	// District narrows the candidate pool; empty means the whole catalogue.
	District string `json:"district"`

	MustVisitIDs []string `json:"must_visit_ids" binding:"omitempty,dive,uuid"`

	// LockedSteps pins a venue id to a sequence position (0 is the start venue).
	LockedSteps map[int]string `json:"locked_steps" binding:"omitempty,dive,uuid"`

	Companion     string  `json:"companion" binding:"omitempty,oneof=solo partner friend family"`
	Transport     string  `json:"transport" binding:"omitempty,oneof=foot car"`
	Intensity     string  `json:"intensity" binding:"omitempty,oneof=relaxed packed"`
	DurationHours float64 `json:"duration_hours" binding:"min=0,max=16"`

	LunchWindow  string `json:"lunch_window"`
	DinnerWindow string `json:"dinner_window"`

	// Weather overrides the live lookup when set.
	Weather *WeatherRequest `json:"weather"`
}

type WeatherRequest struct {
	Temperature float64 `json:"temperature"`
	IsRaining   bool    `json:"is_raining"`
}
