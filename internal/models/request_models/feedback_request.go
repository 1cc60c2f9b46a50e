package request_models

type FeedbackRequest struct {
	VenueID string `json:"venue_id" binding:"required,uuid"`
	Action  string `json:"action" binding:"required,oneof=like dislike"`
}

// UpdatePreferenceRequest sets taste dimensions by name, each in [0,1].
type UpdatePreferenceRequest struct {
	Vector map[string]float64 `json:"vector" binding:"required"`
}
