package response_models

type PreferenceResponse struct {
	UserID   string             `json:"user_id"`
	Vector   map[string]float64 `json:"vector"`
	Likes    int                `json:"likes"`
	Dislikes int                `json:"dislikes"`
}

type FeedbackResponse struct {
	VenueID   string `json:"venue_id"`
	SessionID string `json:"session_id,omitempty"`
	Action    string `json:"action"`
	CreatedAt int64  `json:"created_at"`
}
