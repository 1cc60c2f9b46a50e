package response_models

type Venue struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	LocalName    string   `json:"local_name,omitempty"`
	Category     string   `json:"category"`
	District     string   `json:"district,omitempty"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Indoor       bool     `json:"indoor"`
	Description  string   `json:"description,omitempty"`
	Themes       []string `json:"themes,omitempty"`
	MealType     string   `json:"meal_type,omitempty"`
	VisitMinutes int      `json:"visit_minutes"`

	// Similarity is set on taste searches only.
	Similarity *float64 `json:"similarity,omitempty"`
}
