package request_models

type CreateVenueRequest struct {
	Name         string   `json:"name" binding:"required"`
	LocalName    string   `json:"local_name"`
	Category     string   `json:"category" binding:"required,oneof=activity cafe restaurant shopping bakery bar culture landmark"`
	District     string   `json:"district"`
	Latitude     float64  `json:"latitude" binding:"min=-90,max=90"`
	Longitude    float64  `json:"longitude" binding:"min=-180,max=180"`
	Indoor       bool     `json:"indoor"`
	Description  string   `json:"description"`
	Themes       []string `json:"themes"`
	MealType     string   `json:"meal_type" binding:"omitempty,oneof=lunch dinner cafe"`
	VisitMinutes int      `json:"visit_minutes" binding:"min=0,max=480"`
}
