package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"datecourse/internal/planner"
)

type Venue struct {
	BaseModel
	Name         string `gorm:"not null"`
	LocalName    string
	Category     string `gorm:"index;not null"`
	District     string `gorm:"index"`
	Latitude     float64
	Longitude    float64
	Indoor       bool
	Description  string
	Themes       pq.StringArray `gorm:"type:text[]"`
	MealType     string
	VisitMinutes int

	// Features is the venue's taste vector, kept in sync with its text so the
	// catalogue can be searched by similarity to a user vector.
	Features pgvector.Vector `gorm:"type:vector(10)"`
}

func (v *Venue) ToPlanner() planner.Venue {
	return planner.Venue{
		ID:           v.ID.String(),
		Name:         v.Name,
		LocalName:    v.LocalName,
		Category:     planner.Category(v.Category),
		Lat:          v.Latitude,
		Lng:          v.Longitude,
		Indoor:       v.Indoor,
		Description:  v.Description,
		Themes:       []string(v.Themes),
		MealType:     planner.MealType(v.MealType),
		VisitMinutes: v.VisitMinutes,
	}
}

// RefreshFeatures recomputes Features from the venue's current fields.
func (v *Venue) RefreshFeatures() {
	v.Features = VectorToPg(planner.FeatureVector(v.ToPlanner()))
}

func VectorToPg(v planner.Vector) pgvector.Vector {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return pgvector.NewVector(out)
}

// VectorFromPg converts a stored vector back, leaving missing dimensions neutral.
func VectorFromPg(pv pgvector.Vector) planner.Vector {
	v := planner.NewVector()
	for i, x := range pv.Slice() {
		if i >= len(v) {
			break
		}
		v[i] = float64(x)
	}
	return v
}
