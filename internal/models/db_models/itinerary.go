package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Itinerary struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;index"`
	SessionID       uuid.UUID `gorm:"type:uuid;index"`
	StartMinute     int
	MaxEndMinute    int
	TotalDistanceKm float64
	TotalMinutes    int
	Temperature     float64
	IsRaining       bool

	// Request is the normalised request the itinerary was planned from.
	Request datatypes.JSON `gorm:"type:jsonb"`

	Steps []ItineraryStep `gorm:"constraint:OnDelete:CASCADE"`
}

type ItineraryStep struct {
	BaseModel
	ItineraryID   uuid.UUID `gorm:"type:uuid;index"`
	Position      int
	VenueID       uuid.UUID `gorm:"type:uuid"`
	StartMinute   int
	EndMinute     int
	TravelMinutes int
	DistanceKm    float64
	MealType      string

	Venue Venue `gorm:"foreignKey:VenueID"`
}
