package db_models

import "github.com/google/uuid"

// Feedback is an append-only record of a like or dislike.
type Feedback struct {
	BaseModel
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	VenueID   uuid.UUID  `gorm:"type:uuid;not null"`
	SessionID *uuid.UUID `gorm:"type:uuid"`
	Action    string     `gorm:"not null;check:action IN ('like','dislike')"`
}
