package db_models

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// UserPreference is the learned taste vector, one row per user.
type UserPreference struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Vector    pgvector.Vector `gorm:"type:vector(10);not null"`
	Likes     int
	Dislikes  int
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}
