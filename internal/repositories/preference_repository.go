package repositories

import (
	"context"
	"errors"
	"fmt"

	"datecourse/internal/models/db_models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*db_models.UserPreference, error)
	Upsert(ctx context.Context, pref *db_models.UserPreference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*db_models.UserPreference, error) {
	var pref db_models.UserPreference
	err := r.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preference %s: %w", userID, err)
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *db_models.UserPreference) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vector", "likes", "dislikes", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		return fmt.Errorf("upsert preference %s: %w", pref.UserID, err)
	}
	return nil
}
