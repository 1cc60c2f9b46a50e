package repositories

import (
	"context"
	"errors"
	"fmt"

	"datecourse/internal/models/db_models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItineraryRepository interface {
	// Create stores the itinerary and its steps in one transaction.
	Create(ctx context.Context, itinerary *db_models.Itinerary) (uuid.UUID, error)
	GetByID(ctx context.Context, id string) (*db_models.Itinerary, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *db_models.Itinerary) (uuid.UUID, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Steps").Create(itinerary).Error; err != nil {
			return err
		}
		if len(itinerary.Steps) == 0 {
			return nil
		}
		for i := range itinerary.Steps {
			itinerary.Steps[i].ItineraryID = itinerary.ID
		}
		// Venues already exist; only the step rows are written.
		return tx.Omit("Venue").Create(&itinerary.Steps).Error
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create itinerary: %w", err)
	}
	return itinerary.ID, nil
}

func (r *itineraryRepository) GetByID(ctx context.Context, id string) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Steps.Venue", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		First(&itinerary, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get itinerary %s: %w", id, err)
	}
	return &itinerary, nil
}

func (r *itineraryRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Itinerary, error) {
	var itineraries []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&itineraries).Error
	if err != nil {
		return nil, fmt.Errorf("list itineraries: %w", err)
	}
	return itineraries, nil
}
