package repositories

import (
	"context"
	"errors"
	"fmt"

	"datecourse/internal/models/db_models"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type VenueRepository interface {
	CreateVenue(ctx context.Context, venue *db_models.Venue) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.Venue, error)
	GetByIDs(ctx context.Context, ids []string) ([]db_models.Venue, error)
	List(ctx context.Context, district string, page, pageSize int) ([]db_models.Venue, error)

	// ListAll returns every venue in district (all districts when empty) in a stable order.
	ListAll(ctx context.Context, district string) ([]db_models.Venue, error)

	// NearestByFeatures orders venues by cosine distance between their feature vector and vector.
	NearestByFeatures(ctx context.Context, vector pgvector.Vector, limit int) ([]ScoredVenue, error)
}

type ScoredVenue struct {
	db_models.Venue
	Similarity float64
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) CreateVenue(ctx context.Context, venue *db_models.Venue) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(venue).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create venue: %w", err)
	}
	return venue.ID, nil
}

func (r *venueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Venue{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("delete venue %s: %w", id, err)
	}
	return nil
}

// Reads return (nil, nil) when nothing matches.

func (r *venueRepository) GetByID(ctx context.Context, id string) (*db_models.Venue, error) {
	var venue db_models.Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venue %s: %w", id, err)
	}
	return &venue, nil
}

func (r *venueRepository) GetByIDs(ctx context.Context, ids []string) ([]db_models.Venue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var venues []db_models.Venue
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("get venues: %w", err)
	}
	return venues, nil
}

func (r *venueRepository) List(ctx context.Context, district string, page, pageSize int) ([]db_models.Venue, error) {
	var venues []db_models.Venue
	q := r.db.WithContext(ctx).Model(&db_models.Venue{})
	if district != "" {
		q = q.Where("district = ?", district)
	}
	err := q.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

func (r *venueRepository) ListAll(ctx context.Context, district string) ([]db_models.Venue, error) {
	var venues []db_models.Venue
	q := r.db.WithContext(ctx).Model(&db_models.Venue{})
	if district != "" {
		q = q.Where("district = ?", district)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("list venue pool: %w", err)
	}
	return venues, nil
}

func (r *venueRepository) NearestByFeatures(ctx context.Context, vector pgvector.Vector, limit int) ([]ScoredVenue, error) {
	var results []ScoredVenue

	query := `
        SELECT *, (1 - (features <=> ?)) AS similarity
        FROM venues
        WHERE deleted_at IS NULL AND features IS NOT NULL
        ORDER BY features <=> ?  -- cosine distance, closer to 0 is better
        LIMIT ?
    `
	if err := r.db.WithContext(ctx).Raw(query, vector, vector, limit).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("nearest venues: %w", err)
	}
	return results, nil
}
