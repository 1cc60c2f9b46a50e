package repositories

import (
	"context"

	"datecourse/internal/models/db_models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepositoryInterface interface {
	CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Feedback, error)
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Feedback, error) {
	var feedbacks []db_models.Feedback
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&feedbacks).Error
	return feedbacks, err
}
