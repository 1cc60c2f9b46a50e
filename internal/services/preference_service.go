package services

import (
	"context"

	"datecourse/internal/models/db_models"
	"datecourse/internal/models/response_models"
	"datecourse/internal/planner"
	"datecourse/internal/repositories"
	"datecourse/pkg/logger"
	"datecourse/pkg/utils"
	"github.com/google/uuid"
)

type PreferenceServiceInterface interface {
	// GetVector returns the user's learned vector, or the neutral vector for new users.
	GetVector(ctx context.Context, userID uuid.UUID) (planner.Vector, error)
	GetPreference(ctx context.Context, userID uuid.UUID) (response_models.PreferenceResponse, error)

	// SetPreference replaces the user's vector. Dimensions left out are reset to neutral.
	SetPreference(ctx context.Context, userID uuid.UUID, values map[string]float64) (response_models.PreferenceResponse, error)

	// ApplyFeedback records a like or dislike and returns the updated vector
	// together with the venue the feedback was about.
	ApplyFeedback(ctx context.Context, userID uuid.UUID, venueID string, action planner.Action, sessionID *uuid.UUID) (planner.Vector, planner.Venue, error)

	ListFeedback(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.FeedbackResponse, error)
}

type PreferenceService struct {
	prefRepo     repositories.PreferenceRepository
	feedbackRepo repositories.FeedbackRepositoryInterface
	venueRepo    repositories.VenueRepository
	log          *logger.Logger
}

func NewPreferenceService(
	prefRepo repositories.PreferenceRepository,
	feedbackRepo repositories.FeedbackRepositoryInterface,
	venueRepo repositories.VenueRepository,
	log *logger.Logger,
) PreferenceServiceInterface {
	return &PreferenceService{
		prefRepo:     prefRepo,
		feedbackRepo: feedbackRepo,
		venueRepo:    venueRepo,
		log:          log.With("service", "PreferenceService"),
	}
}

func (s *PreferenceService) GetVector(ctx context.Context, userID uuid.UUID) (planner.Vector, error) {
	pref, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Error("fetch preference failed", "user_id", userID, "error", err)
		return planner.Vector{}, utils.ErrDatabaseError
	}
	if pref == nil {
		return planner.NewVector(), nil
	}
	return db_models.VectorFromPg(pref.Vector), nil
}

func (s *PreferenceService) GetPreference(ctx context.Context, userID uuid.UUID) (response_models.PreferenceResponse, error) {
	pref, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Error("fetch preference failed", "user_id", userID, "error", err)
		return response_models.PreferenceResponse{}, utils.ErrDatabaseError
	}

	resp := response_models.PreferenceResponse{
		UserID: userID.String(),
		Vector: planner.NewVector().Map(),
	}
	if pref != nil {
		resp.Vector = db_models.VectorFromPg(pref.Vector).Map()
		resp.Likes = pref.Likes
		resp.Dislikes = pref.Dislikes
	}
	return resp, nil
}

func (s *PreferenceService) SetPreference(ctx context.Context, userID uuid.UUID, values map[string]float64) (response_models.PreferenceResponse, error) {
	if len(values) == 0 {
		return response_models.PreferenceResponse{}, utils.ErrInvalidInput
	}
	for name, val := range values {
		if _, ok := planner.DimensionByName(name); !ok || val < 0 || val > 1 {
			return response_models.PreferenceResponse{}, utils.ErrInvalidInput
		}
	}

	pref, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Error("fetch preference failed", "user_id", userID, "error", err)
		return response_models.PreferenceResponse{}, utils.ErrDatabaseError
	}
	if pref == nil {
		pref = &db_models.UserPreference{UserID: userID}
	}

	vector := planner.VectorFromMap(values)
	pref.Vector = db_models.VectorToPg(vector)
	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		s.log.Error("save preference failed", "user_id", userID, "error", err)
		return response_models.PreferenceResponse{}, utils.ErrDatabaseError
	}

	s.log.Info("preference replaced", "user_id", userID)
	return response_models.PreferenceResponse{
		UserID:   userID.String(),
		Vector:   vector.Map(),
		Likes:    pref.Likes,
		Dislikes: pref.Dislikes,
	}, nil
}

func (s *PreferenceService) ApplyFeedback(ctx context.Context, userID uuid.UUID, venueID string, action planner.Action, sessionID *uuid.UUID) (planner.Vector, planner.Venue, error) {
	if action != planner.ActionLike && action != planner.ActionDislike {
		return planner.Vector{}, planner.Venue{}, utils.ErrInvalidAction
	}
	venueUUID, err := uuid.Parse(venueID)
	if err != nil {
		return planner.Vector{}, planner.Venue{}, utils.ErrInvalidInput
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		s.log.Error("fetch venue failed", "venue_id", venueID, "error", err)
		return planner.Vector{}, planner.Venue{}, utils.ErrDatabaseError
	}
	if venue == nil {
		return planner.Vector{}, planner.Venue{}, utils.ErrVenueNotFound
	}

	pref, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Error("fetch preference failed", "user_id", userID, "error", err)
		return planner.Vector{}, planner.Venue{}, utils.ErrDatabaseError
	}
	if pref == nil {
		pref = &db_models.UserPreference{UserID: userID, Vector: db_models.VectorToPg(planner.NewVector())}
	}

	target := venue.ToPlanner()
	updated := planner.UpdatePreference(db_models.VectorFromPg(pref.Vector), target, action)
	pref.Vector = db_models.VectorToPg(updated)
	if action == planner.ActionLike {
		pref.Likes++
	} else {
		pref.Dislikes++
	}

	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		s.log.Error("save preference failed", "user_id", userID, "error", err)
		return planner.Vector{}, planner.Venue{}, utils.ErrDatabaseError
	}

	feedback := &db_models.Feedback{
		UserID:    userID,
		VenueID:   venueUUID,
		SessionID: sessionID,
		Action:    string(action),
	}
	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		// The vector is already saved; a lost history row is only logged.
		s.log.Warn("record feedback failed", "user_id", userID, "venue_id", venueID, "error", err)
	}

	s.log.Info("preference updated", "user_id", userID, "venue_id", venueID, "action", action)
	return updated, target, nil
}

func (s *PreferenceService) ListFeedback(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.FeedbackResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	rows, err := s.feedbackRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.log.Error("list feedback failed", "user_id", userID, "error", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.FeedbackResponse, 0, len(rows))
	for _, f := range rows {
		item := response_models.FeedbackResponse{
			VenueID:   f.VenueID.String(),
			Action:    f.Action,
			CreatedAt: f.CreatedAt,
		}
		if f.SessionID != nil {
			item.SessionID = f.SessionID.String()
		}
		out = append(out, item)
	}
	return out, nil
}
