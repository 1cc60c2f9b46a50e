package services

import (
	"context"
	"strings"

	"datecourse/internal/models/db_models"
	"datecourse/internal/models/request_models"
	"datecourse/internal/models/response_models"
	"datecourse/internal/planner"
	"datecourse/internal/repositories"
	"datecourse/pkg/logger"
	"datecourse/pkg/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const maxPageSize = 100

type VenueServiceInterface interface {
	GetVenueByID(ctx context.Context, id string) (response_models.Venue, error)
	ListVenues(ctx context.Context, district string, page, pageSize int) ([]response_models.Venue, error)
	CreateVenue(ctx context.Context, req request_models.CreateVenueRequest) (response_models.Venue, error)
	DeleteVenue(ctx context.Context, id uuid.UUID) error

	// LoadPool returns the planner's candidate pool for district as an immutable snapshot.
	LoadPool(ctx context.Context, district string) ([]planner.Venue, error)

	// ResolveVenues looks up venues by id. Missing ids are absent from the result.
	ResolveVenues(ctx context.Context, ids []string) (map[string]planner.Venue, error)

	// NearestTaste lists the venues whose feature vectors are closest to vector.
	NearestTaste(ctx context.Context, vector planner.Vector, limit int) ([]response_models.Venue, error)
}

type VenueService struct {
	venueRepo repositories.VenueRepository
	log       *logger.Logger
}

func NewVenueService(venueRepo repositories.VenueRepository, log *logger.Logger) VenueServiceInterface {
	return &VenueService{
		venueRepo: venueRepo,
		log:       log.With("service", "VenueService"),
	}
}

func (s *VenueService) GetVenueByID(ctx context.Context, id string) (response_models.Venue, error) {
	if _, err := uuid.Parse(id); err != nil {
		return response_models.Venue{}, utils.ErrInvalidInput
	}

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("fetch venue failed", "venue_id", id, "error", err)
		return response_models.Venue{}, utils.ErrDatabaseError
	}
	if venue == nil {
		return response_models.Venue{}, utils.ErrVenueNotFound
	}
	return toVenueResponse(venue), nil
}

func (s *VenueService) ListVenues(ctx context.Context, district string, page, pageSize int) ([]response_models.Venue, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	venues, err := s.venueRepo.List(ctx, district, page, pageSize)
	if err != nil {
		s.log.Error("list venues failed", "district", district, "error", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Venue, 0, len(venues))
	for i := range venues {
		out = append(out, toVenueResponse(&venues[i]))
	}
	return out, nil
}

func (s *VenueService) CreateVenue(ctx context.Context, req request_models.CreateVenueRequest) (response_models.Venue, error) {
	if strings.TrimSpace(req.Name) == "" || !planner.Category(req.Category).Valid() {
		return response_models.Venue{}, utils.ErrInvalidInput
	}

	venue := &db_models.Venue{
		Name:         strings.TrimSpace(req.Name),
		LocalName:    req.LocalName,
		Category:     req.Category,
		District:     req.District,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Indoor:       req.Indoor,
		Description:  req.Description,
		Themes:       pq.StringArray(req.Themes),
		MealType:     req.MealType,
		VisitMinutes: req.VisitMinutes,
	}
	venue.RefreshFeatures()

	if _, err := s.venueRepo.CreateVenue(ctx, venue); err != nil {
		s.log.Error("create venue failed", "name", venue.Name, "error", err)
		return response_models.Venue{}, utils.ErrDatabaseError
	}
	return toVenueResponse(venue), nil
}

func (s *VenueService) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	existing, err := s.venueRepo.GetByID(ctx, id.String())
	if err != nil {
		s.log.Error("fetch venue failed", "venue_id", id, "error", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrVenueNotFound
	}

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		s.log.Error("delete venue failed", "venue_id", id, "error", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *VenueService) LoadPool(ctx context.Context, district string) ([]planner.Venue, error) {
	venues, err := s.venueRepo.ListAll(ctx, district)
	if err != nil {
		s.log.Error("load venue pool failed", "district", district, "error", err)
		return nil, utils.ErrDatabaseError
	}

	pool := make([]planner.Venue, 0, len(venues))
	for i := range venues {
		pool = append(pool, venues[i].ToPlanner())
	}
	return pool, nil
}

func (s *VenueService) ResolveVenues(ctx context.Context, ids []string) (map[string]planner.Venue, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}

	venues, err := s.venueRepo.GetByIDs(ctx, valid)
	if err != nil {
		s.log.Error("resolve venues failed", "count", len(valid), "error", err)
		return nil, utils.ErrDatabaseError
	}

	out := make(map[string]planner.Venue, len(venues))
	for i := range venues {
		v := venues[i].ToPlanner()
		out[v.ID] = v
	}
	return out, nil
}

func (s *VenueService) NearestTaste(ctx context.Context, vector planner.Vector, limit int) ([]response_models.Venue, error) {
	if limit < 1 || limit > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	scored, err := s.venueRepo.NearestByFeatures(ctx, db_models.VectorToPg(vector), limit)
	if err != nil {
		s.log.Error("taste search failed", "error", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Venue, 0, len(scored))
	for i := range scored {
		resp := toVenueResponse(&scored[i].Venue)
		similarity := scored[i].Similarity
		resp.Similarity = &similarity
		out = append(out, resp)
	}
	return out, nil
}

func toVenueResponse(v *db_models.Venue) response_models.Venue {
	return response_models.Venue{
		ID:           v.ID.String(),
		Name:         v.Name,
		LocalName:    v.LocalName,
		Category:     v.Category,
		District:     v.District,
		Latitude:     v.Latitude,
		Longitude:    v.Longitude,
		Indoor:       v.Indoor,
		Description:  v.Description,
		Themes:       []string(v.Themes),
		MealType:     v.MealType,
		VisitMinutes: v.VisitMinutes,
	}
}

// plannerToResponse renders a planner venue, which carries no district.
func plannerToResponse(v planner.Venue) response_models.Venue {
	return response_models.Venue{
		ID:           v.ID,
		Name:         v.Name,
		LocalName:    v.LocalName,
		Category:     string(v.Category),
		Latitude:     v.Lat,
		Longitude:    v.Lng,
		Indoor:       v.Indoor,
		Description:  v.Description,
		Themes:       v.Themes,
		MealType:     string(v.MealType),
		VisitMinutes: v.VisitMinutes,
	}
}
