package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"datecourse/internal/models/db_models"
	"datecourse/internal/models/request_models"
	"datecourse/internal/models/response_models"
	"datecourse/internal/planner"
	"datecourse/internal/repositories"
	"datecourse/pkg/logger"
	mem "datecourse/pkg/memcache"
	"datecourse/pkg/metrics"
	"datecourse/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, req request_models.GenerateItineraryRequest) (response_models.ItineraryResponse, error)

	// Replan applies feedback on a venue and plans the session again from scratch.
	// A disliked venue stays out of every later plan of the session.
	Replan(ctx context.Context, userID uuid.UUID, sessionID string, req request_models.FeedbackRequest) (response_models.ItineraryResponse, error)

	GetItinerary(ctx context.Context, userID uuid.UUID, id string) (response_models.ItineraryResponse, error)
	ListItineraries(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.ItineraryResponse, error)
}

// ItinerarySettings are the service-wide planning defaults.
type ItinerarySettings struct {
	Lunch                planner.MealWindow
	Dinner               planner.MealWindow
	DefaultDurationHours float64
	SessionTTL           time.Duration
}

type ItineraryService struct {
	venues      VenueServiceInterface
	preferences PreferenceServiceInterface
	weather     WeatherService
	repo        repositories.ItineraryRepository
	sessions    mem.SessionStore
	settings    ItinerarySettings
	log         *logger.Logger
	now         func() time.Time
}

func NewItineraryService(
	venues VenueServiceInterface,
	preferences PreferenceServiceInterface,
	weather WeatherService,
	repo repositories.ItineraryRepository,
	sessions mem.SessionStore,
	settings ItinerarySettings,
	log *logger.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		venues:      venues,
		preferences: preferences,
		weather:     weather,
		repo:        repo,
		sessions:    sessions,
		settings:    settings,
		log:         log.With("service", "ItineraryService"),
		now:         time.Now,
	}
}

// planningSession is what a session id resolves to between re-plans.
type planningSession struct {
	UserID   string                                  `json:"user_id"`
	Request  request_models.GenerateItineraryRequest `json:"request"`
	Excluded []string                                `json:"excluded,omitempty"`
}

// planResult carries a planner run together with the options it was built from.
type planResult struct {
	itinerary *planner.Itinerary
	opts      planner.Options
}

func (s *ItineraryService) Generate(ctx context.Context, userID uuid.UUID, req request_models.GenerateItineraryRequest) (resp response_models.ItineraryResponse, err error) {
	defer func() { observePlan("generate", err) }()

	if req.StartVenueID == "" {
		return response_models.ItineraryResponse{}, utils.ErrStartVenueRequired
	}

	session := planningSession{UserID: userID.String(), Request: req}
	in, err := s.prepare(ctx, userID, session)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}
	result, err := s.run(in)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}

	sessionID := uuid.New()
	return s.persist(ctx, userID, sessionID, session, result)
}

func (s *ItineraryService) Replan(ctx context.Context, userID uuid.UUID, sessionID string, req request_models.FeedbackRequest) (resp response_models.ItineraryResponse, err error) {
	defer func() { observePlan("replan", err) }()

	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return response_models.ItineraryResponse{}, utils.ErrSessionNotFound
	}
	session, err := s.loadSession(ctx, sid)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}
	if session.UserID != userID.String() {
		return response_models.ItineraryResponse{}, utils.ErrSessionNotFound
	}

	action := planner.Action(req.Action)
	if action == planner.ActionDislike {
		session.exclude(req.VenueID)
	}

	// Resolve the session's venues first so a plan that cannot be built leaves the
	// stored vector untouched.
	in, err := s.prepare(ctx, userID, session)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}
	vector, _, err := s.preferences.ApplyFeedback(ctx, userID, req.VenueID, action, &sid)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}
	in.opts.UserVector = &vector

	result, err := s.run(in)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}
	return s.persist(ctx, userID, sid, session, result)
}

// exclude drops id from the session's candidates, anchors and locks.
// The start and end venues are fixed by the user and are never dropped.
func (p *planningSession) exclude(id string) {
	if id == p.Request.StartVenueID || id == p.Request.EndVenueID {
		return
	}
	for _, existing := range p.Excluded {
		if existing == id {
			return
		}
	}
	p.Excluded = append(p.Excluded, id)

	var kept []string
	for _, anchor := range p.Request.MustVisitIDs {
		if anchor != id {
			kept = append(kept, anchor)
		}
	}
	p.Request.MustVisitIDs = kept

	if len(p.Request.LockedSteps) > 0 {
		locks := make(map[int]string, len(p.Request.LockedSteps))
		for idx, locked := range p.Request.LockedSteps {
			if locked != id {
				locks[idx] = locked
			}
		}
		p.Request.LockedSteps = locks
	}
}

// planInput is a resolved planner call: options with every venue looked up, and the
// candidate pool minus the session's exclusions.
type planInput struct {
	opts       planner.Options
	candidates []planner.Venue
}

func (s *ItineraryService) prepare(ctx context.Context, userID uuid.UUID, session planningSession) (*planInput, error) {
	req := session.Request
	opts, err := s.baseOptions(req)
	if err != nil {
		return nil, err
	}

	var (
		pool   []planner.Venue
		vector planner.Vector
		refs   map[string]planner.Venue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pool, err = s.venues.LoadPool(gctx, req.District)
		return err
	})
	g.Go(func() error {
		var err error
		vector, err = s.preferences.GetVector(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		refs, err = s.venues.ResolveVenues(gctx, referencedIDs(req))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(session.Excluded))
	for _, id := range session.Excluded {
		excluded[id] = true
	}

	start, ok := refs[req.StartVenueID]
	if !ok {
		return nil, fmt.Errorf("start venue %s: %w", req.StartVenueID, utils.ErrVenueNotFound)
	}
	opts.Start = &start

	if req.EndVenueID != "" {
		end, ok := refs[req.EndVenueID]
		if !ok {
			return nil, fmt.Errorf("end venue %s: %w", req.EndVenueID, utils.ErrVenueNotFound)
		}
		opts.End = &end
	}

	for _, id := range req.MustVisitIDs {
		if excluded[id] {
			continue
		}
		v, ok := refs[id]
		if !ok {
			return nil, fmt.Errorf("must-visit venue %s: %w", id, utils.ErrVenueNotFound)
		}
		opts.MustVisit = append(opts.MustVisit, v)
	}

	if len(req.LockedSteps) > 0 {
		opts.LockedSteps = make(map[int]planner.Venue, len(req.LockedSteps))
		for idx, id := range req.LockedSteps {
			if idx < 0 {
				return nil, fmt.Errorf("locked step %d: %w", idx, utils.ErrInvalidInput)
			}
			if excluded[id] {
				continue
			}
			v, ok := refs[id]
			if !ok {
				return nil, fmt.Errorf("locked venue %s: %w", id, utils.ErrVenueNotFound)
			}
			opts.LockedSteps[idx] = v
		}
	}

	candidates := make([]planner.Venue, 0, len(pool))
	for _, v := range pool {
		if !excluded[v.ID] {
			candidates = append(candidates, v)
		}
	}

	if req.Weather != nil {
		opts.Weather = planner.Weather{Temperature: req.Weather.Temperature, IsRaining: req.Weather.IsRaining}
	} else {
		opts.Weather = s.weather.Current(ctx, start.Lat, start.Lng)
	}
	opts.UserVector = &vector

	return &planInput{opts: opts, candidates: candidates}, nil
}

func (s *ItineraryService) run(in *planInput) (*planResult, error) {
	itinerary := planner.Generate(in.candidates, in.opts)
	if itinerary == nil {
		return nil, utils.ErrStartVenueRequired
	}
	return &planResult{itinerary: itinerary, opts: in.opts}, nil
}

// baseOptions turns the wire request into planner options, minus the venues.
func (s *ItineraryService) baseOptions(req request_models.GenerateItineraryRequest) (planner.Options, error) {
	opts := planner.Options{
		Lunch:         s.settings.Lunch,
		Dinner:        s.settings.Dinner,
		Companion:     planner.Companion(req.Companion),
		Transport:     planner.Transport(req.Transport),
		Intensity:     planner.Intensity(req.Intensity),
		DurationHours: req.DurationHours,
	}
	if opts.DurationHours <= 0 {
		opts.DurationHours = s.settings.DefaultDurationHours
	}

	if req.StartTime == "" {
		opts.StartTime = utils.MinutesOfDay(s.now())
	} else {
		start, err := utils.ParseClock(req.StartTime)
		if err != nil {
			return planner.Options{}, err
		}
		opts.StartTime = start
	}

	if req.EndTime != "" {
		end, err := utils.ParseClock(req.EndTime)
		if err != nil {
			return planner.Options{}, err
		}
		if end <= opts.StartTime {
			return planner.Options{}, fmt.Errorf("%w: end %s is not after start", utils.ErrInvalidTime, req.EndTime)
		}
		opts.EndTime = end
	}

	if req.LunchWindow != "" {
		start, end, err := utils.ParseWindow(req.LunchWindow)
		if err != nil {
			return planner.Options{}, err
		}
		opts.Lunch = planner.MealWindow{Start: start, End: end}
	}
	if req.DinnerWindow != "" {
		start, end, err := utils.ParseWindow(req.DinnerWindow)
		if err != nil {
			return planner.Options{}, err
		}
		opts.Dinner = planner.MealWindow{Start: start, End: end}
	}
	return opts, nil
}

func referencedIDs(req request_models.GenerateItineraryRequest) []string {
	ids := []string{req.StartVenueID}
	if req.EndVenueID != "" {
		ids = append(ids, req.EndVenueID)
	}
	ids = append(ids, req.MustVisitIDs...)
	for _, id := range req.LockedSteps {
		ids = append(ids, id)
	}
	return ids
}

func (s *ItineraryService) persist(ctx context.Context, userID, sessionID uuid.UUID, session planningSession, result *planResult) (response_models.ItineraryResponse, error) {
	it := result.itinerary
	opts := result.opts

	snapshot, err := json.Marshal(session.Request)
	if err != nil {
		return response_models.ItineraryResponse{}, fmt.Errorf("encode request: %w", err)
	}

	row := &db_models.Itinerary{
		UserID:          userID,
		SessionID:       sessionID,
		StartMinute:     opts.StartTime,
		MaxEndMinute:    opts.MaxEndTime(),
		TotalDistanceKm: it.TotalDistanceKm,
		TotalMinutes:    it.TotalMinutes,
		Temperature:     opts.Weather.Temperature,
		IsRaining:       opts.Weather.IsRaining,
		Request:         datatypes.JSON(snapshot),
		Steps:           make([]db_models.ItineraryStep, 0, len(it.Steps)),
	}
	for i, step := range it.Steps {
		venueID, err := uuid.Parse(step.Venue.ID)
		if err != nil {
			return response_models.ItineraryResponse{}, fmt.Errorf("step %d venue id %q: %w", i, step.Venue.ID, utils.ErrInvalidInput)
		}
		row.Steps = append(row.Steps, db_models.ItineraryStep{
			Position:      i,
			VenueID:       venueID,
			StartMinute:   step.Start,
			EndMinute:     step.End,
			TravelMinutes: step.TravelMinutes,
			DistanceKm:    step.DistanceKm,
			MealType:      string(step.MealType),
		})
	}

	id, err := s.repo.Create(ctx, row)
	if err != nil {
		s.log.Error("save itinerary failed", "user_id", userID, "session_id", sessionID, "error", err)
		return response_models.ItineraryResponse{}, utils.ErrDatabaseError
	}

	if err := s.saveSession(ctx, sessionID, session); err != nil {
		return response_models.ItineraryResponse{}, err
	}

	metrics.ItinerarySteps.Observe(float64(len(it.Steps)))
	s.log.Info("itinerary planned",
		"user_id", userID,
		"session_id", sessionID,
		"itinerary_id", id,
		"steps", len(it.Steps),
		"distance_km", it.TotalDistanceKm,
		"minutes", it.TotalMinutes,
	)

	resp := response_models.ItineraryResponse{
		ID:              id.String(),
		SessionID:       sessionID.String(),
		Steps:           make([]response_models.StepResponse, 0, len(it.Steps)),
		TotalDistanceKm: it.TotalDistanceKm,
		TotalMinutes:    it.TotalMinutes,
		StartTime:       utils.FormatClock(opts.StartTime),
		EndTime:         utils.FormatClock(opts.StartTime + it.TotalMinutes),
		Weather:         response_models.Weather{Temperature: opts.Weather.Temperature, IsRaining: opts.Weather.IsRaining},
	}
	for i, step := range it.Steps {
		resp.Steps = append(resp.Steps, response_models.StepResponse{
			Position:      i,
			Venue:         plannerToResponse(step.Venue),
			StartTime:     utils.FormatClock(step.Start),
			EndTime:       utils.FormatClock(step.End),
			TravelMinutes: step.TravelMinutes,
			DistanceKm:    step.DistanceKm,
			MealType:      string(step.MealType),
		})
	}
	return resp, nil
}

func (s *ItineraryService) loadSession(ctx context.Context, id uuid.UUID) (planningSession, error) {
	raw, ok, err := s.sessions.Get(ctx, id.String())
	if err != nil {
		s.log.Error("read session failed", "session_id", id, "error", err)
		return planningSession{}, utils.ErrDatabaseError
	}
	if !ok {
		return planningSession{}, utils.ErrSessionNotFound
	}

	var session planningSession
	if err := json.Unmarshal(raw, &session); err != nil {
		s.log.Warn("discarding unreadable session", "session_id", id, "error", err)
		if err := s.sessions.Delete(ctx, id.String()); err != nil {
			s.log.Error("delete session failed", "session_id", id, "error", err)
		}
		return planningSession{}, utils.ErrSessionNotFound
	}
	return session, nil
}

func (s *ItineraryService) saveSession(ctx context.Context, id uuid.UUID, session planningSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.sessions.Set(ctx, id.String(), raw, s.settings.SessionTTL); err != nil {
		s.log.Error("write session failed", "session_id", id, "error", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ItineraryService) GetItinerary(ctx context.Context, userID uuid.UUID, id string) (response_models.ItineraryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return response_models.ItineraryResponse{}, utils.ErrItineraryNotFound
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("fetch itinerary failed", "itinerary_id", id, "error", err)
		return response_models.ItineraryResponse{}, utils.ErrDatabaseError
	}
	// Other users' itineraries are reported as missing.
	if row == nil || row.UserID != userID {
		return response_models.ItineraryResponse{}, utils.ErrItineraryNotFound
	}
	return toItineraryResponse(row), nil
}

func (s *ItineraryService) ListItineraries(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.ItineraryResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	rows, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.log.Error("list itineraries failed", "user_id", userID, "error", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ItineraryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toItineraryResponse(&rows[i]))
	}
	return out, nil
}

func toItineraryResponse(row *db_models.Itinerary) response_models.ItineraryResponse {
	resp := response_models.ItineraryResponse{
		ID:              row.ID.String(),
		SessionID:       row.SessionID.String(),
		Steps:           make([]response_models.StepResponse, 0, len(row.Steps)),
		TotalDistanceKm: row.TotalDistanceKm,
		TotalMinutes:    row.TotalMinutes,
		StartTime:       utils.FormatClock(row.StartMinute),
		EndTime:         utils.FormatClock(row.StartMinute + row.TotalMinutes),
		Weather:         response_models.Weather{Temperature: row.Temperature, IsRaining: row.IsRaining},
	}
	for _, step := range row.Steps {
		resp.Steps = append(resp.Steps, response_models.StepResponse{
			Position:      step.Position,
			Venue:         toVenueResponse(&step.Venue),
			StartTime:     utils.FormatClock(step.StartMinute),
			EndTime:       utils.FormatClock(step.EndMinute),
			TravelMinutes: step.TravelMinutes,
			DistanceKm:    step.DistanceKm,
			MealType:      step.MealType,
		})
	}
	return resp
}

func observePlan(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.ItinerariesGenerated.WithLabelValues(kind, outcome).Inc()
}
