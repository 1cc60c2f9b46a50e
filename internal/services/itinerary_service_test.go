package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"datecourse/internal/models/db_models"
	"datecourse/internal/models/request_models"
	"datecourse/internal/models/response_models"
	"datecourse/internal/planner"
	"datecourse/pkg/logger"
	"datecourse/pkg/utils"
	"github.com/google/uuid"
)

type itineraryFixture struct {
	svc      ItineraryServiceInterface
	venues   *fakeVenueRepo
	prefs    *fakePreferenceRepo
	feedback *fakeFeedbackRepo
	repo     *fakeItineraryRepo
	weather  *fakeWeather
	sessions *recordingSessions

	start   db_models.Venue
	climb   db_models.Venue
	gallery db_models.Venue
	park    db_models.Venue
}

func newItineraryFixture() *itineraryFixture {
	f := &itineraryFixture{
		start:   venueAt("Moon Cafe", planner.CategoryCafe, 0, 0),
		climb:   venueAt("Climbing Gym", planner.CategoryActivity, 0.3, 0),
		gallery: venueAt("Small Gallery", planner.CategoryCulture, 0, 0.4),
		park:    venueAt("River Park", planner.CategoryLandmark, -0.4, 0),
	}
	f.park.Indoor = false

	f.venues = &fakeVenueRepo{venues: []db_models.Venue{
		f.start,
		f.climb,
		f.gallery,
		f.park,
		venueAt("Select Shop", planner.CategoryShopping, 0.2, 0.2),
		venueAt("Noodle Kitchen", planner.CategoryRestaurant, -0.2, 0.2),
	}}
	f.prefs = newFakePreferenceRepo()
	f.feedback = &fakeFeedbackRepo{}
	f.repo = &fakeItineraryRepo{}
	f.weather = &fakeWeather{weather: planner.Weather{Temperature: 12, IsRaining: true}}
	f.sessions = newRecordingSessions()

	log := logger.NewNop()
	venueSvc := NewVenueService(f.venues, log)
	prefSvc := NewPreferenceService(f.prefs, f.feedback, f.venues, log)
	f.svc = NewItineraryService(venueSvc, prefSvc, f.weather, f.repo, f.sessions, ItinerarySettings{
		Lunch:                planner.DefaultLunchWindow,
		Dinner:               planner.DefaultDinnerWindow,
		DefaultDurationHours: 6,
		SessionTTL:           time.Hour,
	}, log)
	return f
}

func (f *itineraryFixture) request() request_models.GenerateItineraryRequest {
	return request_models.GenerateItineraryRequest{
		StartVenueID:  f.start.ID.String(),
		StartTime:     "14:00",
		DurationHours: 3,
		District:      "jongno",
		Weather:       &request_models.WeatherRequest{Temperature: 22},
	}
}

func stepVenueIDs(resp response_models.ItineraryResponse) []string {
	ids := make([]string, 0, len(resp.Steps))
	for _, s := range resp.Steps {
		ids = append(ids, s.Venue.ID)
	}
	return ids
}

func containsVenue(resp response_models.ItineraryResponse, id uuid.UUID) bool {
	for _, got := range stepVenueIDs(resp) {
		if got == id.String() {
			return true
		}
	}
	return false
}

func TestItineraryService_Generate(t *testing.T) {
	f := newItineraryFixture()
	userID := uuid.New()

	resp, err := f.svc.Generate(context.Background(), userID, f.request())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(resp.Steps) < 2 {
		t.Fatalf("expected at least one stop after the start, got %v", stepVenueIDs(resp))
	}
	if resp.Steps[0].Venue.ID != f.start.ID.String() || resp.Steps[0].StartTime != "14:00" {
		t.Errorf("first step = %+v", resp.Steps[0])
	}
	if resp.StartTime != "14:00" || resp.Weather.Temperature != 22 {
		t.Errorf("unexpected header %+v", resp)
	}
	if f.weather.calls != 0 {
		t.Errorf("weather service called %d times despite an explicit snapshot", f.weather.calls)
	}

	if len(f.repo.saved) != 1 {
		t.Fatalf("saved %d itineraries, want 1", len(f.repo.saved))
	}
	saved := f.repo.saved[0]
	if saved.UserID != userID || len(saved.Steps) != len(resp.Steps) || saved.ID.String() != resp.ID {
		t.Errorf("persisted row does not match response")
	}
	var snapshot request_models.GenerateItineraryRequest
	if err := json.Unmarshal(saved.Request, &snapshot); err != nil || snapshot.StartVenueID != f.start.ID.String() {
		t.Errorf("request snapshot = %+v, %v", snapshot, err)
	}

	if f.sessions.sets != 1 {
		t.Errorf("stored %d sessions, want 1", f.sessions.sets)
	}
	if _, ok, _ := f.sessions.Get(context.Background(), resp.SessionID); !ok {
		t.Errorf("session %s not stored", resp.SessionID)
	}
}

func TestItineraryService_GenerateUsesWeatherService(t *testing.T) {
	f := newItineraryFixture()
	req := f.request()
	req.Weather = nil

	resp, err := f.svc.Generate(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if f.weather.calls != 1 {
		t.Errorf("weather calls = %d, want 1", f.weather.calls)
	}
	if !resp.Weather.IsRaining || resp.Weather.Temperature != 12 {
		t.Errorf("weather = %+v", resp.Weather)
	}
}

func TestItineraryService_GenerateErrors(t *testing.T) {
	f := newItineraryFixture()

	tests := []struct {
		name   string
		mutate func(*request_models.GenerateItineraryRequest)
		want   error
	}{
		{"no start", func(r *request_models.GenerateItineraryRequest) { r.StartVenueID = "" }, utils.ErrStartVenueRequired},
		{"unknown start", func(r *request_models.GenerateItineraryRequest) { r.StartVenueID = uuid.NewString() }, utils.ErrVenueNotFound},
		{"unknown end", func(r *request_models.GenerateItineraryRequest) { r.EndVenueID = uuid.NewString() }, utils.ErrVenueNotFound},
		{"unknown anchor", func(r *request_models.GenerateItineraryRequest) { r.MustVisitIDs = []string{uuid.NewString()} }, utils.ErrVenueNotFound},
		{"bad start time", func(r *request_models.GenerateItineraryRequest) { r.StartTime = "25:00" }, utils.ErrInvalidTime},
		{"end before start", func(r *request_models.GenerateItineraryRequest) { r.EndTime = "13:00" }, utils.ErrInvalidTime},
		{"bad lunch window", func(r *request_models.GenerateItineraryRequest) { r.LunchWindow = "13:00-12:00" }, utils.ErrInvalidTime},
		{"negative lock", func(r *request_models.GenerateItineraryRequest) {
			r.LockedSteps = map[int]string{-1: f.climb.ID.String()}
		}, utils.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request()
			tt.mutate(&req)
			if _, err := f.svc.Generate(context.Background(), uuid.New(), req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if len(f.repo.saved) != 0 || f.sessions.sets != 0 {
		t.Errorf("failed requests left state behind")
	}
}

func TestItineraryService_GenerateDatabaseError(t *testing.T) {
	f := newItineraryFixture()
	f.repo.err = errors.New("tx aborted")

	if _, err := f.svc.Generate(context.Background(), uuid.New(), f.request()); !errors.Is(err, utils.ErrDatabaseError) {
		t.Errorf("err = %v, want ErrDatabaseError", err)
	}
}

func TestItineraryService_ReplanDislikeExcludesVenue(t *testing.T) {
	f := newItineraryFixture()
	userID := uuid.New()

	req := f.request()
	req.MustVisitIDs = []string{f.climb.ID.String()}

	first, err := f.svc.Generate(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !containsVenue(first, f.climb.ID) {
		t.Fatalf("must-visit venue missing from first plan: %v", stepVenueIDs(first))
	}

	second, err := f.svc.Replan(context.Background(), userID, first.SessionID, request_models.FeedbackRequest{
		VenueID: f.climb.ID.String(),
		Action:  "dislike",
	})
	if err != nil {
		t.Fatalf("Replan: %v", err)
	}
	if containsVenue(second, f.climb.ID) {
		t.Errorf("disliked venue still planned: %v", stepVenueIDs(second))
	}
	if second.SessionID != first.SessionID {
		t.Errorf("session id changed from %s to %s", first.SessionID, second.SessionID)
	}
	if second.Steps[0].Venue.ID != f.start.ID.String() {
		t.Errorf("start venue moved")
	}

	pref, _ := f.prefs.GetByUserID(context.Background(), userID)
	if pref == nil || pref.Dislikes != 1 {
		t.Fatalf("preference not updated: %+v", pref)
	}
	if len(f.feedback.rows) != 1 || f.feedback.rows[0].SessionID == nil || f.feedback.rows[0].SessionID.String() != first.SessionID {
		t.Errorf("feedback row not tied to the session: %+v", f.feedback.rows)
	}

	// A later like keeps the earlier dislike in force.
	third, err := f.svc.Replan(context.Background(), userID, first.SessionID, request_models.FeedbackRequest{
		VenueID: f.gallery.ID.String(),
		Action:  "like",
	})
	if err != nil {
		t.Fatalf("second Replan: %v", err)
	}
	if containsVenue(third, f.climb.ID) {
		t.Errorf("disliked venue came back after a like: %v", stepVenueIDs(third))
	}
	if len(f.repo.saved) != 3 {
		t.Errorf("saved %d itineraries, want 3", len(f.repo.saved))
	}
}

func TestItineraryService_ReplanDislikedStartStays(t *testing.T) {
	f := newItineraryFixture()
	userID := uuid.New()

	first, err := f.svc.Generate(context.Background(), userID, f.request())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := f.svc.Replan(context.Background(), userID, first.SessionID, request_models.FeedbackRequest{
		VenueID: f.start.ID.String(),
		Action:  "dislike",
	})
	if err != nil {
		t.Fatalf("Replan: %v", err)
	}
	if second.Steps[0].Venue.ID != f.start.ID.String() {
		t.Errorf("start venue was dropped on dislike")
	}
}

func TestItineraryService_ReplanSessionErrors(t *testing.T) {
	f := newItineraryFixture()
	owner := uuid.New()

	first, err := f.svc.Generate(context.Background(), owner, f.request())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	feedback := request_models.FeedbackRequest{VenueID: f.climb.ID.String(), Action: "like"}

	tests := []struct {
		name      string
		userID    uuid.UUID
		sessionID string
	}{
		{"malformed id", owner, "abc"},
		{"unknown session", owner, uuid.NewString()},
		{"someone else's session", uuid.New(), first.SessionID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Replan(context.Background(), tt.userID, tt.sessionID, feedback); !errors.Is(err, utils.ErrSessionNotFound) {
				t.Errorf("err = %v, want ErrSessionNotFound", err)
			}
		})
	}
	if len(f.feedback.rows) != 0 {
		t.Errorf("feedback recorded for a rejected replan")
	}
}

func TestItineraryService_ReplanKeepsVectorWhenPlanFails(t *testing.T) {
	f := newItineraryFixture()
	userID := uuid.New()
	ctx := context.Background()

	req := f.request()
	req.MustVisitIDs = []string{f.gallery.ID.String()}
	first, err := f.svc.Generate(ctx, userID, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := f.venues.Delete(ctx, f.gallery.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = f.svc.Replan(ctx, userID, first.SessionID, request_models.FeedbackRequest{
		VenueID: f.climb.ID.String(),
		Action:  "like",
	})
	if !errors.Is(err, utils.ErrVenueNotFound) {
		t.Fatalf("err = %v, want ErrVenueNotFound", err)
	}
	if pref, _ := f.prefs.GetByUserID(ctx, userID); pref != nil {
		t.Errorf("vector saved for a replan that failed: %+v", pref)
	}
	if len(f.feedback.rows) != 0 {
		t.Errorf("feedback recorded for a replan that failed: %+v", f.feedback.rows)
	}
	if len(f.repo.saved) != 1 {
		t.Errorf("saved %d itineraries, want only the first", len(f.repo.saved))
	}
}

func TestItineraryService_ReplanDiscardsUnreadableSession(t *testing.T) {
	f := newItineraryFixture()
	ctx := context.Background()
	sessionID := uuid.NewString()

	if err := f.sessions.Set(ctx, sessionID, []byte("{not json"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, err := f.svc.Replan(ctx, uuid.New(), sessionID, request_models.FeedbackRequest{
		VenueID: f.climb.ID.String(),
		Action:  "like",
	})
	if !errors.Is(err, utils.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if f.sessions.deletes != 1 {
		t.Errorf("deletes = %d, want 1", f.sessions.deletes)
	}
	if _, ok, _ := f.sessions.Get(ctx, sessionID); ok {
		t.Error("unreadable session is still stored")
	}
}

func TestItineraryService_GetAndList(t *testing.T) {
	f := newItineraryFixture()
	owner := uuid.New()

	created, err := f.svc.Generate(context.Background(), owner, f.request())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got, err := f.svc.GetItinerary(context.Background(), owner, created.ID)
	if err != nil {
		t.Fatalf("GetItinerary: %v", err)
	}
	if got.ID != created.ID || len(got.Steps) != len(created.Steps) || got.StartTime != "14:00" {
		t.Errorf("got %+v", got)
	}

	if _, err := f.svc.GetItinerary(context.Background(), uuid.New(), created.ID); !errors.Is(err, utils.ErrItineraryNotFound) {
		t.Errorf("other user: err = %v", err)
	}
	if _, err := f.svc.GetItinerary(context.Background(), owner, "x"); !errors.Is(err, utils.ErrItineraryNotFound) {
		t.Errorf("malformed id: err = %v", err)
	}

	list, err := f.svc.ListItineraries(context.Background(), owner, 1, 10)
	if err != nil || len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v, %v", list, err)
	}
	if _, err := f.svc.ListItineraries(context.Background(), owner, 0, 10); !errors.Is(err, utils.ErrInvalidPage) {
		t.Errorf("page 0: err = %v", err)
	}
}

func TestPlanningSession_Exclude(t *testing.T) {
	s := planningSession{Request: request_models.GenerateItineraryRequest{
		StartVenueID: "start",
		EndVenueID:   "end",
		MustVisitIDs: []string{"a", "b"},
		LockedSteps:  map[int]string{1: "a", 2: "c"},
	}}

	s.exclude("a")
	s.exclude("a")
	s.exclude("start")
	s.exclude("end")

	if len(s.Excluded) != 1 || s.Excluded[0] != "a" {
		t.Errorf("excluded = %v", s.Excluded)
	}
	if len(s.Request.MustVisitIDs) != 1 || s.Request.MustVisitIDs[0] != "b" {
		t.Errorf("must visit = %v", s.Request.MustVisitIDs)
	}
	if _, ok := s.Request.LockedSteps[1]; ok || s.Request.LockedSteps[2] != "c" {
		t.Errorf("locks = %v", s.Request.LockedSteps)
	}
}
