package services

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"datecourse/internal/models/db_models"
	"datecourse/internal/planner"
	"datecourse/internal/repositories"
	mem "datecourse/pkg/memcache"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

const (
	testLat = 37.5665
	testLng = 126.9780
)

// venueAt builds a stored venue the given kilometres north and east of the test centre.
func venueAt(name string, category planner.Category, northKm, eastKm float64) db_models.Venue {
	const kmPerDegree = 6371.0 * math.Pi / 180
	v := db_models.Venue{
		Name:         name,
		Category:     string(category),
		District:     "jongno",
		Latitude:     testLat + northKm/kmPerDegree,
		Longitude:    testLng + eastKm/(kmPerDegree*math.Cos(testLat*math.Pi/180)),
		Indoor:       true,
		Themes:       pq.StringArray{},
		VisitMinutes: 60,
	}
	v.ID = uuid.New()
	v.RefreshFeatures()
	return v
}

type fakeVenueRepo struct {
	mu     sync.Mutex
	venues []db_models.Venue
	err    error
}

var _ repositories.VenueRepository = (*fakeVenueRepo)(nil)

func (r *fakeVenueRepo) CreateVenue(_ context.Context, venue *db_models.Venue) (uuid.UUID, error) {
	if r.err != nil {
		return uuid.Nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}
	r.venues = append(r.venues, *venue)
	return venue.ID, nil
}

func (r *fakeVenueRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.venues[:0]
	for _, v := range r.venues {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	r.venues = kept
	return nil
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id string) (*db_models.Venue, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.venues {
		if v.ID.String() == id {
			found := v
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeVenueRepo) GetByIDs(_ context.Context, ids []string) ([]db_models.Venue, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []db_models.Venue
	for _, v := range r.venues {
		if want[v.ID.String()] {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVenueRepo) List(ctx context.Context, district string, page, pageSize int) ([]db_models.Venue, error) {
	all, err := r.ListAll(ctx, district)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	from := (page - 1) * pageSize
	if from >= len(all) {
		return nil, nil
	}
	to := from + pageSize
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], nil
}

func (r *fakeVenueRepo) ListAll(_ context.Context, district string) ([]db_models.Venue, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Venue
	for _, v := range r.venues {
		if district == "" || v.District == district {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVenueRepo) NearestByFeatures(_ context.Context, vector pgvector.Vector, limit int) ([]repositories.ScoredVenue, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user := db_models.VectorFromPg(vector)
	out := make([]repositories.ScoredVenue, 0, len(r.venues))
	for _, v := range r.venues {
		out = append(out, repositories.ScoredVenue{
			Venue:      v,
			Similarity: planner.CosineSimilarity(user, db_models.VectorFromPg(v.Features)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePreferenceRepo struct {
	mu    sync.Mutex
	prefs map[uuid.UUID]db_models.UserPreference
	err   error
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: make(map[uuid.UUID]db_models.UserPreference)}
}

func (r *fakePreferenceRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*db_models.UserPreference, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pref, ok := r.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &pref, nil
}

func (r *fakePreferenceRepo) Upsert(_ context.Context, pref *db_models.UserPreference) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[pref.UserID] = *pref
	return nil
}

type fakeFeedbackRepo struct {
	mu   sync.Mutex
	rows []db_models.Feedback
	err  error
}

func (r *fakeFeedbackRepo) CreateFeedback(_ context.Context, feedback *db_models.Feedback) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *feedback)
	return nil
}

func (r *fakeFeedbackRepo) ListByUser(_ context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Feedback, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Feedback
	for _, f := range r.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	from := (page - 1) * pageSize
	if from >= len(out) {
		return nil, nil
	}
	to := from + pageSize
	if to > len(out) {
		to = len(out)
	}
	return out[from:to], nil
}

type fakeItineraryRepo struct {
	mu    sync.Mutex
	saved []db_models.Itinerary
	err   error
}

func (r *fakeItineraryRepo) Create(_ context.Context, itinerary *db_models.Itinerary) (uuid.UUID, error) {
	if r.err != nil {
		return uuid.Nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	itinerary.ID = uuid.New()
	r.saved = append(r.saved, *itinerary)
	return itinerary.ID, nil
}

func (r *fakeItineraryRepo) GetByID(_ context.Context, id string) (*db_models.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.saved {
		if it.ID.String() == id {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeItineraryRepo) ListByUser(_ context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Itinerary
	for _, it := range r.saved {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeWeather struct {
	mu      sync.Mutex
	weather planner.Weather
	calls   int
}

func (w *fakeWeather) Current(context.Context, float64, float64) planner.Weather {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	return w.weather
}

// recordingSessions counts writes on top of the in-memory session store.
type recordingSessions struct {
	*mem.MemoryStore

	mu      sync.Mutex
	sets    int
	deletes int
}

func newRecordingSessions() *recordingSessions {
	return &recordingSessions{MemoryStore: mem.NewMemoryStore()}
}

func (s *recordingSessions) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func (s *recordingSessions) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.deletes++
	s.mu.Unlock()
	return s.MemoryStore.Delete(ctx, key)
}
