package planner

import "math"

const (
	// minFillMinutes is the smallest remaining budget worth trying to fill.
	minFillMinutes = 30

	shortOutingMinutes = 180
)

// Generate builds an itinerary from the venue pool. It routes the must-visit anchors
// first, then greedily fills the remaining time, and closes on the end venue when one
// is given and still reachable.
//
// Generate returns nil only when opts.Start is nil. An itinerary with fewer steps than
// the time budget allows is a normal outcome when constraints cannot all be met.
func Generate(pool []Venue, opts Options) *Itinerary {
	if opts.Start == nil {
		return nil
	}

	b := newBuilder(pool, opts.withDefaults())
	b.routeAnchors()
	b.fill()
	b.finish()
	return b.itinerary()
}

type builder struct {
	opts   Options
	pool   []Venue
	maxEnd int

	steps          []Step
	visited        map[string]bool
	reserved       map[string]bool
	anchors        map[string]bool
	categoryCounts map[Category]int

	current    Venue
	now        int
	lunchDone  bool
	dinnerDone bool
}

func newBuilder(pool []Venue, opts Options) *builder {
	b := &builder{
		opts:           opts,
		pool:           pool,
		maxEnd:         opts.MaxEndTime(),
		visited:        make(map[string]bool),
		reserved:       make(map[string]bool),
		anchors:        make(map[string]bool),
		categoryCounts: make(map[Category]int),
		current:        *opts.Start,
		now:            opts.StartTime,
	}

	b.steps = append(b.steps, Step{
		Venue: *opts.Start,
		Start: opts.StartTime,
		End:   opts.StartTime,
	})
	b.visited[opts.Start.ID] = true

	for _, a := range opts.MustVisit {
		b.reserved[a.ID] = true
		b.anchors[a.ID] = true
	}
	if end := b.endVenue(); end != nil {
		b.reserved[end.ID] = true
	}
	for _, v := range opts.LockedSteps {
		b.reserved[v.ID] = true
	}
	return b
}

// endVenue is the requested final venue, ignoring an end equal to the start.
func (b *builder) endVenue() *Venue {
	end := b.opts.End
	if end == nil || end.ID == b.opts.Start.ID {
		return nil
	}
	return end
}

// routeAnchors visits the must-visit venues in order. The end venue is held back for
// finish so that time can be filled before it.
func (b *builder) routeAnchors() {
	end := b.endVenue()
	for _, anchor := range b.opts.MustVisit {
		if b.now >= b.maxEnd {
			return
		}
		if b.visited[anchor.ID] || (end != nil && anchor.ID == end.ID) {
			continue
		}
		b.routeTo(anchor)
	}
}

// fill adds the best-scoring feasible venue for the current time of day until the
// budget runs out or nothing fits.
func (b *builder) fill() {
	for b.maxEnd-b.now >= minFillMinutes {
		c, ok := b.pick(b.fillSlot(), b.keepEndReachable())
		if !ok {
			return
		}
		b.place(c)
	}
}

func (b *builder) finish() {
	if end := b.endVenue(); end != nil && !b.visited[end.ID] {
		b.routeTo(*end)
	}
}

// routeTo walks to target, inserting intermediate stops while a foot hop is longer than
// the walking cutoff. When no stop helps, the target is joined directly anyway: anchors are
// user-mandated. It reports whether target was placed.
func (b *builder) routeTo(target Venue) bool {
	for b.current.ID != target.ID {
		hop := venueDistance(b.current, target)
		if b.opts.Transport == TransportFoot && hop > MaxWalkKm {
			if c, ok := b.pick(b.bridgeSlot(), b.bridgeToward(target, hop)); ok {
				b.place(c)
				continue
			}
		}
		return b.placeDirect(target, hop)
	}
	return true
}

// placeDirect appends target without category, meal-window or walking checks; only the
// time budget applies.
func (b *builder) placeDirect(target Venue, hop float64) bool {
	travel := TravelMinutes(hop, b.opts.Transport)
	start := b.now + travel
	end := start + stayMinutes(target, b.opts.Intensity)
	if end > b.maxEnd {
		return false
	}
	b.place(candidate{
		venue:    target,
		distance: hop,
		travel:   travel,
		start:    start,
		end:      end,
		meal:     b.anchorMeal(target, start),
	})
	return true
}

// anchorMeal labels a directly placed venue. Its own meal tag wins; otherwise a
// restaurant reached inside an open meal window counts as that meal.
func (b *builder) anchorMeal(v Venue, arrival int) MealType {
	if v.MealType == MealLunch || v.MealType == MealDinner {
		return v.MealType
	}
	if v.Category != CategoryRestaurant {
		return MealNone
	}
	switch {
	case b.mealOpen(MealLunch) && b.opts.Lunch.Contains(arrival):
		return MealLunch
	case b.mealOpen(MealDinner) && b.opts.Dinner.Contains(arrival):
		return MealDinner
	}
	return MealNone
}

// mealOpen reports whether a meal may still be scheduled. Short outings only take a meal
// whose whole window they span; longer ones may eat in a window they leave early, the
// filter still requiring the stay to end by maxEnd.
func (b *builder) mealOpen(meal MealType) bool {
	var window MealWindow
	switch meal {
	case MealLunch:
		if b.lunchDone {
			return false
		}
		window = b.opts.Lunch
	case MealDinner:
		if b.dinnerDone {
			return false
		}
		window = b.opts.Dinner
	default:
		return false
	}
	if b.maxEnd >= window.End {
		return true
	}
	return b.maxEnd-b.opts.StartTime > shortOutingMinutes && b.maxEnd > window.Start
}

// mealSlot returns the lunch or dinner slot when the current time sits in an open window.
func (b *builder) mealSlot() (slot, bool) {
	lunch, dinner := b.opts.Lunch, b.opts.Dinner
	switch {
	case b.mealOpen(MealLunch) && lunch.Contains(b.now):
		return slot{categories: restaurantOnly, meal: MealLunch, window: &lunch}, true
	case b.mealOpen(MealDinner) && dinner.Contains(b.now):
		return slot{categories: restaurantOnly, meal: MealDinner, window: &dinner}, true
	}
	return slot{}, false
}

// fillSlot derives the next step's shape purely from the time of day.
func (b *builder) fillSlot() slot {
	if s, ok := b.mealSlot(); ok {
		s.fallback = roamCategories
		return s
	}
	if b.now >= b.opts.Lunch.End && b.now < b.opts.Dinner.Start {
		return slot{categories: dessertCategories, fallback: roamCategories, meal: MealCafe}
	}
	return slot{categories: roamCategories, fallback: roamFallback}
}

// bridgeSlot shapes an intermediate stop on the way to an anchor.
func (b *builder) bridgeSlot() slot {
	if s, ok := b.mealSlot(); ok {
		s.fallback = nonDining
		return s
	}
	return slot{categories: nonDining}
}

// bridgeToward accepts stops that get closer to target and still leave time to reach it.
func (b *builder) bridgeToward(target Venue, hop float64) func(candidate) bool {
	return func(c candidate) bool {
		remaining := venueDistance(c.venue, target)
		if remaining >= hop {
			return false
		}
		return b.fitsAfter(c, target, remaining)
	}
}

// keepEndReachable stops the fill from spending the time needed to reach the end venue,
// as long as that venue is reachable at all.
func (b *builder) keepEndReachable() func(candidate) bool {
	end := b.endVenue()
	if end == nil || b.visited[end.ID] {
		return nil
	}
	fromHere := venueDistance(b.current, *end)
	if b.now+TravelMinutes(fromHere, b.opts.Transport)+stayMinutes(*end, b.opts.Intensity) > b.maxEnd {
		return nil
	}
	return func(c candidate) bool {
		return b.fitsAfter(c, *end, venueDistance(c.venue, *end))
	}
}

func (b *builder) fitsAfter(c candidate, target Venue, distance float64) bool {
	return c.end+TravelMinutes(distance, b.opts.Transport)+stayMinutes(target, b.opts.Intensity) <= b.maxEnd
}

func (b *builder) filter(accept func(candidate) bool) stepFilter {
	return stepFilter{
		now:       b.now,
		from:      b.current,
		visited:   b.visited,
		reserved:  b.reserved,
		maxEnd:    b.maxEnd,
		transport: b.opts.Transport,
		intensity: b.opts.Intensity,
		lunch:     b.opts.Lunch,
		dinner:    b.opts.Dinner,
		accept:    accept,
	}
}

// pick chooses the next step: a valid pinned venue for this index if there is one,
// otherwise the best-scoring feasible candidate. Ties keep pool order.
func (b *builder) pick(s slot, accept func(candidate) bool) (candidate, bool) {
	f := b.filter(accept)

	if locked, ok := b.lockedAt(len(b.steps)); ok {
		meal, window := MealNone, (*MealWindow)(nil)
		if locked.Category == CategoryRestaurant && (s.meal == MealLunch || s.meal == MealDinner) {
			meal, window = s.meal, s.window
		}
		if c, ok := f.evaluate(locked, meal, window); ok {
			return c, true
		}
	}

	var (
		best      candidate
		bestScore = math.Inf(-1)
		found     bool
	)
	for _, c := range f.candidates(b.pool, s) {
		score := b.opts.Scorer.Score(c.venue, b.scoreContext(c.distance))
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}

// lockedAt returns the venue pinned to index. Anchors and the end venue keep their
// routed positions, so a pin on one of them is ignored.
func (b *builder) lockedAt(index int) (Venue, bool) {
	locked, ok := b.opts.LockedSteps[index]
	if !ok || b.visited[locked.ID] || b.anchors[locked.ID] {
		return Venue{}, false
	}
	if end := b.endVenue(); end != nil && end.ID == locked.ID {
		return Venue{}, false
	}
	return locked, true
}

func (b *builder) scoreContext(hopKm float64) ScoreContext {
	return ScoreContext{
		UserVector:     *b.opts.UserVector,
		CategoryCounts: b.categoryCounts,
		Weather:        b.opts.Weather,
		Companion:      b.opts.Companion,
		Transport:      b.opts.Transport,
		HopKm:          hopKm,
	}
}

func (b *builder) place(c candidate) {
	b.steps = append(b.steps, Step{
		Venue:         c.venue,
		Start:         c.start,
		End:           c.end,
		TravelMinutes: c.travel,
		DistanceKm:    c.distance,
		MealType:      c.meal,
	})
	b.visited[c.venue.ID] = true
	b.categoryCounts[c.venue.Category]++
	b.current = c.venue
	b.now = c.end

	switch c.meal {
	case MealLunch:
		b.lunchDone = true
	case MealDinner:
		b.dinnerDone = true
	}
}

func (b *builder) itinerary() *Itinerary {
	it := &Itinerary{
		Steps:    b.steps,
		Sequence: make([]Venue, 0, len(b.steps)),
	}
	total := 0.0
	for _, s := range b.steps {
		it.Sequence = append(it.Sequence, s.Venue)
		total += s.DistanceKm
	}
	it.TotalDistanceKm = math.Round(total*10) / 10
	it.TotalMinutes = b.steps[len(b.steps)-1].End - b.opts.StartTime
	return it
}
