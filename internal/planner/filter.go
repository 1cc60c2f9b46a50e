package planner

import "math"

const (
	packedStayFactor = 0.75
	minPackedStay    = 30
)

var (
	// roamCategories fill non-meal slots. Restaurants are never roam stops.
	roamCategories    = []Category{CategoryActivity, CategoryCafe, CategoryCulture, CategoryShopping}
	roamFallback      = []Category{CategoryLandmark, CategoryBakery, CategoryBar}
	dessertCategories = []Category{CategoryCafe, CategoryBakery}
	nonDining         = []Category{CategoryActivity, CategoryCafe, CategoryShopping, CategoryBakery, CategoryBar, CategoryCulture, CategoryLandmark}
	restaurantOnly    = []Category{CategoryRestaurant}
)

// slot describes what the next step is allowed to be.
type slot struct {
	categories []Category
	// fallback is tried, as a plain non-meal step, only when categories yields nothing.
	fallback   []Category
	meal       MealType
	// window bounds arrival for lunch and dinner steps.
	window     *MealWindow
}

type candidate struct {
	venue    Venue
	distance float64
	travel   int
	start    int
	end      int
	meal     MealType
}

// stepFilter narrows the pool to venues that can legally be the next step from the
// current place and time.
type stepFilter struct {
	now       int
	from      Venue
	visited   map[string]bool
	reserved  map[string]bool
	maxEnd    int
	transport Transport
	intensity Intensity
	lunch     MealWindow
	dinner    MealWindow
	// accept is an optional extra predicate applied after timing is known.
	accept    func(candidate) bool
}

// candidates returns feasible candidates in pool order. Reserved venues (anchors, the
// end venue, pinned venues) never surface here; they are placed explicitly.
func (f stepFilter) candidates(pool []Venue, s slot) []candidate {
	out := f.pass(pool, s.categories, s.meal, s.window)
	if len(out) == 0 && len(s.fallback) > 0 {
		out = f.pass(pool, s.fallback, MealNone, nil)
	}
	return out
}

func (f stepFilter) pass(pool []Venue, categories []Category, meal MealType, window *MealWindow) []candidate {
	var out []candidate
	for _, v := range pool {
		if f.reserved[v.ID] || !hasCategory(categories, v.Category) {
			continue
		}
		if c, ok := f.evaluate(v, meal, window); ok {
			out = append(out, c)
		}
	}
	return out
}

// evaluate applies every hard constraint except category membership.
func (f stepFilter) evaluate(v Venue, meal MealType, window *MealWindow) (candidate, bool) {
	if f.visited[v.ID] {
		return candidate{}, false
	}
	if !f.mealAllows(v, meal) {
		return candidate{}, false
	}

	distance := venueDistance(f.from, v)
	if f.transport == TransportFoot && distance > MaxWalkKm {
		return candidate{}, false
	}

	travel := TravelMinutes(distance, f.transport)
	arrival := f.now + travel
	start := arrival
	if window != nil {
		if arrival >= window.End {
			return candidate{}, false
		}
		if start < window.Start {
			start = window.Start
		}
	}
	end := start + stayMinutes(v, f.intensity)
	if end > f.maxEnd {
		return candidate{}, false
	}

	c := candidate{
		venue:    v,
		distance: distance,
		travel:   travel,
		start:    start,
		end:      end,
		meal:     meal,
	}
	if f.accept != nil && !f.accept(c) {
		return candidate{}, false
	}
	return c, true
}

func (f stepFilter) mealAllows(v Venue, meal MealType) bool {
	switch meal {
	case MealLunch, MealDinner:
		if v.Category != CategoryRestaurant {
			return false
		}
		// A restaurant tagged for the other meal is not a candidate for this one.
		if (v.MealType == MealLunch || v.MealType == MealDinner) && v.MealType != meal {
			return false
		}
		return true
	case MealCafe:
		return v.Category == CategoryCafe || v.Category == CategoryBakery
	default:
		if v.Category == CategoryRestaurant {
			return f.lunch.Contains(f.now) || f.dinner.Contains(f.now)
		}
		return true
	}
}

// stayMinutes is the planned visit length; packed outings trim each stop.
func stayMinutes(v Venue, intensity Intensity) int {
	stay := v.visitMinutes()
	if intensity != IntensityPacked {
		return stay
	}
	packed := int(math.Round(float64(stay) * packedStayFactor))
	if packed < minPackedStay {
		packed = min(stay, minPackedStay)
	}
	return packed
}

func hasCategory(categories []Category, c Category) bool {
	for _, known := range categories {
		if known == c {
			return true
		}
	}
	return false
}
