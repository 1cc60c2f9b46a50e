// Package planner builds time-boxed outing itineraries from a pool of venues.
//
// The package is pure computation: it performs no I/O, keeps no package state and
// never mutates the venues or options it is given. Callers that want to re-plan
// after feedback simply call Generate again with updated inputs.
package planner

type Category string

const (
	CategoryActivity   Category = "activity"
	CategoryCafe       Category = "cafe"
	CategoryRestaurant Category = "restaurant"
	CategoryShopping   Category = "shopping"
	CategoryBakery     Category = "bakery"
	CategoryBar        Category = "bar"
	CategoryCulture    Category = "culture"
	CategoryLandmark   Category = "landmark"
)

// AllCategories lists the closed category set in a stable order.
var AllCategories = []Category{
	CategoryActivity,
	CategoryCafe,
	CategoryRestaurant,
	CategoryShopping,
	CategoryBakery,
	CategoryBar,
	CategoryCulture,
	CategoryLandmark,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

type MealType string

const (
	MealNone   MealType = ""
	MealLunch  MealType = "lunch"
	MealDinner MealType = "dinner"
	MealCafe   MealType = "cafe"
)

type Companion string

const (
	CompanionSolo    Companion = "solo"
	CompanionPartner Companion = "partner"
	CompanionFriend  Companion = "friend"
	CompanionFamily  Companion = "family"
)

type Transport string

const (
	TransportFoot Transport = "foot"
	TransportCar  Transport = "car"
)

type Intensity string

const (
	IntensityRelaxed Intensity = "relaxed"
	IntensityPacked  Intensity = "packed"
)

// DefaultVisitMinutes is used when a venue carries no duration estimate.
const DefaultVisitMinutes = 60

// Venue is a read-only candidate stop. The planner trusts that coordinates, id and
// category were validated by whoever assembled the pool.
type Venue struct {
	ID          string
	Name        string
	LocalName   string
	Category    Category
	Lat         float64
	Lng         float64
	Indoor      bool
	Description string
	Themes      []string
	MealType    MealType

	// VisitMinutes is the estimated stay; zero means DefaultVisitMinutes.
	VisitMinutes int
}

func (v Venue) visitMinutes() int {
	if v.VisitMinutes <= 0 {
		return DefaultVisitMinutes
	}
	return v.VisitMinutes
}

// MealWindow is a [Start, End) range in minutes since midnight.
type MealWindow struct {
	Start int
	End   int
}

func (w MealWindow) Contains(minute int) bool {
	return minute >= w.Start && minute < w.End
}

var (
	DefaultLunchWindow  = MealWindow{Start: 11*60 + 30, End: 13*60 + 30}
	DefaultDinnerWindow = MealWindow{Start: 17 * 60, End: 19*60 + 30}
)

type Weather struct {
	Temperature float64
	IsRaining   bool
}

// DefaultWeather is assumed when no weather snapshot is available.
var DefaultWeather = Weather{Temperature: 20}

// Options configures a single Generate call. Times are minutes since midnight.
type Options struct {
	Start     *Venue
	StartTime int
	End       *Venue
	// EndTime is an explicit latest finish; zero means unbounded (duration only).
	EndTime   int

	MustVisit []Venue

	// LockedSteps pins a venue to a sequence index (0 is the start venue).
	LockedSteps map[int]Venue

	Lunch  MealWindow
	Dinner MealWindow

	Companion     Companion
	Transport     Transport
	Intensity     Intensity
	DurationHours float64
	Weather       Weather

	// UserVector defaults to the neutral vector when nil.
	UserVector *Vector
	// Scorer overrides the default vector scorer when set.
	Scorer     Scorer
}

// withDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Lunch == (MealWindow{}) {
		o.Lunch = DefaultLunchWindow
	}
	if o.Dinner == (MealWindow{}) {
		o.Dinner = DefaultDinnerWindow
	}
	if o.Companion == "" {
		o.Companion = CompanionSolo
	}
	if o.Transport == "" {
		o.Transport = TransportFoot
	}
	if o.Intensity == "" {
		o.Intensity = IntensityRelaxed
	}
	if o.DurationHours <= 0 {
		o.DurationHours = 6
	}
	if o.UserVector == nil {
		neutral := NewVector()
		o.UserVector = &neutral
	}
	if o.Scorer == nil {
		o.Scorer = VectorScorer{}
	}
	return o
}

// MaxEndTime is the earlier of the explicit end time and start + duration.
func (o Options) MaxEndTime() int {
	byDuration := o.StartTime + int(o.DurationHours*60)
	if o.EndTime > 0 && o.EndTime < byDuration {
		return o.EndTime
	}
	return byDuration
}

type Step struct {
	Venue         Venue
	// Start is the arrival time, or the meal window opening if arrival was earlier.
	Start         int
	End           int
	TravelMinutes int
	DistanceKm    float64
	MealType      MealType
}

type Itinerary struct {
	Steps    []Step
	Sequence []Venue

	// TotalDistanceKm is rounded to one decimal.
	TotalDistanceKm float64
	// TotalMinutes runs from the start time to the end of the final step.
	TotalMinutes    int
}
