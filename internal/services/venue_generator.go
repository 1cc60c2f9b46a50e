package services

import (
	"fmt"
	"math"
	"math/rand"

	"datecourse/internal/models/request_models"
	"datecourse/internal/planner"
)

// VenueGenerator produces plausible demo venues around a centre point.
// The same seed always yields the same venues.
type VenueGenerator struct {
	rng *rand.Rand
}

func NewVenueGenerator(seed int64) *VenueGenerator {
	return &VenueGenerator{rng: rand.New(rand.NewSource(seed))}
}

type venueTemplate struct {
	category planner.Category
	names    []string
	themes   []string
	indoor   float64 // probability
	minutes  []int
}

var venueTemplates = []venueTemplate{
	{planner.CategoryCafe, []string{"Quiet Corner Cafe", "Roastery", "Book Cafe", "Garden Cafe", "Dessert Cafe"}, []string{"coffee", "quiet", "dessert"}, 0.9, []int{45, 60}},
	{planner.CategoryRestaurant, []string{"Grill House", "Sushi Bar", "Noodle Kitchen", "Bibimbap House", "Seafood Table", "Steak Dining"}, []string{"dinner", "lunch", "date"}, 1, []int{60, 75, 90}},
	{planner.CategoryActivity, []string{"Climbing Gym", "Bowling Alley", "Escape Room", "Pottery Workshop"}, []string{"active", "experience"}, 0.8, []int{60, 90, 120}},
	{planner.CategoryShopping, []string{"Vintage Market", "Select Shop", "Design Store"}, []string{"shopping", "vintage"}, 0.7, []int{30, 45, 60}},
	{planner.CategoryBakery, []string{"Croissant Bakery", "Bread Lab", "Morning Bakery"}, []string{"bread", "dessert"}, 1, []int{30, 45}},
	{planner.CategoryBar, []string{"Wine Lounge", "Cocktail Bar", "Rooftop Bar"}, []string{"night", "drinks"}, 0.8, []int{60, 90}},
	{planner.CategoryCulture, []string{"Art Gallery", "City Museum", "Small Theatre", "Photo Library"}, []string{"art", "exhibition", "quiet"}, 1, []int{60, 90}},
	{planner.CategoryLandmark, []string{"River Park", "Old Palace Garden", "Forest Walk", "Observation Deck"}, []string{"walk", "view", "nature"}, 0.1, []int{45, 60, 90}},
}

// Generate returns n venues scattered uniformly within radiusKm of the centre.
func (g *VenueGenerator) Generate(centerLat, centerLng, radiusKm float64, n int, district string) []request_models.CreateVenueRequest {
	out := make([]request_models.CreateVenueRequest, 0, n)
	for i := 0; i < n; i++ {
		tpl := venueTemplates[g.rng.Intn(len(venueTemplates))]
		lat, lng := g.scatter(centerLat, centerLng, radiusKm)

		req := request_models.CreateVenueRequest{
			Name:         fmt.Sprintf("%s %d", tpl.names[g.rng.Intn(len(tpl.names))], i+1),
			Category:     string(tpl.category),
			District:     district,
			Latitude:     lat,
			Longitude:    lng,
			Indoor:       g.rng.Float64() < tpl.indoor,
			Themes:       g.pickThemes(tpl.themes),
			VisitMinutes: tpl.minutes[g.rng.Intn(len(tpl.minutes))],
		}
		req.Description = fmt.Sprintf("A %s near %s.", tpl.category, districtOrCentre(district))

		switch tpl.category {
		case planner.CategoryRestaurant:
			// Most restaurants serve both meals; a few are tagged for one.
			switch g.rng.Intn(4) {
			case 0:
				req.MealType = string(planner.MealLunch)
			case 1:
				req.MealType = string(planner.MealDinner)
			}
		case planner.CategoryCafe, planner.CategoryBakery:
			req.MealType = string(planner.MealCafe)
		}

		out = append(out, req)
	}
	return out
}

// scatter picks a point uniformly over the disc using an equirectangular offset.
func (g *VenueGenerator) scatter(lat, lng, radiusKm float64) (float64, float64) {
	const kmPerDegree = 111.32

	r := radiusKm * math.Sqrt(g.rng.Float64())
	theta := 2 * math.Pi * g.rng.Float64()

	dLat := r * math.Cos(theta) / kmPerDegree
	dLng := r * math.Sin(theta) / (kmPerDegree * math.Cos(lat*math.Pi/180))
	return round6(lat + dLat), round6(lng + dLng)
}

func (g *VenueGenerator) pickThemes(pool []string) []string {
	n := 1 + g.rng.Intn(len(pool))
	picked := make([]string, 0, n)
	for _, idx := range g.rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}

func districtOrCentre(district string) string {
	if district == "" {
		return "the centre"
	}
	return district
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
