package planner

import "math"

const (
	baseLat     = 37.5665
	baseLng     = 126.9780
	kmPerDegree = earthRadiusKm * math.Pi / 180
)

// at places a venue the given kilometres north and east of the base point.
func at(id string, category Category, northKm, eastKm float64) Venue {
	return Venue{
		ID:       id,
		Name:     id,
		Category: category,
		Lat:      baseLat + northKm/kmPerDegree,
		Lng:      baseLng + eastKm/(kmPerDegree*math.Cos(baseLat*math.Pi/180)),
		Indoor:   true,
	}
}

func hm(hour, minute int) int {
	return hour*60 + minute
}

func ptr[T any](v T) *T {
	return &v
}

// neighbourhood is a walkable pool: every venue is within 0.7 km of the base point.
func neighbourhood() []Venue {
	cafe := at("cafe-moon", CategoryCafe, 0.2, -0.2)
	cafe.Name = "Moon Cafe"
	bakery := at("bakery-crust", CategoryBakery, -0.3, 0.1)
	bakery.Name = "Crust Bakery"
	lunch := at("rest-noodle", CategoryRestaurant, 0.3, 0.0)
	lunch.Name = "Noodle House"
	lunch.MealType = MealLunch
	quick := at("rest-quick", CategoryRestaurant, 0.1, 0.1)
	quick.VisitMinutes = 30
	park := at("park-river", CategoryLandmark, -0.5, -0.4)
	park.Indoor = false

	return []Venue{
		at("act-climb", CategoryActivity, 0.3, 0.3),
		at("act-bowl", CategoryActivity, -0.2, 0.5),
		at("culture-museum", CategoryCulture, 0.4, -0.1),
		at("shop-books", CategoryShopping, 0.0, 0.6),
		at("shop-market", CategoryShopping, -0.6, 0.0),
		cafe,
		bakery,
		lunch,
		quick,
		park,
		at("rest-grill", CategoryRestaurant, -0.4, 0.3),
		at("cafe-corner", CategoryCafe, 0.5, 0.4),
	}
}
