package planner

import (
	"math"
	"strings"
)

// Scorer ranks a feasible candidate. Higher is better; the range is unbounded.
type Scorer interface {
	Score(venue Venue, ctx ScoreContext) float64
}

// ScoreContext carries everything about the current step a scorer may look at.
type ScoreContext struct {
	UserVector     Vector
	// CategoryCounts counts categories already chosen in this itinerary.
	CategoryCounts map[Category]int
	Weather        Weather
	Companion      Companion
	Transport      Transport
	// HopKm is the distance from the current location to the candidate.
	HopKm          float64
}

const diversityDecay = 0.6

// DiversityMultiplier returns 0.6^repeats: 1.0 for a first visit to a category, 0.6 for the second, and so on.
func DiversityMultiplier(repeats int) float64 {
	if repeats <= 0 {
		return 1
	}
	return math.Pow(diversityDecay, float64(repeats))
}

var (
	premiumNameKeywords = []string{"steak", "pasta", "sushi", "dining", "lounge", "bakery"}
	chainBrands         = []string{
		"starbucks", "mcdonald", "burger king", "kfc", "subway", "lotteria", "dunkin",
		"paris baguette", "tous les jours", "ediya", "twosome", "mega coffee", "compose coffee",
		"스타벅스", "맥도날드", "롯데리아", "파리바게뜨", "이디야", "메가커피", "빽다방",
	}
	romanticKeywords = []string{"romantic", "rooftop", "wine", "candle", "view", "terrace", "date", "로맨틱", "루프탑", "와인"}
	familyKeywords   = []string{"kids", "family", "children", "playground", "키즈", "가족", "어린이"}
	nightlifeWords   = []string{"bar", "pub", "club", "술집", "클럽", "호프"}
)

// VectorScorer is the composite desirability model: taste similarity with a diversity
// decay, then additive weather, keyword, distance and companion adjustments.
type VectorScorer struct{}

func (VectorScorer) Score(venue Venue, ctx ScoreContext) float64 {
	similarity := CosineSimilarity(ctx.UserVector, FeatureVector(venue)) * 100
	base := similarity * DiversityMultiplier(ctx.CategoryCounts[venue.Category])

	return base +
		weatherAdjustment(venue, ctx.Weather) +
		keywordAdjustment(venue) +
		distanceAdjustment(ctx.HopKm, ctx.Transport) +
		companionAdjustment(venue, ctx.Companion)
}

func weatherAdjustment(venue Venue, w Weather) float64 {
	adj := 0.0
	if w.IsRaining {
		if venue.Indoor {
			adj += 30
		} else {
			adj -= 200
		}
	}
	if !venue.Indoor && (w.Temperature > 30 || w.Temperature < 0) {
		adj -= 50
	}
	return adj
}

func keywordAdjustment(venue Venue) float64 {
	name := venueNameText(venue)
	adj := 0.0
	if containsAny(name, premiumNameKeywords) {
		adj += 20
	}
	if containsAny(name, chainBrands) {
		adj -= 100
	}
	return adj
}

func distanceAdjustment(km float64, transport Transport) float64 {
	if transport == TransportCar {
		return -math.Max(0, (math.Exp(km/10)-1)*20)
	}
	if km > MaxWalkKm {
		return -200
	}
	return -math.Max(0, (math.Exp(km/5)-1)*30)
}

func companionAdjustment(venue Venue, companion Companion) float64 {
	name := venueNameText(venue)
	adj := 0.0
	switch companion {
	case CompanionPartner:
		switch venue.Category {
		case CategoryRestaurant, CategoryCafe, CategoryBar:
			adj += 30
		}
		if containsAny(name, romanticKeywords) {
			adj += 40
		}
		if containsAny(name, familyKeywords) {
			adj -= 50
		}
	case CompanionFamily:
		if venue.Indoor {
			adj += 20
		}
		switch venue.Category {
		case CategoryActivity, CategoryLandmark, CategoryShopping:
			adj += 25
		case CategoryBar:
			adj -= 100
		}
		if containsWord(name, nightlifeWords) {
			adj -= 80
		}
	case CompanionFriend:
		switch venue.Category {
		case CategoryCafe, CategoryActivity, CategoryShopping:
			adj += 20
		}
	case CompanionSolo:
		switch venue.Category {
		case CategoryCafe, CategoryCulture, CategoryLandmark:
			adj += 15
		}
	}
	return adj
}

func venueNameText(venue Venue) string {
	return strings.ToLower(venue.Name + " " + venue.LocalName)
}

// containsWord matches whole whitespace-separated words so that "barbecue" is not a bar.
func containsWord(text string, words []string) bool {
	for _, field := range strings.Fields(text) {
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}
