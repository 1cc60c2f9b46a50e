package planner

import (
	"math"
	"strings"
)

type Dimension int

const (
	DimMeat Dimension = iota
	DimSeafood
	DimNoodle
	DimRice
	DimBread
	DimQuiet
	DimActive
	DimIndoor
	DimNature
	DimLuxury

	DimensionCount
)

var dimensionNames = [DimensionCount]string{
	"meat", "seafood", "noodle", "rice", "bread",
	"quiet", "active", "indoor", "nature", "luxury",
}

func (d Dimension) String() string {
	if d < 0 || d >= DimensionCount {
		return "unknown"
	}
	return dimensionNames[d]
}

// DimensionByName resolves a dimension from its lower-case name.
func DimensionByName(name string) (Dimension, bool) {
	for i, n := range dimensionNames {
		if n == name {
			return Dimension(i), true
		}
	}
	return 0, false
}

// NeutralValue is the starting value of every dimension.
const NeutralValue = 0.5

// Vector is a taste (or venue feature) vector over the fixed dimensions. Values live in [0,1].
type Vector [DimensionCount]float64

func NewVector() Vector {
	var v Vector
	for i := range v {
		v[i] = NeutralValue
	}
	return v
}

// Map returns the vector keyed by dimension name.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, DimensionCount)
	for i, val := range v {
		out[dimensionNames[i]] = val
	}
	return out
}

// VectorFromMap builds a vector from named values; missing dimensions are neutral.
func VectorFromMap(m map[string]float64) Vector {
	v := NewVector()
	for name, val := range m {
		if d, ok := DimensionByName(name); ok {
			v[d] = clamp01(val)
		}
	}
	return v
}

type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

const (
	likeDelta    = 0.10
	dislikeDelta = -0.20
)

var (
	meatKeywords    = []string{"meat", "bbq", "barbecue", "grill", "galbi", "고기", "갈비", "삼겹"}
	seafoodKeywords = []string{"seafood", "sushi", "sashimi", "fish", "oyster", "해산물", "초밥", "횟집"}
	noodleKeywords  = []string{"noodle", "ramen", "udon", "soba", "pho", "국수", "라멘", "냉면"}
	riceKeywords    = []string{"rice", "bibimbap", "donburi", "덮밥", "비빔밥", "백반"}
	breadKeywords   = []string{"bread", "bakery", "croissant", "빵", "베이커리"}
	quietKeywords   = []string{"quiet", "peaceful", "calm", "library", "조용"}
	activeKeywords  = []string{"active", "sport", "climbing", "bowling", "escape room", "체험", "스포츠"}
	natureKeywords  = []string{"park", "garden", "landmark", "forest", "river", "공원", "정원"}
	luxuryKeywords  = []string{"luxury", "fine dining", "fine-dining", "gourmet", "omakase", "파인다이닝"}
	premiumKeywords = []string{"steak", "lounge", "dining"}
)

// FeatureVector derives the venue's position in taste space from its category, text and
// indoor flag. Dimensions the venue says nothing about stay neutral.
func FeatureVector(venue Venue) Vector {
	v := NewVector()
	text := strings.ToLower(venue.Name + " " + venue.LocalName + " " + venue.Description)

	if containsAny(text, meatKeywords) {
		v[DimMeat] = 1.0
	}
	if containsAny(text, seafoodKeywords) {
		v[DimSeafood] = 1.0
	}
	if containsAny(text, noodleKeywords) {
		v[DimNoodle] = 1.0
	}
	if containsAny(text, riceKeywords) {
		v[DimRice] = 1.0
	}
	if venue.Category == CategoryBakery || containsAny(text, breadKeywords) {
		v[DimBread] = 1.0
	}
	if venue.Category == CategoryCulture || containsAny(text, quietKeywords) {
		v[DimQuiet] = 1.0
	}
	if venue.Category == CategoryActivity || containsAny(text, activeKeywords) {
		v[DimActive] = 1.0
	}

	if venue.Indoor {
		v[DimIndoor] = 1.0
		if venue.Category == CategoryLandmark || containsAny(text, natureKeywords) {
			v[DimNature] = 0.8
		}
	} else {
		v[DimNature] = 1.0
	}

	switch {
	case containsAny(text, luxuryKeywords):
		v[DimLuxury] = 1.0
	case containsAny(text, premiumKeywords):
		v[DimLuxury] = 0.8
	}
	return v
}

// CosineSimilarity returns the cosine of the angle between u and v, or 0 when either
// vector has zero magnitude. Non-negative inputs give a result in [0,1].
func CosineSimilarity(u, v Vector) float64 {
	var dot, normU, normV float64
	for i := range u {
		dot += u[i] * v[i]
		normU += u[i] * u[i]
		normV += v[i] * v[i]
	}
	if normU == 0 || normV == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normU) * math.Sqrt(normV))
	return math.Min(sim, 1)
}

// Similarity scores how well a venue matches the user's taste, in [0,1].
func Similarity(user Vector, venue Venue) float64 {
	return CosineSimilarity(user, FeatureVector(venue))
}

// UpdatePreference returns a copy of vector nudged toward (LIKE) or away from (DISLIKE)
// the dimensions the venue stands out on. Results are clamped to [0,1] and rounded to
// three decimals. Unknown actions return the vector unchanged.
func UpdatePreference(vector Vector, venue Venue, action Action) Vector {
	var delta float64
	switch action {
	case ActionLike:
		delta = likeDelta
	case ActionDislike:
		delta = dislikeDelta
	default:
		return vector
	}

	features := FeatureVector(venue)
	out := vector
	for i, f := range features {
		if f <= NeutralValue {
			continue
		}
		out[i] = round3(clamp01(out[i] + delta))
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
