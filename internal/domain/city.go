package domain

import "math"

// City is the canonical, fully normalized shape of one record from the
// remote collection. Every field is present and correctly typed; the
// normalizer guarantees Reviews, Images and PointsOfInterest are never nil.
type City struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Country          string            `json:"country"`
	Description      string            `json:"description"`
	MainImage        string            `json:"main_image"`
	Image            string            `json:"image"`
	Images           []string          `json:"images"`
	PointsOfInterest []PointOfInterest `json:"points_of_interest"`
	Reviews          []Review          `json:"reviews"`
	// AverageRating is the author-supplied value from creation time. It is
	// distinct from the computed review average (ReviewStats.Average).
	AverageRating *float64 `json:"average_rating,omitempty"`
}

type PointOfInterest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Review has no identity of its own; it lives embedded in a City and is
// addressed by its position in the display order (newest first).
type Review struct {
	User    string  `json:"user"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// RatingValid reports whether the rating counts toward the computed
// average. Zero or negative values are data-entry defects: the review is
// still displayed but excluded from aggregation.
func (r Review) RatingValid() bool {
	return r.Rating > 0 && !math.IsInf(r.Rating, 0) && !math.IsNaN(r.Rating)
}
