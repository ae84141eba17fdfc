package domain

// Country is fully derived, never stored. It appears and disappears as a
// side effect of city creation and deletion.
type Country struct {
	Name      string `json:"name"`
	CityCount int    `json:"city_count"`
}

// ReviewStats is recomputed from the current reviews on every read; it is
// never persisted. Average is nil when no review carries a valid rating,
// so a renderer can distinguish "unrated" from an actual 0.
type ReviewStats struct {
	Count   int      `json:"count"`
	Rated   int      `json:"rated"`
	Average *float64 `json:"average,omitempty"`
}
