// Package catalog holds the pure projections derived from the normalized
// city collection: the country index, per-city review statistics, search
// filtering and main-image resolution. Nothing here does I/O or keeps
// state between calls.
package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cityverse/backend/internal/domain"
)

// CountryIndex groups cities by their trimmed, case-preserving country
// string and counts them. Blank countries are excluded. Matching is
// case- and whitespace-sensitive on purpose: "spain" and "Spain" are
// distinct groups, a limitation carried from the data's origin rather
// than normalized away silently.
func CountryIndex(cities []domain.City) []domain.Country {
	counts := make(map[string]int)
	for _, city := range cities {
		country := strings.TrimSpace(city.Country)
		if country == "" {
			continue
		}
		counts[country]++
	}

	index := make([]domain.Country, 0, len(counts))
	for name, count := range counts {
		index = append(index, domain.Country{Name: name, CityCount: count})
	}
	sort.Slice(index, func(i, j int) bool {
		return index[i].Name < index[j].Name
	})

	return index
}

// Stats recomputes the review statistics from the current reviews. Count
// reflects every stored review; the average only the valid ratings, and
// it stays nil when there are none so 0 never masquerades as a rating.
func Stats(reviews []domain.Review) domain.ReviewStats {
	stats := domain.ReviewStats{Count: len(reviews)}

	var sum float64
	for _, review := range reviews {
		if !review.RatingValid() {
			continue
		}
		stats.Rated++
		sum += review.Rating
	}

	if stats.Rated > 0 {
		avg := sum / float64(stats.Rated)
		stats.Average = &avg
	}

	return stats
}

// Filter applies the client-side query the store cannot do itself:
// country must match exactly when given, and the text query matches
// case-insensitively against name, country and description. Input order
// is preserved.
func Filter(cities []domain.City, country string, query string) []domain.City {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.City, 0, len(cities))
	for _, city := range cities {
		if country != "" && city.Country != country {
			continue
		}
		if query != "" && !matchesQuery(city, query) {
			continue
		}
		out = append(out, city)
	}
	return out
}

func matchesQuery(city domain.City, query string) bool {
	return strings.Contains(strings.ToLower(city.Name), query) ||
		strings.Contains(strings.ToLower(city.Country), query) ||
		strings.Contains(strings.ToLower(city.Description), query)
}

// MapsURL derives the external map link for a city.
func MapsURL(city domain.City) string {
	q := url.QueryEscape(fmt.Sprintf("%s, %s", city.Name, city.Country))
	return "https://www.google.com/maps/search/?api=1&query=" + q
}
