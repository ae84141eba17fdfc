// Package normalize is the single boundary between the loosely-typed
// remote records and the canonical domain shapes. Every read passes
// through here exactly once; legacy field names never leak past it.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cityverse/backend/internal/domain"
	"github.com/pkg/errors"
)

// City coerces one raw record into the canonical shape. Malformed
// individual fields degrade to documented defaults and never fail; only a
// record that is not a JSON object at all is rejected.
func City(id string, raw json.RawMessage) (domain.City, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.City{}, errors.Wrapf(domain.ErrMalformedData, "record %s is not an object", id)
	}
	if fields == nil {
		return domain.City{}, errors.Wrapf(domain.ErrMalformedData, "record %s is empty", id)
	}

	city := domain.City{
		ID:               id,
		Name:             String(fields["name"]),
		Country:          String(fields["country"]),
		Description:      String(fields["description"]),
		MainImage:        String(firstPresent(fields, "mainImage", "main_image")),
		Image:            String(fields["image"]),
		Images:           StringList(fields["images"]),
		PointsOfInterest: PointsOfInterest(fields["pointsOfInterest"]),
		Reviews:          Reviews(fields["reviews"]),
	}

	if v, ok := Number(firstPresent(fields, "averageRating", "averagerating")); ok {
		city.AverageRating = &v
	}

	return city, nil
}

// String coerces any value to a trimmed string; non-strings and nulls
// become the empty string.
func String(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// StringList keeps only entries that are non-empty strings after trim,
// preserving order. Anything that is not a list becomes an empty one.
func StringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := String(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PointsOfInterest lifts legacy bare-string entries to {name} and drops
// entries without a name. The url defaults to empty.
func PointsOfInterest(v any) []domain.PointOfInterest {
	items, ok := v.([]any)
	if !ok {
		return []domain.PointOfInterest{}
	}

	out := make([]domain.PointOfInterest, 0, len(items))
	for _, item := range items {
		switch poi := item.(type) {
		case string:
			if name := strings.TrimSpace(poi); name != "" {
				out = append(out, domain.PointOfInterest{Name: name, URL: ""})
			}
		case map[string]any:
			name := String(poi["name"])
			if name == "" {
				continue
			}
			out = append(out, domain.PointOfInterest{
				Name: name,
				URL:  String(poi["url"]),
			})
		}
	}
	return out
}

// Reviews keeps entries even when user or comment is missing (the display
// layer can show "Anonymous"); a rating that does not parse to a finite
// number degrades to 0, which excludes it from aggregation while the
// review itself is retained for display.
func Reviews(v any) []domain.Review {
	items, ok := v.([]any)
	if !ok {
		return []domain.Review{}
	}

	out := make([]domain.Review, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		review := domain.Review{
			User:    String(fields["user"]),
			Comment: String(fields["comment"]),
		}
		if rating, ok := Number(fields["rating"]); ok {
			review.Rating = rating
		}
		out = append(out, review)
	}
	return out
}

// Number is the safe numeric coercion: floats, json.Number and numeric
// strings pass through; everything else, including NaN and infinities,
// reports !ok so callers fall back to a documented default instead of
// propagating NaN.
func Number(v any) (float64, bool) {
	var n float64
	switch value := v.(type) {
	case float64:
		n = value
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func firstPresent(fields map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := fields[key]; ok && v != nil {
			return v
		}
	}
	return nil
}
