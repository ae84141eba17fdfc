package catalog

import (
	"testing"

	"github.com/cityverse/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryIndex(t *testing.T) {
	cities := []domain.City{
		{Name: "Madrid", Country: "Spain"},
		{Name: "Barcelona", Country: "Spain"},
		{Name: "Lisbon", Country: "Portugal"},
		{Name: "Nowhere", Country: ""},
		{Name: "Blank", Country: "   "},
	}

	index := CountryIndex(cities)

	assert.Equal(t, []domain.Country{
		{Name: "Portugal", CityCount: 1},
		{Name: "Spain", CityCount: 2},
	}, index)
}

func TestCountryIndex_CaseVariantsAreDistinctGroups(t *testing.T) {
	cities := []domain.City{
		{Country: "Spain"},
		{Country: "spain"},
	}

	index := CountryIndex(cities)

	require.Len(t, index, 2)
	assert.Equal(t, "Spain", index[0].Name)
	assert.Equal(t, "spain", index[1].Name)
}

func TestCountryIndex_EmptyCollection(t *testing.T) {
	index := CountryIndex(nil)
	assert.NotNil(t, index)
	assert.Empty(t, index)
}

func TestCountryIndex_Idempotent(t *testing.T) {
	cities := []domain.City{
		{Country: "Japan"},
		{Country: "Spain"},
		{Country: "Japan"},
	}

	first := CountryIndex(cities)
	second := CountryIndex(cities)

	assert.Equal(t, first, second)
}

func TestStats(t *testing.T) {
	reviews := []domain.Review{
		{User: "A", Rating: 5},
		{User: "B", Rating: 3},
	}

	stats := Stats(reviews)

	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 2, stats.Rated)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 4.0, *stats.Average, 1e-9)
}

func TestStats_InvalidRatingsExcludedFromMeanNotCount(t *testing.T) {
	reviews := []domain.Review{
		{User: "A", Comment: "great", Rating: 5},
		{User: "B", Comment: "no rating parsed", Rating: 0},
		{User: "C", Comment: "negative defect", Rating: -1},
	}

	stats := Stats(reviews)

	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 1, stats.Rated)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 5.0, *stats.Average, 1e-9)
}

func TestStats_NoValidRatingsMeansNoAverage(t *testing.T) {
	stats := Stats([]domain.Review{{User: "A", Rating: 0}})

	assert.Equal(t, 1, stats.Count)
	assert.Zero(t, stats.Rated)
	assert.Nil(t, stats.Average, "unrated must not report 0 as an average")
}

func TestStats_EmptyReviews(t *testing.T) {
	stats := Stats(nil)
	assert.Zero(t, stats.Count)
	assert.Nil(t, stats.Average)
}

func TestFilter_ExactCountryMatch(t *testing.T) {
	cities := []domain.City{
		{Name: "Madrid", Country: "Spain"},
		{Name: "Lowercase", Country: "spain"},
		{Name: "Barcelona", Country: "Spain"},
	}

	got := Filter(cities, "Spain", "")

	require.Len(t, got, 2)
	assert.Equal(t, "Madrid", got[0].Name)
	assert.Equal(t, "Barcelona", got[1].Name)
}

func TestFilter_TextQuery(t *testing.T) {
	cities := []domain.City{
		{Name: "Madrid", Country: "Spain", Description: "tapas and sun"},
		{Name: "Tokyo", Country: "Japan", Description: "neon"},
		{Name: "Kyoto", Country: "Japan", Description: "temples"},
	}

	assert.Len(t, Filter(cities, "", "JAPAN"), 2)
	assert.Len(t, Filter(cities, "", "tapas"), 1)
	assert.Len(t, Filter(cities, "", "  madrid "), 1)
	assert.Empty(t, Filter(cities, "", "berlin"))
}

func TestFilter_CountryAndQueryCombine(t *testing.T) {
	cities := []domain.City{
		{Name: "Madrid", Country: "Spain"},
		{Name: "Barcelona", Country: "Spain"},
	}

	got := Filter(cities, "Spain", "barce")

	require.Len(t, got, 1)
	assert.Equal(t, "Barcelona", got[0].Name)
}

func TestMapsURL(t *testing.T) {
	city := domain.City{Name: "San Sebastián", Country: "Spain"}
	url := MapsURL(city)
	assert.Contains(t, url, "https://www.google.com/maps/search/?api=1&query=")
	assert.NotContains(t, url, " ")
}
