package service

import (
	"context"
	"testing"
	"time"

	"github.com/cityverse/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCityRepo is shared by the service tests in this package.
type fakeCityRepo struct {
	cities []domain.City
	byID   map[string]domain.City

	listCalls    int
	onList       func() // hook to coordinate concurrent refresh tests
	listErr      error
	createdWith  map[string]any
	createID     string
	patchedID    string
	patchedWith  map[string]any
	patchCalls   int
	deletedID    string
}

func (f *fakeCityRepo) List(_ context.Context) ([]domain.City, error) {
	f.listCalls++
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.cities, nil
}

func (f *fakeCityRepo) GetByID(_ context.Context, id string) (*domain.City, error) {
	city, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &city, nil
}

func (f *fakeCityRepo) Create(_ context.Context, fields map[string]any) (string, error) {
	f.createdWith = fields
	return f.createID, nil
}

func (f *fakeCityRepo) Patch(_ context.Context, id string, fields map[string]any) error {
	f.patchCalls++
	f.patchedID = id
	f.patchedWith = fields
	return nil
}

func (f *fakeCityRepo) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

type fakeScheduler struct {
	scheduled int
}

func (f *fakeScheduler) ScheduleRefresh(_ context.Context) { f.scheduled++ }

func TestCatalogService_SnapshotServedWithinTTL(t *testing.T) {
	repo := &fakeCityRepo{cities: []domain.City{{Name: "Madrid", Country: "Spain"}}}
	svc := newCatalogService(repo, time.Minute)

	_, err := svc.ListCountries(context.Background())
	require.NoError(t, err)

	_, err = svc.ListCities(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second read within TTL must not refetch")
}

func TestCatalogService_ExpiredSnapshotRefetches(t *testing.T) {
	repo := &fakeCityRepo{cities: []domain.City{{Country: "Spain"}}}
	svc := newCatalogService(repo, time.Nanosecond)

	_, err := svc.ListCountries(context.Background())
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = svc.ListCountries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
}

func TestCatalogService_InvalidateForcesRefetch(t *testing.T) {
	repo := &fakeCityRepo{cities: []domain.City{{Country: "Spain"}}}
	svc := newCatalogService(repo, time.Minute)

	_, err := svc.ListCountries(context.Background())
	require.NoError(t, err)

	svc.Invalidate()

	_, err = svc.ListCountries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
}

func TestCatalogService_GetCityDerivesDetails(t *testing.T) {
	repo := &fakeCityRepo{byID: map[string]domain.City{
		"c1": {
			ID:      "c1",
			Name:    "Madrid",
			Country: "Spain",
			Image:   "https://img/madrid.jpg",
			Reviews: []domain.Review{
				{User: "A", Rating: 5},
				{User: "B", Rating: 3},
			},
		},
	}}
	svc := newCatalogService(repo, time.Minute)

	details, err := svc.GetCity(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "Madrid", details.City.Name)
	assert.Equal(t, 2, details.Stats.Count)
	require.NotNil(t, details.Stats.Average)
	assert.InDelta(t, 4.0, *details.Stats.Average, 1e-9)
	assert.True(t, details.HasImage)
	assert.Equal(t, "https://img/madrid.jpg", details.MainImage)
	assert.Contains(t, details.MapsURL, "google.com/maps")
}

func TestCatalogService_GetCityNotFound(t *testing.T) {
	svc := newCatalogService(&fakeCityRepo{}, time.Minute)

	_, err := svc.GetCity(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_StaleRefreshIsDiscarded(t *testing.T) {
	fetching := make(chan struct{})
	release := make(chan struct{})

	repo := &fakeCityRepo{cities: []domain.City{{Country: "Stale"}}}
	repo.onList = func() {
		if repo.listCalls == 1 {
			close(fetching)
			<-release
		}
	}

	svc := newCatalogService(repo, time.Minute)

	done := make(chan error, 1)
	go func() {
		done <- svc.Refresh(context.Background())
	}()

	// a mutation lands while the refresh is in flight
	<-fetching
	svc.Invalidate()
	close(release)

	require.NoError(t, <-done)

	// the stale result must not have been installed: the next read
	// fetches again instead of serving countries from the dead snapshot
	repo.cities = []domain.City{{Country: "Fresh"}}
	countries, err := svc.ListCountries(context.Background())
	require.NoError(t, err)

	require.Len(t, countries, 1)
	assert.Equal(t, "Fresh", countries[0].Name)
	assert.Equal(t, 2, repo.listCalls)
}
