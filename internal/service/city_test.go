package service

import (
	"context"
	"testing"
	"time"

	"github.com/cityverse/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCityService(repo *fakeCityRepo) (*cityService, *catalogService, *fakeScheduler) {
	snapshot := newCatalogService(repo, time.Minute)
	scheduler := &fakeScheduler{}
	return newCityService(repo, snapshot, scheduler), snapshot, scheduler
}

func TestCityService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestCityService(&fakeCityRepo{})

	_, err := svc.Create(context.Background(), CreateCityInput{Name: "  ", Country: "Spain"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), CreateCityInput{Name: "Madrid", Country: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCityService_CreatePayloadShape(t *testing.T) {
	repo := &fakeCityRepo{createID: "new-id"}
	svc, _, scheduler := newTestCityService(repo)

	city, err := svc.Create(context.Background(), CreateCityInput{
		Name:    " Madrid ",
		Country: "Spain",
		Images:  []string{" https://a ", "", "https://b"},
		PointsOfInterest: []domain.PointOfInterest{
			{Name: " Prado ", URL: "https://prado"},
			{Name: "", URL: "https://orphan"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "new-id", city.ID)
	assert.Equal(t, "Madrid", city.Name)
	assert.NotNil(t, city.Reviews)

	assert.Equal(t, "Madrid", repo.createdWith["name"])
	assert.Equal(t, []string{"https://a", "https://b"}, repo.createdWith["images"])
	assert.Equal(t, []domain.PointOfInterest{{Name: "Prado", URL: "https://prado"}}, repo.createdWith["pointsOfInterest"])
	assert.NotContains(t, repo.createdWith, "averageRating")

	assert.Equal(t, 1, scheduler.scheduled)
}

func TestCityService_CreateOmitsEmptyImageList(t *testing.T) {
	repo := &fakeCityRepo{createID: "new-id"}
	svc, _, _ := newTestCityService(repo)

	_, err := svc.Create(context.Background(), CreateCityInput{Name: "Madrid", Country: "Spain"})
	require.NoError(t, err)

	assert.NotContains(t, repo.createdWith, "images")
}

func TestCityService_CreateInvalidatesSnapshot(t *testing.T) {
	repo := &fakeCityRepo{createID: "new-id", cities: []domain.City{{Country: "Spain"}}}
	svc, snapshot, _ := newTestCityService(repo)

	_, err := snapshot.ListCountries(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = svc.Create(context.Background(), CreateCityInput{Name: "Madrid", Country: "Spain"})
	require.NoError(t, err)

	_, err = snapshot.ListCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "confirmed mutation must drop the snapshot")
}

func TestCityService_UpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := &fakeCityRepo{}
	svc, _, _ := newTestCityService(repo)

	name := " Lisbon "
	desc := "updated"
	err := svc.Update(context.Background(), "c1", UpdateCityInput{
		Name:        &name,
		Description: &desc,
	})
	require.NoError(t, err)

	assert.Equal(t, "c1", repo.patchedID)
	assert.Equal(t, map[string]any{
		"name":        "Lisbon",
		"description": "updated",
	}, repo.patchedWith)
}

func TestCityService_UpdateRejectsBlankRequiredFields(t *testing.T) {
	svc, _, _ := newTestCityService(&fakeCityRepo{})

	blank := "  "
	err := svc.Update(context.Background(), "c1", UpdateCityInput{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.Update(context.Background(), "c1", UpdateCityInput{Country: &blank})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCityService_UpdateRejectsEmptyPatch(t *testing.T) {
	svc, _, _ := newTestCityService(&fakeCityRepo{})

	err := svc.Update(context.Background(), "c1", UpdateCityInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCityService_Delete(t *testing.T) {
	repo := &fakeCityRepo{}
	svc, _, scheduler := newTestCityService(repo)

	require.NoError(t, svc.Delete(context.Background(), "c1"))

	assert.Equal(t, "c1", repo.deletedID)
	assert.Equal(t, 1, scheduler.scheduled)
}

func TestCityService_NilSchedulerIsTolerated(t *testing.T) {
	repo := &fakeCityRepo{createID: "new-id"}
	snapshot := newCatalogService(repo, time.Minute)
	svc := newCityService(repo, snapshot, nil)

	_, err := svc.Create(context.Background(), CreateCityInput{Name: "Madrid", Country: "Spain"})
	require.NoError(t, err)
}
