package service

import (
	"context"

	"github.com/cityverse/backend/internal/config"
	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/repository"
)

type Services struct {
	Catalog Catalog
	Cities  Cities
	Reviews Reviews
}

type Deps struct {
	Config    *config.Config
	Repos     *repository.Repositories
	Scheduler RefreshScheduler
}

func NewServices(deps Deps) *Services {
	catalog := newCatalogService(deps.Repos.Cities, deps.Config.Catalog.SnapshotTTL)

	return &Services{
		Catalog: catalog,
		Cities:  newCityService(deps.Repos.Cities, catalog, deps.Scheduler),
		Reviews: newReviewService(deps.Repos.Cities, catalog, deps.Scheduler),
	}
}

// Catalog is the read side: everything derives from one fetched and
// normalized snapshot of the collection, since the store cannot filter
// server-side.
type Catalog interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	ListCities(ctx context.Context, country string, query string) ([]domain.City, error)
	GetCity(ctx context.Context, id string) (*CityDetails, error)
	Refresh(ctx context.Context) error
}

// Cities is the mutation coordinator for city records. All operations
// confirm the remote write before any local state changes.
type Cities interface {
	Create(ctx context.Context, input CreateCityInput) (*domain.City, error)
	Update(ctx context.Context, id string, input UpdateCityInput) error
	Delete(ctx context.Context, id string) error
}

// Reviews mutates the embedded review sequence of one city.
type Reviews interface {
	Add(ctx context.Context, cityID string, input AddReviewInput) ([]domain.Review, error)
	DeleteByIndex(ctx context.Context, cityID string, index int) ([]domain.Review, error)
}

// RefreshScheduler queues an asynchronous catalog refresh so the next
// read after a mutation finds a warm snapshot. May be nil in tests.
type RefreshScheduler interface {
	ScheduleRefresh(ctx context.Context)
}

// snapshotInvalidator is what mutation services need from the catalog:
// drop the local snapshot once the remote write is confirmed.
type snapshotInvalidator interface {
	Invalidate()
}
