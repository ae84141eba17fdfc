package repository

import (
	"context"

	"github.com/cityverse/backend/internal/cache"
	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/store"
)

type Repositories struct {
	Cities Cities
}

func NewRepositories(storeClient *store.Client, collectionCache cache.Collection) *Repositories {
	return &Repositories{
		Cities: newCityRepository(storeClient, collectionCache),
	}
}

type Cities interface {
	List(ctx context.Context) ([]domain.City, error)
	GetByID(ctx context.Context, id string) (*domain.City, error)
	Create(ctx context.Context, fields map[string]any) (string, error)
	Patch(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}
