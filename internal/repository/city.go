package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/cityverse/backend/internal/cache"
	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/normalize"
	"github.com/cityverse/backend/internal/store"
	"github.com/cityverse/backend/pkg/logger"
	"go.uber.org/zap"
)

type cityRepository struct {
	store *store.Client
	cache cache.Collection
}

func newCityRepository(storeClient *store.Client, collectionCache cache.Collection) *cityRepository {
	return &cityRepository{
		store: storeClient,
		cache: collectionCache,
	}
}

// List returns the whole collection, normalized, in a stable id order.
// Individual records that fail normalization are logged and skipped so
// one broken document cannot take the catalog down with it.
func (r *cityRepository) List(ctx context.Context) ([]domain.City, error) {
	records, hit := r.cache.Get(ctx)
	if !hit {
		var err error
		records, err = r.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list collection failed: %w", err)
		}
		r.cache.Set(ctx, records)
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cities := make([]domain.City, 0, len(records))
	for _, id := range ids {
		city, err := normalize.City(id, records[id])
		if err != nil {
			logger.Warn("skipping record that cannot be normalized", zap.String("id", id), zap.Error(err))
			continue
		}
		cities = append(cities, city)
	}

	return cities, nil
}

func (r *cityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	raw, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record %s failed: %w", id, err)
	}

	city, err := normalize.City(id, raw)
	if err != nil {
		return nil, err
	}

	return &city, nil
}

func (r *cityRepository) Create(ctx context.Context, fields map[string]any) (string, error) {
	id, err := r.store.Create(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("create record failed: %w", err)
	}

	r.cache.Invalidate(ctx)
	return id, nil
}

func (r *cityRepository) Patch(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Patch(ctx, id, fields); err != nil {
		return fmt.Errorf("patch record %s failed: %w", id, err)
	}

	r.cache.Invalidate(ctx)
	return nil
}

func (r *cityRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record %s failed: %w", id, err)
	}

	r.cache.Invalidate(ctx)
	return nil
}
