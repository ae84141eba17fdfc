package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cityverse/backend/internal/catalog"
	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/repository"
	"github.com/cityverse/backend/pkg/logger"
	"go.uber.org/zap"
)

// CityDetails is the read-side view model for a single city: the
// normalized record plus everything derived from it, so a renderer never
// computes (or mis-computes) aggregates itself.
type CityDetails struct {
	City      domain.City        `json:"city"`
	Stats     domain.ReviewStats `json:"stats"`
	MainImage string             `json:"main_image"`
	HasImage  bool               `json:"has_image"`
	MapsURL   string             `json:"maps_url"`
}

type catalogService struct {
	cityRepository repository.Cities
	snapshotTTL    time.Duration

	mu        sync.Mutex
	cities    []domain.City
	loaded    bool
	fetchedAt time.Time
	// version increments on every invalidation. A refresh that started
	// before the bump is stale and its result is discarded, so a late
	// response can never clobber state derived from newer writes.
	version uint64
}

func newCatalogService(cityRepository repository.Cities, snapshotTTL time.Duration) *catalogService {
	return &catalogService{
		cityRepository: cityRepository,
		snapshotTTL:    snapshotTTL,
	}
}

func (s *catalogService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	cities, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.CountryIndex(cities), nil
}

func (s *catalogService) ListCities(ctx context.Context, country string, query string) ([]domain.City, error) {
	cities, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(cities, country, query), nil
}

// GetCity always asks the store for the single record instead of trusting
// the snapshot, mirroring how the detail view refetches on entry.
func (s *catalogService) GetCity(ctx context.Context, id string) (*CityDetails, error) {
	city, err := s.cityRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, ok := catalog.ResolveMainImage(*city)

	return &CityDetails{
		City:      *city,
		Stats:     catalog.Stats(city.Reviews),
		MainImage: resolved,
		HasImage:  ok,
		MapsURL:   catalog.MapsURL(*city),
	}, nil
}

// Refresh re-derives the snapshot from the store. It is safe to call
// concurrently with mutations: a result fetched against an old version is
// thrown away.
func (s *catalogService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	startVersion := s.version
	s.mu.Unlock()

	cities, err := s.cityRepository.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog snapshot failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version != startVersion {
		logger.Debug("discarding stale catalog refresh",
			zap.Uint64("started_at_version", startVersion),
			zap.Uint64("current_version", s.version))
		return nil
	}

	s.cities = cities
	s.loaded = true
	s.fetchedAt = time.Now()
	return nil
}

// Invalidate drops the snapshot after a confirmed mutation. The next read
// refetches; an in-flight refresh against the old state is voided.
func (s *catalogService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.loaded = false
}

func (s *catalogService) snapshot(ctx context.Context) ([]domain.City, error) {
	s.mu.Lock()
	if s.loaded && time.Since(s.fetchedAt) < s.snapshotTTL {
		cities := s.cities
		s.mu.Unlock()
		return cities, nil
	}
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cities, nil
}
