package service

import (
	"context"
	"strings"

	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/repository"
	"github.com/pkg/errors"
)

type CreateCityInput struct {
	Name             string
	Country          string
	Description      string
	Image            string
	Images           []string
	PointsOfInterest []domain.PointOfInterest
	AverageRating    *float64
}

// UpdateCityInput carries partial-merge semantics: only non-nil fields go
// into the patch payload, everything else stays untouched server-side.
type UpdateCityInput struct {
	Name             *string
	Country          *string
	Description      *string
	Image            *string
	MainImage        *string
	Images           *[]string
	PointsOfInterest *[]domain.PointOfInterest
	AverageRating    *float64
}

type cityService struct {
	cityRepository repository.Cities
	snapshot       snapshotInvalidator
	scheduler      RefreshScheduler
}

func newCityService(cityRepository repository.Cities, snapshot snapshotInvalidator, scheduler RefreshScheduler) *cityService {
	return &cityService{
		cityRepository: cityRepository,
		snapshot:       snapshot,
		scheduler:      scheduler,
	}
}

// Create validates locally, then lets the store assign the identity. No
// optimistic local insertion happens before the store confirms: the
// caller blocks until the id exists.
func (s *cityService) Create(ctx context.Context, input CreateCityInput) (*domain.City, error) {
	name := strings.TrimSpace(input.Name)
	country := strings.TrimSpace(input.Country)
	if name == "" {
		return nil, errors.Wrap(domain.ErrValidation, "name is required")
	}
	if country == "" {
		return nil, errors.Wrap(domain.ErrValidation, "country is required")
	}

	city := domain.City{
		Name:             name,
		Country:          country,
		Description:      strings.TrimSpace(input.Description),
		Image:            strings.TrimSpace(input.Image),
		Images:           cleanImages(input.Images),
		PointsOfInterest: cleanPOIs(input.PointsOfInterest),
		Reviews:          []domain.Review{},
		AverageRating:    input.AverageRating,
	}

	fields := map[string]any{
		"name":             city.Name,
		"country":          city.Country,
		"description":      city.Description,
		"image":            city.Image,
		"pointsOfInterest": city.PointsOfInterest,
	}
	if len(city.Images) > 0 {
		fields["images"] = city.Images
	}
	if city.AverageRating != nil {
		fields["averageRating"] = *city.AverageRating
	}

	id, err := s.cityRepository.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	city.ID = id

	s.confirmMutation(ctx)
	return &city, nil
}

func (s *cityService) Update(ctx context.Context, id string, input UpdateCityInput) error {
	fields := map[string]any{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return errors.Wrap(domain.ErrValidation, "name cannot be blank")
		}
		fields["name"] = name
	}
	if input.Country != nil {
		country := strings.TrimSpace(*input.Country)
		if country == "" {
			return errors.Wrap(domain.ErrValidation, "country cannot be blank")
		}
		fields["country"] = country
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		fields["image"] = strings.TrimSpace(*input.Image)
	}
	if input.MainImage != nil {
		fields["mainImage"] = strings.TrimSpace(*input.MainImage)
	}
	if input.Images != nil {
		fields["images"] = cleanImages(*input.Images)
	}
	if input.PointsOfInterest != nil {
		fields["pointsOfInterest"] = cleanPOIs(*input.PointsOfInterest)
	}
	if input.AverageRating != nil {
		fields["averageRating"] = *input.AverageRating
	}

	if len(fields) == 0 {
		return errors.Wrap(domain.ErrValidation, "nothing to update")
	}

	if err := s.cityRepository.Patch(ctx, id, fields); err != nil {
		return err
	}

	s.confirmMutation(ctx)
	return nil
}

// Delete is irreversible and cascades to the embedded reviews for free.
// Any confirmation prompt is the caller's concern.
func (s *cityService) Delete(ctx context.Context, id string) error {
	if err := s.cityRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.confirmMutation(ctx)
	return nil
}

// confirmMutation runs only after the remote write succeeded, so local
// state never diverges from a store that rejected the change.
func (s *cityService) confirmMutation(ctx context.Context) {
	s.snapshot.Invalidate()
	if s.scheduler != nil {
		s.scheduler.ScheduleRefresh(ctx)
	}
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cleanPOIs(pois []domain.PointOfInterest) []domain.PointOfInterest {
	out := make([]domain.PointOfInterest, 0, len(pois))
	for _, poi := range pois {
		name := strings.TrimSpace(poi.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.PointOfInterest{
			Name: name,
			URL:  strings.TrimSpace(poi.URL),
		})
	}
	return out
}
