package service

import (
	"context"
	"strings"

	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/repository"
	"github.com/pkg/errors"
)

type AddReviewInput struct {
	User    string
	Comment string
	Rating  float64
}

type reviewService struct {
	cityRepository repository.Cities
	snapshot       snapshotInvalidator
	scheduler      RefreshScheduler
}

func newReviewService(cityRepository repository.Cities, snapshot snapshotInvalidator, scheduler RefreshScheduler) *reviewService {
	return &reviewService{
		cityRepository: cityRepository,
		snapshot:       snapshot,
		scheduler:      scheduler,
	}
}

// Add prepends the new review (newest first is the fixed ordering policy)
// and writes the whole sequence back. See replaceReviews for the
// concurrency caveat.
func (s *reviewService) Add(ctx context.Context, cityID string, input AddReviewInput) ([]domain.Review, error) {
	user := strings.TrimSpace(input.User)
	comment := strings.TrimSpace(input.Comment)
	if user == "" {
		return nil, errors.Wrap(domain.ErrValidation, "user is required")
	}
	if comment == "" {
		return nil, errors.Wrap(domain.ErrValidation, "comment is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Wrap(domain.ErrValidation, "rating must be between 1 and 5")
	}

	city, err := s.cityRepository.GetByID(ctx, cityID)
	if err != nil {
		return nil, err
	}

	updated := make([]domain.Review, 0, len(city.Reviews)+1)
	updated = append(updated, domain.Review{User: user, Comment: comment, Rating: input.Rating})
	updated = append(updated, city.Reviews...)

	if err := s.replaceReviews(ctx, cityID, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteByIndex removes the review at the given position of the current
// display order (reviews have no identity of their own).
func (s *reviewService) DeleteByIndex(ctx context.Context, cityID string, index int) ([]domain.Review, error) {
	city, err := s.cityRepository.GetByID(ctx, cityID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(city.Reviews) {
		return nil, errors.Wrapf(domain.ErrNotFound, "review index %d", index)
	}

	updated := make([]domain.Review, 0, len(city.Reviews)-1)
	updated = append(updated, city.Reviews[:index]...)
	updated = append(updated, city.Reviews[index+1:]...)

	if err := s.replaceReviews(ctx, cityID, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// replaceReviews is the one place that performs the read-modify-write
// over the embedded review sequence. The store has no array-append
// primitive and no conditional writes, so two concurrent writers that
// read the same snapshot will race and the second PATCH silently drops
// the first writer's change (lost update). This is a known hazard of the
// store protocol, deliberately not papered over with locking the store
// cannot honor; if the store ever grows conditional writes, this is where
// an ETag check returning domain.ErrConflict belongs.
func (s *reviewService) replaceReviews(ctx context.Context, cityID string, reviews []domain.Review) error {
	if err := s.cityRepository.Patch(ctx, cityID, map[string]any{"reviews": reviews}); err != nil {
		return err
	}

	s.snapshot.Invalidate()
	if s.scheduler != nil {
		s.scheduler.ScheduleRefresh(ctx)
	}
	return nil
}
