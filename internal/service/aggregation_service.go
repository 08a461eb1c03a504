package service

import (
	"context"

	"stayspot/internal/domain"
	"stayspot/internal/models"
)

// AggregationService computes the read-side rating and preview-image
// aggregates. Everything is derived at read time; nothing is stored.
type AggregationService struct {
	store domain.Store
}

func NewAggregationService(store domain.Store) *AggregationService {
	return &AggregationService{store: store}
}

// RatingAggregate returns the review count and mean stars for one spot.
// AvgStars is nil when the spot has no reviews.
func (s *AggregationService) RatingAggregate(ctx context.Context, spotID int64) (models.RatingAggregate, error) {
	return s.store.GetRatingAggregate(ctx, spotID)
}

// RatingAggregates is the batched variant used by the listing endpoints.
// Spots without reviews are absent from the map.
func (s *AggregationService) RatingAggregates(ctx context.Context, spotIDs []int64) (map[int64]models.RatingAggregate, error) {
	if len(spotIDs) == 0 {
		return map[int64]models.RatingAggregate{}, nil
	}
	return s.store.GetRatingAggregates(ctx, spotIDs)
}

// PreviewImage returns the URL of a spot's preview image, or "" when the
// spot has none. Ties resolve to the lowest image id.
func (s *AggregationService) PreviewImage(ctx context.Context, spotID int64) (string, error) {
	return s.store.GetPreviewImage(ctx, spotID)
}

// PreviewImages is the batched variant; spots without a preview image are
// absent from the map.
func (s *AggregationService) PreviewImages(ctx context.Context, spotIDs []int64) (map[int64]string, error) {
	if len(spotIDs) == 0 {
		return map[int64]string{}, nil
	}
	return s.store.GetPreviewImages(ctx, spotIDs)
}
