package service

import (
	"context"

	"stayspot/internal/database"
	"stayspot/internal/domain"
	"stayspot/internal/events"
	"stayspot/internal/metrics"
	"stayspot/internal/models"
	"stayspot/internal/validate"

	"github.com/rs/zerolog"
)

type ReviewService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewReviewService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *ReviewService {
	return &ReviewService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, spotID, userID int64, text string, stars int64) (*models.Review, error) {
	if _, err := s.store.GetSpot(ctx, spotID); err != nil {
		return nil, err
	}

	review := &models.Review{
		SpotID: spotID,
		UserID: userID,
		Review: text,
		Stars:  stars,
	}
	if err := validate.Check(validate.ReviewSchema, validate.ReviewValues(review)); err != nil {
		return nil, err
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	metrics.IncReviewCreated()
	s.publishEvent(review)

	return review, nil
}

func (s *ReviewService) ListReviewsForSpot(ctx context.Context, spotID int64) ([]*models.SpotReview, error) {
	if _, err := s.store.GetSpot(ctx, spotID); err != nil {
		return nil, err
	}
	return s.store.GetReviewsForSpot(ctx, spotID)
}

func (s *ReviewService) AddReviewImage(ctx context.Context, reviewID, userID int64, url string) (*models.ReviewImage, error) {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, database.ErrForbidden
	}

	image := &models.ReviewImage{ReviewID: reviewID, URL: url}
	if err := s.store.CreateReviewImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID int64) error {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return database.ErrForbidden
	}
	return s.store.DeleteReview(ctx, reviewID)
}

func (s *ReviewService) publishEvent(review *models.Review) {
	if s.eventBus == nil {
		return
	}

	payload := events.ReviewEventPayload{
		ReviewID: review.ID,
		SpotID:   review.SpotID,
		UserID:   review.UserID,
		Stars:    review.Stars,
	}

	if err := s.eventBus.PublishJSON(events.EventReviewCreated, payload); err != nil {
		s.logger.Error().Err(err).Int64("review_id", review.ID).Msg("publish event error")
	}
}
