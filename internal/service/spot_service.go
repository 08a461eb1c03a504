package service

import (
	"context"

	"stayspot/internal/database"
	"stayspot/internal/domain"
	"stayspot/internal/events"
	"stayspot/internal/models"
	"stayspot/internal/validate"

	"github.com/rs/zerolog"
)

type SpotService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewSpotService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *SpotService {
	return &SpotService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *SpotService) CreateSpot(ctx context.Context, spot *models.Spot) (*models.Spot, error) {
	if err := validate.Check(validate.SpotSchema, validate.SpotValues(spot)); err != nil {
		return nil, err
	}

	if err := s.store.CreateSpot(ctx, spot); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventSpotCreated, spot)
	return spot, nil
}

func (s *SpotService) UpdateSpot(ctx context.Context, userID int64, spot *models.Spot) (*models.Spot, error) {
	existing, err := s.store.GetSpot(ctx, spot.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != userID {
		return nil, database.ErrForbidden
	}

	if err := validate.Check(validate.SpotSchema, validate.SpotValues(spot)); err != nil {
		return nil, err
	}

	spot.OwnerID = existing.OwnerID
	if err := s.store.UpdateSpot(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

func (s *SpotService) DeleteSpot(ctx context.Context, userID, spotID int64) error {
	existing, err := s.store.GetSpot(ctx, spotID)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return database.ErrForbidden
	}

	// Images, bookings and reviews go with the spot via FK cascade.
	if err := s.store.DeleteSpot(ctx, spotID); err != nil {
		return err
	}

	s.publishEvent(events.EventSpotDeleted, existing)
	return nil
}

func (s *SpotService) AddSpotImage(ctx context.Context, userID, spotID int64, url string, preview bool) (*models.SpotImage, error) {
	existing, err := s.store.GetSpot(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != userID {
		return nil, database.ErrForbidden
	}

	image := &models.SpotImage{SpotID: spotID, URL: url, Preview: preview}
	if err := s.store.CreateSpotImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *SpotService) publishEvent(eventType string, spot *models.Spot) {
	if s.eventBus == nil {
		return
	}

	payload := events.SpotEventPayload{SpotID: spot.ID, OwnerID: spot.OwnerID}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Int64("spot_id", spot.ID).Msg("publish event error")
	}
}
