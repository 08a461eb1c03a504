package service

import (
	"context"
	"errors"
	"time"

	"stayspot/internal/database"
	"stayspot/internal/domain"
	"stayspot/internal/events"
	"stayspot/internal/metrics"
	"stayspot/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	store       domain.Store
	eventBus    domain.EventPublisher
	exports     domain.ExportWorker
	rejectOwner bool
	logger      *zerolog.Logger
}

func NewBookingService(store domain.Store, eventBus domain.EventPublisher, exports domain.ExportWorker, rejectOwner bool, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:       store,
		eventBus:    eventBus,
		exports:     exports,
		rejectOwner: rejectOwner,
		logger:      logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, spotID, guestID int64, startDate, endDate time.Time) (*models.Booking, error) {
	spot, err := s.store.GetSpot(ctx, spotID)
	if err != nil {
		return nil, err
	}

	requested := models.DateRange{Start: startDate, End: endDate}
	if !requested.Valid() {
		return nil, database.ErrInvalidRange
	}

	if s.rejectOwner && spot.OwnerID == guestID {
		return nil, database.ErrForbidden
	}

	// Cheap pre-check outside the transaction; the store repeats it inside.
	existing, err := s.store.GetBookingsForSpot(ctx, spotID)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if requested.Overlaps(b.Range()) {
			metrics.IncBookingConflict()
			return nil, database.ErrBookingConflict
		}
	}

	booking := &models.Booking{
		SpotID:    spotID,
		UserID:    guestID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.store.CreateBookingConflictFree(ctx, booking); err != nil {
		if errors.Is(err, database.ErrBookingConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking)
	s.enqueueExport(ctx)

	return booking, nil
}

// BookingListing is the per-viewer result of ListBookingsForSpot. Exactly
// one of Owner or Guest is populated, depending on IsOwner.
type BookingListing struct {
	IsOwner bool
	Owner   []*models.OwnerBooking
	Guest   []models.GuestBooking
}

func (s *BookingService) ListBookingsForSpot(ctx context.Context, spotID, userID int64) (*BookingListing, error) {
	spot, err := s.store.GetSpot(ctx, spotID)
	if err != nil {
		return nil, err
	}

	if spot.OwnerID == userID {
		bookings, err := s.store.GetBookingsWithGuests(ctx, spotID)
		if err != nil {
			return nil, err
		}
		return &BookingListing{IsOwner: true, Owner: bookings}, nil
	}

	bookings, err := s.store.GetBookingsForSpot(ctx, spotID)
	if err != nil {
		return nil, err
	}
	redacted := make([]models.GuestBooking, 0, len(bookings))
	for _, b := range bookings {
		redacted = append(redacted, models.GuestBooking{
			SpotID:    b.SpotID,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
		})
	}
	return &BookingListing{Guest: redacted}, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, bookingID, userID int64) error {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return database.ErrForbidden
	}

	if err := s.store.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingDeleted, booking)
	s.enqueueExport(ctx)
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		SpotID:    booking.SpotID,
		UserID:    booking.UserID,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueExport(ctx context.Context) {
	if s.exports == nil {
		return
	}
	if err := s.exports.EnqueueExport(ctx); err != nil {
		s.logger.Error().Err(err).Msg("export enqueue error")
	}
}
