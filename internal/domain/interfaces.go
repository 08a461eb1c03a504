package domain

import (
	"context"
	"time"

	"stayspot/internal/models"
)

// Store is the entity-store contract the services consume. The sqlite
// implementation lives in internal/database.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateSpot(ctx context.Context, spot *models.Spot) error
	GetSpot(ctx context.Context, id int64) (*models.Spot, error)
	UpdateSpot(ctx context.Context, spot *models.Spot) error
	DeleteSpot(ctx context.Context, id int64) error
	ListSpots(ctx context.Context, limit, offset int) ([]*models.Spot, error)
	ListSpotsByOwner(ctx context.Context, ownerID int64) ([]*models.Spot, error)

	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingsForSpot(ctx context.Context, spotID int64) ([]*models.Booking, error)
	GetBookingsWithGuests(ctx context.Context, spotID int64) ([]*models.OwnerBooking, error)
	GetBookingsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Booking, error)
	CreateBookingConflictFree(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id int64) error

	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	GetReviewsForSpot(ctx context.Context, spotID int64) ([]*models.SpotReview, error)
	GetRatingAggregate(ctx context.Context, spotID int64) (models.RatingAggregate, error)
	GetRatingAggregates(ctx context.Context, spotIDs []int64) (map[int64]models.RatingAggregate, error)

	CreateSpotImage(ctx context.Context, image *models.SpotImage) error
	CreateReviewImage(ctx context.Context, image *models.ReviewImage) error
	GetSpotImages(ctx context.Context, spotID int64) ([]models.SpotImage, error)
	GetPreviewImage(ctx context.Context, spotID int64) (string, error)
	GetPreviewImages(ctx context.Context, spotIDs []int64) (map[int64]string, error)
}

// EventPublisher fans domain events out to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter is a fixed-window counter keyed by client, usually backed
// by redis with a memory fallback.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// ExportWorker accepts asynchronous booking-export requests.
type ExportWorker interface {
	EnqueueExport(ctx context.Context) error
}
