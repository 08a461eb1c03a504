package service

import (
	"context"
	"time"

	"stayspot/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockStore) CreateSpot(ctx context.Context, s *models.Spot) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockStore) GetSpot(ctx context.Context, id int64) (*models.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Spot), args.Error(1)
}
func (m *mockStore) UpdateSpot(ctx context.Context, s *models.Spot) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockStore) DeleteSpot(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) ListSpots(ctx context.Context, limit, offset int) ([]*models.Spot, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Spot), args.Error(1)
}
func (m *mockStore) ListSpotsByOwner(ctx context.Context, ownerID int64) ([]*models.Spot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Spot), args.Error(1)
}
func (m *mockStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockStore) GetBookingsForSpot(ctx context.Context, spotID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockStore) GetBookingsWithGuests(ctx context.Context, spotID int64) ([]*models.OwnerBooking, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OwnerBooking), args.Error(1)
}
func (m *mockStore) GetBookingsByDateRange(ctx context.Context, s, e time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, s, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockStore) CreateBookingConflictFree(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockStore) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) CreateReview(ctx context.Context, r *models.Review) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}
func (m *mockStore) DeleteReview(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) GetReviewsForSpot(ctx context.Context, spotID int64) ([]*models.SpotReview, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SpotReview), args.Error(1)
}
func (m *mockStore) GetRatingAggregate(ctx context.Context, spotID int64) (models.RatingAggregate, error) {
	args := m.Called(ctx, spotID)
	return args.Get(0).(models.RatingAggregate), args.Error(1)
}
func (m *mockStore) GetRatingAggregates(ctx context.Context, spotIDs []int64) (map[int64]models.RatingAggregate, error) {
	args := m.Called(ctx, spotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.RatingAggregate), args.Error(1)
}
func (m *mockStore) CreateSpotImage(ctx context.Context, i *models.SpotImage) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockStore) CreateReviewImage(ctx context.Context, i *models.ReviewImage) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockStore) GetSpotImages(ctx context.Context, spotID int64) ([]models.SpotImage, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpotImage), args.Error(1)
}
func (m *mockStore) GetPreviewImage(ctx context.Context, spotID int64) (string, error) {
	args := m.Called(ctx, spotID)
	return args.String(0), args.Error(1)
}
func (m *mockStore) GetPreviewImages(ctx context.Context, spotIDs []int64) (map[int64]string, error) {
	args := m.Called(ctx, spotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

type mockExports struct {
	mock.Mock
}

func (m *mockExports) EnqueueExport(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
