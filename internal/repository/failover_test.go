package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverRateLimiter(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary := new(mockLimiter)
		fallback := new(mockLimiter)
		limiter := NewFailoverRateLimiter(primary, fallback, &logger)

		primary.On("Allow", ctx, "k", 5, time.Minute).Return(true, nil).Once()

		allowed, err := limiter.Allow(ctx, "k", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertExpectations(t)
		fallback.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FallbackOnPrimaryError", func(t *testing.T) {
		primary := new(mockLimiter)
		fallback := new(mockLimiter)
		limiter := NewFailoverRateLimiter(primary, fallback, &logger)

		primary.On("Allow", ctx, "k", 5, time.Minute).Return(false, errors.New("redis down")).Once()
		fallback.On("Allow", ctx, "k", 5, time.Minute).Return(true, nil).Once()

		allowed, err := limiter.Allow(ctx, "k", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("StaysOnFallbackWhileDown", func(t *testing.T) {
		primary := new(mockLimiter)
		fallback := new(mockLimiter)
		limiter := NewFailoverRateLimiter(primary, fallback, &logger)

		primary.On("Allow", ctx, "k", 5, time.Minute).Return(false, errors.New("redis down")).Once()
		fallback.On("Allow", ctx, "k", 5, time.Minute).Return(true, nil).Twice()

		_, _ = limiter.Allow(ctx, "k", 5, time.Minute)
		allowed, err := limiter.Allow(ctx, "k", 5, time.Minute)

		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertNumberOfCalls(t, "Allow", 1)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoversAfterCooldown", func(t *testing.T) {
		primary := new(mockLimiter)
		fallback := new(mockLimiter)
		limiter := NewFailoverRateLimiter(primary, fallback, &logger)

		primary.On("Allow", ctx, "k", 5, time.Minute).Return(false, errors.New("redis down")).Once()
		fallback.On("Allow", ctx, "k", 5, time.Minute).Return(true, nil).Once()

		_, _ = limiter.Allow(ctx, "k", 5, time.Minute)

		// Pretend the failure happened over a minute ago.
		limiter.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())
		primary.On("Allow", ctx, "k", 5, time.Minute).Return(true, nil).Once()

		allowed, err := limiter.Allow(ctx, "k", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.False(t, limiter.isDown.Load())
		primary.AssertExpectations(t)
	})
}
