package database

import "errors"

// Sentinel errors surfaced by the store and mapped to response bodies at
// the API boundary.
var (
	ErrSpotNotFound    = errors.New("spot not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrInvalidRange: endDate on or before startDate.
	ErrInvalidRange = errors.New("end date must be after start date")

	// ErrBookingConflict: the requested range overlaps an existing booking.
	ErrBookingConflict = errors.New("spot already booked for the specified dates")

	// ErrDuplicateReview: the (spot, user) pair already has a review.
	ErrDuplicateReview = errors.New("user already has a review for this spot")

	// ErrForbidden: the acting user does not own the targeted record.
	ErrForbidden = errors.New("forbidden")

	// ErrStoreUnavailable: the store timed out or is unreachable. The only
	// error kind callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
