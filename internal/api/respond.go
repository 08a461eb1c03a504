package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"stayspot/internal/database"
	"stayspot/internal/validate"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMessage emits the upstream {"message", "statusCode"} error shape.
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"message":    message,
		"statusCode": statusCode,
	})
}

func writeValidation(w http.ResponseWriter, statusCode int, message string, fields map[string]string) {
	writeJSON(w, statusCode, map[string]any{
		"message":    message,
		"statusCode": statusCode,
		"errors":     fields,
	})
}

// writeDomainError maps service errors onto the response bodies the
// upstream clients depend on literally.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *validate.Error

	switch {
	case errors.As(err, &verr):
		writeValidation(w, http.StatusBadRequest, "Validation error", verr.Fields)
	case errors.Is(err, database.ErrSpotNotFound):
		writeMessage(w, http.StatusNotFound, "Spot couldn't be found")
	case errors.Is(err, database.ErrBookingNotFound):
		writeMessage(w, http.StatusNotFound, "Booking couldn't be found")
	case errors.Is(err, database.ErrReviewNotFound):
		writeMessage(w, http.StatusNotFound, "Review couldn't be found")
	case errors.Is(err, database.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User couldn't be found")
	case errors.Is(err, database.ErrInvalidRange):
		writeValidation(w, http.StatusBadRequest, "Validation error", map[string]string{
			"endDate": "endDate cannot be on or before startDate",
		})
	case errors.Is(err, database.ErrBookingConflict):
		writeValidation(w, http.StatusForbidden, "Sorry, this spot is already booked for the specified dates", map[string]string{
			"startDate": "Start date conflicts with an existing booking",
			"endDate":   "End date conflicts with an existing booking",
		})
	case errors.Is(err, database.ErrDuplicateReview):
		writeMessage(w, http.StatusForbidden, "User already has a review for this spot")
	case errors.Is(err, database.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, database.ErrStoreUnavailable):
		writeMessage(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
