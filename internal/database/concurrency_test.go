package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stayspot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two requests racing for the same dates must not both commit: the overlap
// check and the insert share one transaction.
func TestCreateBookingConflictFree_Race(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "Demo", "Host", "host@example.com")
	guest := seedUser(t, db, "Demo", "Guest", "guest@example.com")
	spot := seedSpot(t, db, owner.ID, "Contested Spot")

	start := date(t, "2024-08-01")
	end := date(t, "2024-08-05")

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- db.CreateBookingConflictFree(ctx, &models.Booking{
				SpotID:    spot.ID,
				UserID:    guest.ID,
				StartDate: start,
				EndDate:   end,
			})
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrBookingConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	bookings, err := db.GetBookingsForSpot(ctx, spot.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
