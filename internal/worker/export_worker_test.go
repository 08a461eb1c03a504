package worker

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"stayspot/internal/config"
	"stayspot/internal/database"
	"stayspot/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestStore(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedBooking(t *testing.T, db *database.DB, spotID, userID int64, start, end time.Time) {
	t.Helper()
	booking := &models.Booking{SpotID: spotID, UserID: userID, StartDate: start, EndDate: end}
	require.NoError(t, db.CreateBookingConflictFree(context.Background(), booking))
}

func TestExportWritesSnapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	logger := zerolog.New(io.Discard)

	owner := &models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))
	spot := &models.Spot{
		OwnerID: owner.ID, Address: "1 Main St", City: "Portland", State: "Oregon",
		Country: "United States", Name: "Cabin", Description: "Quiet", Price: 99,
	}
	require.NoError(t, db.CreateSpot(ctx, spot))

	now := time.Now()
	seedBooking(t, db, spot.ID, owner.ID, now.AddDate(0, 0, 7), now.AddDate(0, 0, 10))
	seedBooking(t, db, spot.ID, owner.ID, now.AddDate(0, 0, 20), now.AddDate(0, 0, 25))
	// Outside the one-month-back / two-months-forward window.
	seedBooking(t, db, spot.ID, owner.ID, now.AddDate(0, 6, 0), now.AddDate(0, 6, 3))

	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	cfg := config.ExportConfig{Enabled: true, Path: path, RangeMonthsBefore: 1, RangeMonthsAfter: 2}
	w := NewExportWorker(db, cfg, RetryPolicy{}, &logger)

	require.NoError(t, w.Export(ctx))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two in-window bookings")
	assert.Equal(t, "Booking ID", rows[0][0])
	assert.Equal(t, now.AddDate(0, 0, 7).Format(models.DateLayout), rows[1][3])
}

func TestExportOverwritesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestStore(t)
	logger := zerolog.New(io.Discard)

	owner := &models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))
	spot := &models.Spot{
		OwnerID: owner.ID, Address: "1 Main St", City: "Portland", State: "Oregon",
		Country: "United States", Name: "Cabin", Description: "Quiet", Price: 99,
	}
	require.NoError(t, db.CreateSpot(ctx, spot))

	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	cfg := config.ExportConfig{Enabled: true, Path: path, RangeMonthsBefore: 1, RangeMonthsAfter: 2}
	w := NewExportWorker(db, cfg, RetryPolicy{}, &logger)

	require.NoError(t, w.Export(ctx))

	now := time.Now()
	seedBooking(t, db, spot.ID, owner.ID, now.AddDate(0, 0, 7), now.AddDate(0, 0, 10))
	require.NoError(t, w.Export(ctx))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestEnqueueExport(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("DisabledIsNoop", func(t *testing.T) {
		w := NewExportWorker(nil, config.ExportConfig{Enabled: false}, RetryPolicy{}, &logger)
		assert.NoError(t, w.EnqueueExport(ctx))
		assert.Empty(t, w.queue)
	})

	t.Run("FullQueueCoalesces", func(t *testing.T) {
		cfg := config.ExportConfig{Enabled: true, Path: "unused.xlsx", QueueSize: 1}
		w := NewExportWorker(nil, cfg, RetryPolicy{}, &logger)

		assert.NoError(t, w.EnqueueExport(ctx))
		assert.NoError(t, w.EnqueueExport(ctx))
		assert.Len(t, w.queue, 1)
	})
}

func TestStartProcessesQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := newTestStore(t)
	logger := zerolog.New(io.Discard)

	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	cfg := config.ExportConfig{Enabled: true, Path: path, RangeMonthsBefore: 1, RangeMonthsAfter: 2}
	w := NewExportWorker(db, cfg, RetryPolicy{MaxRetries: 1}, &logger)

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.NoError(t, w.EnqueueExport(ctx))

	assert.Eventually(t, func() bool {
		_, err := excelize.OpenFile(path)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: 5 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, policy.NextDelay(1))
	assert.Equal(t, 2*time.Second, policy.NextDelay(2))
	assert.Equal(t, 4*time.Second, policy.NextDelay(3))
	assert.Equal(t, 5*time.Second, policy.NextDelay(4), "clamped to MaxDelay")
	assert.Equal(t, time.Second, policy.NextDelay(0), "attempt floor")
}
