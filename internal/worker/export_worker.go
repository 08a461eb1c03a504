package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayspot/internal/config"
	"stayspot/internal/domain"
	"stayspot/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

// ExportWorker keeps an xlsx snapshot of upcoming bookings on disk for
// the operations side. Booking writes enqueue a refresh; the loop
// coalesces bursts so one file write covers any number of queued
// requests.
type ExportWorker struct {
	store       domain.Store
	cfg         config.ExportConfig
	retryPolicy RetryPolicy
	queue       chan struct{}
	logger      *zerolog.Logger
}

// NewExportWorker builds a worker with sane defaults.
func NewExportWorker(store domain.Store, cfg config.ExportConfig, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	return &ExportWorker{
		store:       store,
		cfg:         cfg,
		retryPolicy: retry,
		queue:       make(chan struct{}, cfg.QueueSize),
		logger:      logger,
	}
}

// EnqueueExport schedules a snapshot refresh. A full queue is not an
// error for the caller: a refresh is already pending.
func (w *ExportWorker) EnqueueExport(ctx context.Context) error {
	if !w.cfg.Enabled {
		return nil
	}
	select {
	case w.queue <- struct{}{}:
	default:
	}
	return nil
}

// Start launches main loop; stops when ctx is done.
func (w *ExportWorker) Start(ctx context.Context) {
	if !w.cfg.Enabled {
		return
	}
	w.logger.Info().Msg("export worker started")
	defer w.logger.Info().Msg("export worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.queue:
			w.drain()
			if err := w.exportWithRetry(ctx); err != nil {
				w.logger.Error().Err(err).Msg("booking export failed")
			}
		}
	}
}

// drain coalesces queued refresh requests into the one about to run.
func (w *ExportWorker) drain() {
	for {
		select {
		case <-w.queue:
		default:
			return
		}
	}
}

func (w *ExportWorker) exportWithRetry(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		lastErr = w.Export(ctx)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) {
			return lastErr
		}
		w.logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("export attempt failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.retryPolicy.NextDelay(attempt)):
		}
	}
	return lastErr
}

// Export writes the booking window around today to the configured xlsx
// path, replacing the previous snapshot.
func (w *ExportWorker) Export(ctx context.Context) error {
	now := time.Now()
	start := now.AddDate(0, -w.cfg.RangeMonthsBefore, 0)
	end := now.AddDate(0, w.cfg.RangeMonthsAfter, 0)

	bookings, err := w.store.GetBookingsByDateRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("fetch bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Booking ID", "Spot ID", "Guest ID", "Check-in", "Check-out", "Created"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, b := range bookings {
		row := []interface{}{
			b.ID,
			b.SpotID,
			b.UserID,
			b.StartDate.Format(models.DateLayout),
			b.EndDate.Format(models.DateLayout),
			b.CreatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(w.cfg.Path); err != nil {
		return fmt.Errorf("save export: %w", err)
	}

	w.logger.Info().Int("bookings", len(bookings)).Str("path", w.cfg.Path).Msg("booking export written")
	return nil
}
