package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayspot/internal/models"
)

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var startStr, endStr string
	err := row.Scan(&b.ID, &b.SpotID, &b.UserID, &startStr, &endStr, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if b.StartDate, err = time.Parse(models.DateLayout, startStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking start date %s: %w", startStr, err)
	}
	if b.EndDate, err = time.Parse(models.DateLayout, endStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking end date %s: %w", endStr, err)
	}
	return &b, nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT id, spot_id, user_id, date(start_date), date(end_date), created_at, updated_at
              FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get booking: %w", err))
	}
	return booking, nil
}

// GetBookingsForSpot returns every booking for a spot ordered by start
// date, then id, so conflict scans are deterministic.
func (db *DB) GetBookingsForSpot(ctx context.Context, spotID int64) ([]*models.Booking, error) {
	query := `SELECT id, spot_id, user_id, date(start_date), date(end_date), created_at, updated_at
              FROM bookings WHERE spot_id = ? ORDER BY start_date, id`
	rows, err := db.QueryContext(ctx, query, spotID)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get bookings for spot: %w", err))
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GetBookingsWithGuests returns a spot's bookings joined with guest
// identity, for the owner-facing listing.
func (db *DB) GetBookingsWithGuests(ctx context.Context, spotID int64) ([]*models.OwnerBooking, error) {
	query := `SELECT b.id, b.spot_id, b.user_id, date(b.start_date), date(b.end_date), b.created_at, b.updated_at,
                     u.id, u.first_name, u.last_name
              FROM bookings b JOIN users u ON u.id = b.user_id
              WHERE b.spot_id = ? ORDER BY b.start_date, b.id`
	rows, err := db.QueryContext(ctx, query, spotID)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get bookings with guests: %w", err))
	}
	defer rows.Close()

	var bookings []*models.OwnerBooking
	for rows.Next() {
		var ob models.OwnerBooking
		var startStr, endStr string
		err := rows.Scan(
			&ob.ID, &ob.SpotID, &ob.UserID, &startStr, &endStr, &ob.CreatedAt, &ob.UpdatedAt,
			&ob.User.ID, &ob.User.FirstName, &ob.User.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		if ob.StartDate, err = time.Parse(models.DateLayout, startStr); err != nil {
			return nil, fmt.Errorf("failed to parse booking start date %s: %w", startStr, err)
		}
		if ob.EndDate, err = time.Parse(models.DateLayout, endStr); err != nil {
			return nil, fmt.Errorf("failed to parse booking end date %s: %w", endStr, err)
		}
		bookings = append(bookings, &ob)
	}
	return bookings, rows.Err()
}

// CreateBookingConflictFree inserts a booking only if no stored booking
// for the spot overlaps the requested half-open range. The overlap test
// runs inside the same transaction as the insert, which closes the
// check-then-act window between concurrent requests.
func (db *DB) CreateBookingConflictFree(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// start < existing.end AND existing.start < end, end exclusive.
	var conflicts int
	queryCount := `SELECT COUNT(*) FROM bookings
                   WHERE spot_id = ? AND date(start_date) < date(?) AND date(end_date) > date(?)`
	err = tx.QueryRowContext(ctx, queryCount, booking.SpotID,
		booking.EndDate.Format(models.DateLayout),
		booking.StartDate.Format(models.DateLayout),
	).Scan(&conflicts)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to check booking conflicts in tx: %w", err))
	}
	if conflicts > 0 {
		return ErrBookingConflict
	}

	queryInsert := `INSERT INTO bookings (spot_id, user_id, start_date, end_date, created_at, updated_at)
                    VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := tx.ExecContext(ctx, queryInsert,
		booking.SpotID,
		booking.UserID,
		booking.StartDate.Format(models.DateLayout),
		booking.EndDate.Format(models.DateLayout),
		now,
		now,
	)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to insert booking in tx: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return tx.Commit()
}

func (db *DB) DeleteBooking(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to delete booking: %w", err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// GetBookingsByDateRange returns every booking intersecting the window,
// used by the export worker.
func (db *DB) GetBookingsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Booking, error) {
	query := `SELECT id, spot_id, user_id, date(start_date), date(end_date), created_at, updated_at
              FROM bookings
              WHERE date(start_date) < date(?) AND date(end_date) > date(?)
              ORDER BY start_date, id`
	rows, err := db.QueryContext(ctx, query,
		endDate.Format(models.DateLayout), startDate.Format(models.DateLayout))
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get bookings by date range: %w", err))
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
