package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayspot/internal/models"
)

const spotColumns = `id, owner_id, address, city, state, country, lat, lng, name, description, price, created_at, updated_at`

func scanSpot(row interface{ Scan(...any) error }) (*models.Spot, error) {
	var s models.Spot
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Address, &s.City, &s.State, &s.Country,
		&s.Lat, &s.Lng, &s.Name, &s.Description, &s.Price,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) CreateSpot(ctx context.Context, spot *models.Spot) error {
	query := `INSERT INTO spots (owner_id, address, city, state, country, lat, lng, name, description, price, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		spot.OwnerID, spot.Address, spot.City, spot.State, spot.Country,
		spot.Lat, spot.Lng, spot.Name, spot.Description, spot.Price,
		now, now,
	)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to create spot: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	spot.ID = id
	spot.CreatedAt = now
	spot.UpdatedAt = now
	return nil
}

func (db *DB) GetSpot(ctx context.Context, id int64) (*models.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE id = ?`
	spot, err := scanSpot(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get spot: %w", err))
	}
	return spot, nil
}

func (db *DB) UpdateSpot(ctx context.Context, spot *models.Spot) error {
	query := `UPDATE spots SET address = ?, city = ?, state = ?, country = ?, lat = ?, lng = ?,
                               name = ?, description = ?, price = ?, updated_at = ?
              WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		spot.Address, spot.City, spot.State, spot.Country, spot.Lat, spot.Lng,
		spot.Name, spot.Description, spot.Price, now, spot.ID,
	)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to update spot: %w", err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSpotNotFound
	}
	spot.UpdatedAt = now
	return nil
}

func (db *DB) DeleteSpot(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM spots WHERE id = ?`, id)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to delete spot: %w", err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrSpotNotFound
	}
	return nil
}

// ListSpots returns one page of spots ordered by id. Ordering is fixed so
// that pagination windows are stable between requests.
func (db *DB) ListSpots(ctx context.Context, limit, offset int) ([]*models.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots ORDER BY id LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to list spots: %w", err))
	}
	defer rows.Close()

	var spots []*models.Spot
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spot: %w", err)
		}
		spots = append(spots, spot)
	}
	return spots, rows.Err()
}

func (db *DB) ListSpotsByOwner(ctx context.Context, ownerID int64) ([]*models.Spot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots WHERE owner_id = ? ORDER BY id`
	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to list spots by owner: %w", err))
	}
	defer rows.Close()

	var spots []*models.Spot
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spot: %w", err)
		}
		spots = append(spots, spot)
	}
	return spots, rows.Err()
}
