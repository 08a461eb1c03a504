package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayspot/internal/models"
)

func (db *DB) CreateSpotImage(ctx context.Context, image *models.SpotImage) error {
	query := `INSERT INTO spot_images (spot_id, url, preview, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, image.SpotID, image.URL, image.Preview, now, now)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to create spot image: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	image.ID = id
	image.CreatedAt = now
	image.UpdatedAt = now
	return nil
}

func (db *DB) CreateReviewImage(ctx context.Context, image *models.ReviewImage) error {
	query := `INSERT INTO review_images (review_id, url, created_at, updated_at) VALUES (?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, image.ReviewID, image.URL, now, now)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to create review image: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	image.ID = id
	image.CreatedAt = now
	image.UpdatedAt = now
	return nil
}

func (db *DB) GetSpotImages(ctx context.Context, spotID int64) ([]models.SpotImage, error) {
	query := `SELECT id, spot_id, url, preview, created_at, updated_at FROM spot_images WHERE spot_id = ? ORDER BY id`
	rows, err := db.QueryContext(ctx, query, spotID)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get spot images: %w", err))
	}
	defer rows.Close()

	images := []models.SpotImage{}
	for rows.Next() {
		var img models.SpotImage
		if err := rows.Scan(&img.ID, &img.SpotID, &img.URL, &img.Preview, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan spot image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetPreviewImage returns the preview-flagged image URL with the lowest id,
// or "" when the spot has none. Lowest id is the documented tie-break when
// several images carry the preview flag.
func (db *DB) GetPreviewImage(ctx context.Context, spotID int64) (string, error) {
	var url string
	query := `SELECT url FROM spot_images WHERE spot_id = ? AND preview = 1 ORDER BY id LIMIT 1`
	err := db.QueryRowContext(ctx, query, spotID).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", mapStoreErr(fmt.Errorf("failed to get preview image: %w", err))
	}
	return url, nil
}

// GetPreviewImages is the batched variant keyed by spot id. Spots without
// a preview image are absent from the map.
func (db *DB) GetPreviewImages(ctx context.Context, spotIDs []int64) (map[int64]string, error) {
	previews := make(map[int64]string, len(spotIDs))
	if len(spotIDs) == 0 {
		return previews, nil
	}

	// With MIN(id) in the select list SQLite resolves the bare url column
	// from the same row, which is exactly the lowest-id tie-break.
	query := `SELECT spot_id, MIN(id), url FROM spot_images
              WHERE preview = 1 AND spot_id IN (` + placeholders(len(spotIDs)) + `)
              GROUP BY spot_id`
	rows, err := db.QueryContext(ctx, query, int64Args(spotIDs)...)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get preview images: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var spotID, minID int64
		var url string
		if err := rows.Scan(&spotID, &minID, &url); err != nil {
			return nil, fmt.Errorf("failed to scan preview image: %w", err)
		}
		previews[spotID] = url
	}
	return previews, rows.Err()
}
