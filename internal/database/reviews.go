package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayspot/internal/models"

	"github.com/mattn/go-sqlite3"
)

// CreateReview inserts a review. The UNIQUE(spot_id, user_id) index is the
// authoritative guard against duplicate reviews; its violation surfaces as
// ErrDuplicateReview.
func (db *DB) CreateReview(ctx context.Context, review *models.Review) error {
	query := `INSERT INTO reviews (spot_id, user_id, review, stars, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		review.SpotID, review.UserID, review.Review, review.Stars, now, now,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrDuplicateReview
		}
		return mapStoreErr(fmt.Errorf("failed to create review: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	review.ID = id
	review.CreatedAt = now
	review.UpdatedAt = now
	return nil
}

func (db *DB) DeleteReview(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return mapStoreErr(fmt.Errorf("failed to delete review: %w", err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (db *DB) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	var r models.Review
	query := `SELECT id, spot_id, user_id, review, stars, created_at, updated_at FROM reviews WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.SpotID, &r.UserID, &r.Review, &r.Stars, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get review: %w", err))
	}
	return &r, nil
}

// GetReviewsForSpot returns a spot's reviews with author identity and any
// attached images.
func (db *DB) GetReviewsForSpot(ctx context.Context, spotID int64) ([]*models.SpotReview, error) {
	query := `SELECT r.id, r.spot_id, r.user_id, r.review, r.stars, r.created_at, r.updated_at,
                     u.id, u.first_name, u.last_name
              FROM reviews r JOIN users u ON u.id = r.user_id
              WHERE r.spot_id = ? ORDER BY r.id`
	rows, err := db.QueryContext(ctx, query, spotID)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get reviews for spot: %w", err))
	}
	defer rows.Close()

	var reviews []*models.SpotReview
	byID := make(map[int64]*models.SpotReview)
	for rows.Next() {
		var sr models.SpotReview
		err := rows.Scan(
			&sr.ID, &sr.SpotID, &sr.UserID, &sr.Review.Review, &sr.Stars, &sr.CreatedAt, &sr.UpdatedAt,
			&sr.User.ID, &sr.User.FirstName, &sr.User.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		sr.ReviewImages = []models.ReviewImage{}
		reviews = append(reviews, &sr)
		byID[sr.ID] = &sr
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(reviews) == 0 {
		return reviews, nil
	}

	imgQuery := `SELECT ri.id, ri.review_id, ri.url, ri.created_at, ri.updated_at
                 FROM review_images ri JOIN reviews r ON r.id = ri.review_id
                 WHERE r.spot_id = ? ORDER BY ri.id`
	imgRows, err := db.QueryContext(ctx, imgQuery, spotID)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get review images: %w", err))
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img models.ReviewImage
		if err := imgRows.Scan(&img.ID, &img.ReviewID, &img.URL, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review image: %w", err)
		}
		if sr, ok := byID[img.ReviewID]; ok {
			sr.ReviewImages = append(sr.ReviewImages, img)
		}
	}
	return reviews, imgRows.Err()
}

// GetRatingAggregate computes the review count and average stars for one
// spot. AVG over zero rows is NULL, which maps to a nil AvgStars.
func (db *DB) GetRatingAggregate(ctx context.Context, spotID int64) (models.RatingAggregate, error) {
	var agg models.RatingAggregate
	var avg sql.NullFloat64
	query := `SELECT COUNT(*), AVG(stars) FROM reviews WHERE spot_id = ?`
	err := db.QueryRowContext(ctx, query, spotID).Scan(&agg.Count, &avg)
	if err != nil {
		return models.RatingAggregate{}, mapStoreErr(fmt.Errorf("failed to get rating aggregate: %w", err))
	}
	if avg.Valid {
		agg.AvgStars = &avg.Float64
	}
	return agg, nil
}

// GetRatingAggregates computes aggregates for many spots in one GROUP BY
// query. Spots without reviews are simply absent from the result map.
func (db *DB) GetRatingAggregates(ctx context.Context, spotIDs []int64) (map[int64]models.RatingAggregate, error) {
	aggs := make(map[int64]models.RatingAggregate, len(spotIDs))
	if len(spotIDs) == 0 {
		return aggs, nil
	}

	query := `SELECT spot_id, COUNT(*), AVG(stars) FROM reviews
              WHERE spot_id IN (` + placeholders(len(spotIDs)) + `) GROUP BY spot_id`
	rows, err := db.QueryContext(ctx, query, int64Args(spotIDs)...)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("failed to get rating aggregates: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		var spotID int64
		var agg models.RatingAggregate
		var avg sql.NullFloat64
		if err := rows.Scan(&spotID, &agg.Count, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan rating aggregate: %w", err)
		}
		if avg.Valid {
			agg.AvgStars = &avg.Float64
		}
		aggs[spotID] = agg
	}
	return aggs, rows.Err()
}
