package models

import "time"

type Review struct {
	ID        int64     `json:"id"`
	SpotID    int64     `json:"spotId"`
	UserID    int64     `json:"userId"`
	Review    string    `json:"review"`
	Stars     int64     `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SpotReview is a review with its author and attached images, as returned
// by the per-spot review listing.
type SpotReview struct {
	Review
	User         UserRef       `json:"User"`
	ReviewImages []ReviewImage `json:"ReviewImages"`
}

// RatingAggregate is derived on read from a spot's reviews; it is never
// stored. AvgStars is nil when Count is zero so that "no rating" stays
// distinguishable from a zero rating.
type RatingAggregate struct {
	AvgStars *float64
	Count    int64
}
