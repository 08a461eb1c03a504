package models

import "time"

type SpotImage struct {
	ID        int64     `json:"id"`
	SpotID    int64     `json:"spotId"`
	URL       string    `json:"url"`
	Preview   bool      `json:"preview"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReviewImage struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"reviewId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
