package models

import "time"

type Spot struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListedSpot is a Spot merged with the read-side aggregates used by the
// paginated listing endpoint. AvgRating is null when the spot has no
// reviews; PreviewImage is "" when no preview image exists.
type ListedSpot struct {
	Spot
	AvgRating    *float64 `json:"avgRating"`
	PreviewImage string   `json:"previewImage"`
}

// OwnedSpot is the "my spots" projection. Its rating convention differs
// from ListedSpot on purpose: a one-decimal string, or a descriptive
// placeholder when no reviews exist. Consumers depend on each literally.
type OwnedSpot struct {
	Spot
	AvgRating    string `json:"avgRating"`
	PreviewImage string `json:"previewImage"`
}

// SpotDetail is the single-spot view: full image list, owner identity and
// unrounded rating aggregates. It carries no previewImage field.
type SpotDetail struct {
	Spot
	SpotImages    []SpotImage `json:"SpotImages"`
	Owner         *UserRef    `json:"Owner"`
	NumReviews    int64       `json:"numReviews"`
	AvgStarRating *float64    `json:"avgStarRating"`
}
