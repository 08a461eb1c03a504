package models

const (
	// DefaultPage is used when the page parameter is missing or below 1.
	DefaultPage = 1

	// DefaultPageSize is used when the size parameter is missing or below 1.
	DefaultPageSize = 20

	// NoRatingPlaceholder is the owned-spots convention for a spot without
	// reviews. The paginated listing uses null instead; both shapes are
	// load-bearing for existing consumers.
	NoRatingPlaceholder = "There is no Rating attached to this user"

	// MaxNameLen bounds spot names and address fields.
	MaxNameLen = 50

	// MaxReviewLen bounds review text.
	MaxReviewLen = 255

	// MinStars and MaxStars bound a review's star rating.
	MinStars = 1
	MaxStars = 5

	// DateLayout is the wire format for booking dates.
	DateLayout = "2006-01-02"
)
