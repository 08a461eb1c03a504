package validate

import "stayspot/internal/models"

// SpotSchema mirrors the field rules every spot create/update must pass.
var SpotSchema = Schema{
	Required("address", "Street address is required."),
	Length("address", 1, models.MaxNameLen, "Street address must be less than 50 characters"),
	Required("city", "City is required."),
	Length("city", 1, models.MaxNameLen, "City must be less than 50 characters"),
	Alpha("city", "City cannot be a number"),
	Required("state", "State is required."),
	Length("state", 1, models.MaxNameLen, "State must be less than 50 characters"),
	Alpha("state", "State cannot be a number."),
	Required("country", "Country is required."),
	Length("country", 1, models.MaxNameLen, "Country must be less than 50 characters"),
	Alpha("country", "Country cannot be a number."),
	Required("name", "Name must exist and be less than 50 characters."),
	Length("name", 1, models.MaxNameLen, "Name must exist and be less than 50 characters."),
	Required("description", "Description is required."),
	IntMin("price", 1, "Price is required and must be greater than 0."),
}

// ReviewSchema covers review text and star bounds.
var ReviewSchema = Schema{
	Required("review", "Review text is required. Character Limit: 255"),
	Length("review", 1, models.MaxReviewLen, "Review text is required. Character Limit: 255"),
	IntRange("stars", models.MinStars, models.MaxStars, "Stars must be an integer from 1 to 5."),
}

// SpotValues flattens a spot for schema evaluation.
func SpotValues(s *models.Spot) Values {
	return Values{
		"address":     s.Address,
		"city":        s.City,
		"state":       s.State,
		"country":     s.Country,
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
	}
}

// ReviewValues flattens a review for schema evaluation.
func ReviewValues(r *models.Review) Values {
	return Values{
		"review": r.Review,
		"stars":  r.Stars,
	}
}
