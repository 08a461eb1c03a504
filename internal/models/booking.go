package models

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	SpotID    int64     `json:"spotId"`
	UserID    int64     `json:"userId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// OwnerBooking is the booking projection returned to the spot owner:
// the full record plus the guest's identity.
type OwnerBooking struct {
	Booking
	User UserRef `json:"User"`
}

// GuestBooking is the redacted projection returned to everyone else.
// Guest identity and the booking id are withheld.
type GuestBooking struct {
	SpotID    int64     `json:"spotId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
