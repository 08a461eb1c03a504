package models

import "time"

// DateRange is a half-open calendar interval [Start, End). A booking's
// checkout day may coincide with the next guest's check-in day, so equal
// boundaries never count as a conflict.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the range covers at least one night.
func (r DateRange) Valid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether two ranges share any point in time. This is the
// full interval-intersection test, so partial overlaps are caught as well
// as containment.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
