package models

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestDateRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b DateRange
		want bool
	}{
		{"disjoint", DateRange{day(0), day(4)}, DateRange{day(9), day(14)}, false},
		{"touching boundaries", DateRange{day(0), day(4)}, DateRange{day(4), day(8)}, false},
		{"partial overlap left", DateRange{day(0), day(5)}, DateRange{day(3), day(10)}, true},
		{"partial overlap right", DateRange{day(3), day(10)}, DateRange{day(0), day(5)}, true},
		{"contained", DateRange{day(0), day(10)}, DateRange{day(2), day(5)}, true},
		{"containing", DateRange{day(2), day(5)}, DateRange{day(0), day(10)}, true},
		{"identical", DateRange{day(1), day(3)}, DateRange{day(1), day(3)}, true},
		{"spans two bookings", DateRange{day(3), day(10)}, DateRange{day(0), day(4)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestDateRange_Overlaps_Randomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randRange := func() DateRange {
		start := rng.Intn(60)
		return DateRange{Start: day(start), End: day(start + 1 + rng.Intn(20))}
	}

	for i := 0; i < 1000; i++ {
		a := randRange()
		b := randRange()

		want := a.Start.Before(b.End) && b.Start.Before(a.End)
		got := a.Overlaps(b)
		require.Equal(t, want, got, "a=%v b=%v", a, b)
		require.Equal(t, got, b.Overlaps(a), "overlap must be symmetric")
	}
}

func TestDateRange_Valid(t *testing.T) {
	assert.True(t, DateRange{day(0), day(1)}.Valid())
	assert.False(t, DateRange{day(1), day(1)}.Valid())
	assert.False(t, DateRange{day(2), day(1)}.Valid())
}
