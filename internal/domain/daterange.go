package domain

import "time"

// TripType governs whether a return date is required.
type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
)

// DateRange holds the selected travel dates. End is nil for one-way trips
// and while an end date has not been picked yet. Once committed for a
// round trip, End is never before Start.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Complete reports whether the range satisfies the completeness requirement
// of the given trip type: start only for one-way, start and end for
// round trips.
func (r DateRange) Complete(t TripType) bool {
	if r.Start == nil {
		return false
	}
	if t == TripRoundTrip {
		return r.End != nil
	}
	return true
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring the time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayBefore reports whether a falls on an earlier calendar day than b,
// ignoring the time of day.
func DayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
