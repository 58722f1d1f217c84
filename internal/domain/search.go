package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Leg is one origin-destination segment of a search. One-way searches carry
// a single leg; round trips carry two mirrored legs, each with its own date.
type Leg struct {
	Origin      Location  `json:"origin"`
	Destination Location  `json:"destination"`
	Date        time.Time `json:"date"`
}

// SearchRequest is the coordinator's output: the normalized, validated
// search handed to the execute callback. It is also the unit persisted into
// the recent-searches list.
type SearchRequest struct {
	Origin      Location       `json:"origin"`
	Destination Location       `json:"destination"`
	Dates       DateRange      `json:"dates"`
	Passengers  PassengerCount `json:"passengers"`
	Cabin       CabinClass     `json:"cabin"`
	TripType    TripType       `json:"trip_type"`
	Legs        []Leg          `json:"legs"`
}

// BuildLegs derives the leg list from the top-level fields: one leg for
// one-way, two mirrored legs for round trips.
func (r SearchRequest) BuildLegs() []Leg {
	if r.Dates.Start == nil {
		return nil
	}
	legs := []Leg{{Origin: r.Origin, Destination: r.Destination, Date: *r.Dates.Start}}
	if r.TripType == TripRoundTrip && r.Dates.End != nil {
		legs = append(legs, Leg{Origin: r.Destination, Destination: r.Origin, Date: *r.Dates.End})
	}
	return legs
}

// RecentSearch is a persisted record of an accepted search request.
type RecentSearch struct {
	ID        uuid.UUID     `json:"id"`
	Request   SearchRequest `json:"request"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewRecentSearch wraps an accepted request in a recency record.
func NewRecentSearch(req SearchRequest, now time.Time) RecentSearch {
	return RecentSearch{ID: uuid.New(), Request: req, CreatedAt: now}
}

// DedupeKey returns the identity tuple used to collapse duplicate recency
// entries: origin code, destination code, trip type, dates, passenger
// counts, and cabin class.
func (r RecentSearch) DedupeKey() string {
	return r.Request.DedupeKey()
}

// DedupeKey returns the identity tuple for this request. Two requests with
// equal keys are the same search for recency purposes.
func (r SearchRequest) DedupeKey() string {
	parts := []string{
		r.Origin.Code,
		r.Destination.Code,
		string(r.TripType),
		dateKey(r.Dates.Start),
		dateKey(r.Dates.End),
		fmt.Sprintf("%d-%d-%d", r.Passengers.Adults, r.Passengers.Children, r.Passengers.Infants),
		string(r.Cabin),
	}
	return strings.Join(parts, "|")
}

func dateKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
