// Package domain contains the core data types for the SkyTrips search form.
// This package has almost no external dependencies and is imported by every
// other internal package (autocomplete, calendar, form, lookup, storage).
package domain

import (
	"fmt"
	"strings"
)

// Location identifies a place a traveler can depart from or arrive at.
// A cleared location is the zero value (all empty strings), never a nil
// pointer; callers distinguish "nothing selected" from "selected" by
// checking Code.
type Location struct {
	// Code is the short unique identifier, e.g. an IATA airport code.
	// Non-empty once a selection is committed.
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// IsZero reports whether no location is selected.
func (l Location) IsZero() bool {
	return l.Code == ""
}

// Label returns the read-only field text for a committed selection,
// e.g. "Kathmandu (KTM)".
func (l Location) Label() string {
	if l.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", l.City, l.Code)
}

// LocationGroup is a municipality-level bucket of location candidates
// returned by a single lookup query. Groups are replaced wholesale on every
// successful response and never mutated in place.
type LocationGroup struct {
	Municipality string     `json:"municipality"`
	Region       string     `json:"region"`
	Country      string     `json:"country"`
	Locations    []Location `json:"locations"`
}

// Key returns the derived group identity used both as a list key and as the
// key into the expansion map.
func (g LocationGroup) Key() string {
	return strings.Join([]string{g.Municipality, g.Country, g.Region}, "|")
}
