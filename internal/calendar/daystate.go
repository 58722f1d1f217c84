package calendar

import (
	"time"

	"github.com/skytrips/search-core/internal/domain"
)

// DayInfo is the styling and eligibility of one day cell. It is computed
// by DayState, a pure function, so the rendering layer never re-derives
// calendar rules.
type DayInfo struct {
	// Disabled days cannot be picked: days before today, and, only while
	// actively selecting an end date, days before the chosen start.
	Disabled bool
	// IsStart / IsEnd mark the exact range boundaries.
	IsStart bool
	IsEnd   bool
	// InRange marks days strictly between start and end.
	InRange bool
}

// DayState computes the cell info for day given today, the current range
// boundaries (either may be nil), and whether the user is actively
// selecting an end date. When active is false — a reopened calendar
// showing a committed range — the start imposes no lower bound, so the
// user can still see and edit past selections.
func DayState(day, today time.Time, start, end *time.Time, active bool) DayInfo {
	var info DayInfo

	if domain.DayBefore(day, today) {
		info.Disabled = true
	}
	if active && start != nil && domain.DayBefore(day, *start) {
		info.Disabled = true
	}

	if start != nil && domain.SameDay(day, *start) {
		info.IsStart = true
	}
	if end != nil && domain.SameDay(day, *end) {
		info.IsEnd = true
	}
	if start != nil && end != nil &&
		domain.DayBefore(*start, day) && domain.DayBefore(day, *end) {
		info.InRange = true
	}

	return info
}
