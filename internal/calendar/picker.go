// Package calendar implements the trip-type-aware date range picker: the
// open/closed overlay state, the start/end selection machine, and the pure
// day-cell eligibility function the rendering layer styles cells with.
package calendar

import (
	"sync"
	"time"

	"github.com/skytrips/search-core/internal/domain"
	"github.com/skytrips/search-core/internal/overlay"
)

// Options configures a Picker.
type Options struct {
	TripType domain.TripType

	// Initial is the previously committed range, if any.
	Initial domain.DateRange

	// OnChange fires whenever the committed range changes: an end-date
	// commit, a start restart (end cleared), a one-way start pick, a
	// clear, or a trip-type flip that drops the end date.
	OnChange func(domain.DateRange)

	// OnTripTypeChange fires when the trip type flips. When nil the
	// picker owns the trip type internally.
	OnTripTypeChange func(domain.TripType)

	// Now supplies "today" for eligibility checks. Defaults to time.Now.
	Now func() time.Time
}

// Picker owns one date range field.
type Picker struct {
	mu sync.Mutex

	tripType          domain.TripType
	rng               domain.DateRange
	open              bool
	activelySelecting bool
	onChange          func(domain.DateRange)
	onTripTypeChange  func(domain.TripType)
	now               func() time.Time
}

// New constructs a Picker.
func New(opts Options) *Picker {
	if opts.TripType == "" {
		opts.TripType = domain.TripOneWay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Picker{
		tripType:         opts.TripType,
		rng:              opts.Initial,
		onChange:         opts.OnChange,
		onTripTypeChange: opts.OnTripTypeChange,
		now:              opts.Now,
	}
}

// Open shows the calendar. A plain open is a reopen of a previously
// committed range, so nothing below the old start gets disabled.
func (p *Picker) Open() {
	p.mu.Lock()
	p.open = true
	p.activelySelecting = false
	p.mu.Unlock()
}

// Close hides the calendar without touching the dates.
func (p *Picker) Close() {
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()
}

// SetTripType flips the trip mode.
//
// One-way to round-trip with a start date already picked auto-opens the
// calendar: the user is assumed to want an end date immediately. The flip
// back drops the end date and leaves the overlay state alone.
func (p *Picker) SetTripType(t domain.TripType) {
	p.mu.Lock()
	if t == p.tripType {
		p.mu.Unlock()
		return
	}
	prev := p.tripType
	p.tripType = t

	var changed *domain.DateRange
	if t == domain.TripRoundTrip && prev == domain.TripOneWay && p.rng.Start != nil {
		p.open = true
		p.activelySelecting = false
	}
	if t == domain.TripOneWay && p.rng.End != nil {
		p.rng.End = nil
		r := p.rng
		changed = &r
	}
	p.mu.Unlock()

	if p.onTripTypeChange != nil {
		p.onTripTypeChange(t)
	}
	if changed != nil && p.onChange != nil {
		p.onChange(*changed)
	}
}

// PickDate handles a click on a day cell. Ineligible days are ignored.
func (p *Picker) PickDate(day time.Time) {
	p.mu.Lock()
	if !p.open || p.dayLocked(day).Disabled {
		p.mu.Unlock()
		return
	}

	var changed *domain.DateRange
	d := day

	if p.tripType == domain.TripOneWay {
		p.rng = domain.DateRange{Start: &d}
		r := p.rng
		changed = &r
	} else if p.activelySelecting && p.rng.Start != nil && p.rng.End == nil {
		// Completing the range. Same-day round trips are allowed.
		p.rng.End = &d
		p.activelySelecting = false
		r := p.rng
		changed = &r
	} else {
		// Fresh start pick, or a restart over a committed range: the end
		// date clears and end-selection begins.
		p.rng = domain.DateRange{Start: &d}
		p.activelySelecting = true
		r := p.rng
		changed = &r
	}
	p.mu.Unlock()

	if changed != nil && p.onChange != nil {
		p.onChange(*changed)
	}
}

// Clear resets both dates and reports the empty range.
func (p *Picker) Clear() {
	p.mu.Lock()
	p.rng = domain.DateRange{}
	p.activelySelecting = false
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(domain.DateRange{})
	}
}

// CanApply reports whether the range satisfies the current trip type's
// completeness requirement. The Apply control is disabled until it does.
func (p *Picker) CanApply() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Complete(p.tripType)
}

// Apply closes the overlay. It is a no-op while CanApply is false.
func (p *Picker) Apply() {
	p.mu.Lock()
	if p.rng.Complete(p.tripType) {
		p.open = false
	}
	p.mu.Unlock()
}

// Day returns the styling/eligibility info for one day cell.
func (p *Picker) Day(day time.Time) DayInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dayLocked(day)
}

func (p *Picker) dayLocked(day time.Time) DayInfo {
	return DayState(day, p.now(), p.rng.Start, p.rng.End, p.activelySelecting)
}

// Position places the calendar overlay; its width depends on the trip
// mode rather than on the trigger.
func (p *Picker) Position(trigger overlay.Rect, vp overlay.Viewport) overlay.Position {
	p.mu.Lock()
	t := p.tripType
	p.mu.Unlock()
	return overlay.ComputeCalendar(trigger, vp, t)
}

// --- accessors --------------------------------------------------------------

// TripType returns the current trip mode.
func (p *Picker) TripType() domain.TripType {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tripType
}

// Range returns the committed range (End is nil mid-selection).
func (p *Picker) Range() domain.DateRange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng
}

// IsOpen reports whether the calendar overlay is showing.
func (p *Picker) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// ActivelySelecting reports whether the user is mid-way through a fresh
// end-date pick (which lower-bounds eligible days at the chosen start).
func (p *Picker) ActivelySelecting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activelySelecting
}

// Restore installs an externally supplied trip type and range (recent
// search replay, prefill) without firing callbacks or opening the
// overlay.
func (p *Picker) Restore(t domain.TripType, r domain.DateRange) {
	p.mu.Lock()
	if t != "" {
		p.tripType = t
	}
	p.rng = r
	p.activelySelecting = false
	p.open = false
	p.mu.Unlock()
}
