// Package form composes the two location fields, the date range picker,
// and the passenger counter into the search form: it owns the committed
// values, runs cross-field validation at submit time, builds the outbound
// search request, and persists and replays recent searches.
package form

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skytrips/search-core/internal/autocomplete"
	"github.com/skytrips/search-core/internal/calendar"
	"github.com/skytrips/search-core/internal/domain"
	"github.com/skytrips/search-core/internal/lookup"
	"github.com/skytrips/search-core/internal/passenger"
	"github.com/skytrips/search-core/internal/storage"
)

// Validation messages, in the order the rules run. Only the first failing
// rule is reported.
const (
	MsgSelectOrigin      = "select a departure airport"
	MsgSelectDestination = "select a destination airport"
	MsgSelectDate        = "select a departure date"
	MsgReturnRequired    = "return date is required for round trips"
	MsgReturnBeforeStart = "return date must be after departure date"
)

// msgSameAirport formats the origin/destination collision message.
func msgSameAirport(city string) string {
	return fmt.Sprintf("%s cannot be used for both departure and destination", city)
}

// Options configures a Coordinator.
type Options struct {
	// Lookup serves both location fields. Required.
	Lookup lookup.Client

	// Store persists recent searches, the airports prefill pair, and the
	// selected currency. Required.
	Store *storage.Service

	// Execute receives the finished search request. This is the sole
	// hand-off point to the rest of the application.
	Execute func(domain.SearchRequest)

	// Notify receives transient user-facing validation notices. Optional.
	Notify func(message string)

	// OnUpdate is forwarded to the field engines so a rendering shell can
	// repaint on async changes. Optional.
	OnUpdate func()

	DefaultCurrency string
	Logger          *slog.Logger
	Now             func() time.Time

	// Timing overrides for the field engines; zero values keep defaults.
	DebounceInterval time.Duration
	MinLoadingTime   time.Duration
}

// Coordinator is the search form. All mutation goes through its methods;
// the child components call back into it on every committed change.
type Coordinator struct {
	mu sync.Mutex

	origin *autocomplete.Engine
	dest   *autocomplete.Engine
	dates  *calendar.Picker

	originLoc  domain.Location
	destLoc    domain.Location
	rng        domain.DateRange
	passengers domain.PassengerCount
	cabin      domain.CabinClass
	currency   string

	store   *storage.Service
	execute func(domain.SearchRequest)
	notify  func(string)
	log     *slog.Logger
	now     func() time.Time
}

// New wires the form. Fields are prefilled from the persisted airports
// pair and the stored currency when present.
func New(opts Options) *Coordinator {
	if opts.Lookup == nil {
		panic("form: Options.Lookup is required")
	}
	if opts.Store == nil {
		panic("form: Options.Store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "USD"
	}

	c := &Coordinator{
		passengers: domain.DefaultPassengers(),
		cabin:      domain.CabinEconomy,
		store:      opts.Store,
		execute:    opts.Execute,
		notify:     opts.Notify,
		log:        opts.Logger,
		now:        opts.Now,
	}

	c.origin = autocomplete.New(autocomplete.Options{
		Label:            "From",
		Placeholder:      "Departure airport or city",
		Client:           opts.Lookup,
		OnChange:         c.SetOrigin,
		OnUpdate:         opts.OnUpdate,
		Logger:           opts.Logger,
		DebounceInterval: opts.DebounceInterval,
		MinLoadingTime:   opts.MinLoadingTime,
	})
	c.dest = autocomplete.New(autocomplete.Options{
		Label:            "To",
		Placeholder:      "Destination airport or city",
		Client:           opts.Lookup,
		OnChange:         c.SetDestination,
		OnUpdate:         opts.OnUpdate,
		Logger:           opts.Logger,
		DebounceInterval: opts.DebounceInterval,
		MinLoadingTime:   opts.MinLoadingTime,
	})
	c.dates = calendar.New(calendar.Options{
		TripType: domain.TripOneWay,
		OnChange: c.setRange,
		Now:      opts.Now,
	})

	c.currency = opts.Store.Currency(opts.DefaultCurrency)

	// Prefill from the last committed pair, if any survived a reload.
	origin, dest := opts.Store.Airports()
	if !origin.IsZero() {
		c.originLoc = origin
		c.origin.SetValue(origin)
	}
	if !dest.IsZero() {
		c.destLoc = dest
		c.dest.SetValue(dest)
	}
	c.syncExclusions()

	return c
}

// Origin exposes the departure field engine to the rendering layer.
func (c *Coordinator) Origin() *autocomplete.Engine { return c.origin }

// Destination exposes the arrival field engine to the rendering layer.
func (c *Coordinator) Destination() *autocomplete.Engine { return c.dest }

// Dates exposes the date range picker to the rendering layer.
func (c *Coordinator) Dates() *calendar.Picker { return c.dates }

// SetOrigin commits the departure location. A commit colliding with the
// destination is rejected: the field resets and the prior value stands.
func (c *Coordinator) SetOrigin(loc domain.Location) {
	c.commitLocation(loc, &c.originLoc, &c.destLoc, c.origin)
}

// SetDestination commits the arrival location, with the mirrored
// collision rule.
func (c *Coordinator) SetDestination(loc domain.Location) {
	c.commitLocation(loc, &c.destLoc, &c.originLoc, c.dest)
}

func (c *Coordinator) commitLocation(loc domain.Location, target, other *domain.Location, engine *autocomplete.Engine) {
	c.mu.Lock()
	if !loc.IsZero() && loc.Code == other.Code {
		c.mu.Unlock()
		engine.SetValue(domain.Location{})
		c.report(msgSameAirport(loc.City))
		return
	}
	*target = loc
	origin, dest := c.originLoc, c.destLoc
	c.mu.Unlock()

	c.syncExclusions()
	if err := c.store.SetAirports(origin, dest); err != nil {
		c.log.Warn("airport prefill write failed", "error", err)
	}
}

// syncExclusions points each field's excluded code at the other field's
// committed selection.
func (c *Coordinator) syncExclusions() {
	c.mu.Lock()
	originCode, destCode := c.originLoc.Code, c.destLoc.Code
	c.mu.Unlock()
	c.origin.SetExcludeCode(destCode)
	c.dest.SetExcludeCode(originCode)
}

func (c *Coordinator) setRange(r domain.DateRange) {
	c.mu.Lock()
	c.rng = r
	c.mu.Unlock()
}

// Swap exchanges origin and destination. It is all-or-nothing: with
// either side missing it reports which one and mutates nothing.
func (c *Coordinator) Swap() error {
	c.mu.Lock()
	if c.originLoc.IsZero() {
		c.mu.Unlock()
		err := domain.NewValidationError("origin", MsgSelectOrigin)
		c.report(err.Message)
		return err
	}
	if c.destLoc.IsZero() {
		c.mu.Unlock()
		err := domain.NewValidationError("destination", MsgSelectDestination)
		c.report(err.Message)
		return err
	}
	c.originLoc, c.destLoc = c.destLoc, c.originLoc
	origin, dest := c.originLoc, c.destLoc
	c.mu.Unlock()

	c.origin.SetValue(origin)
	c.dest.SetValue(dest)
	c.syncExclusions()
	if err := c.store.SetAirports(origin, dest); err != nil {
		c.log.Warn("airport prefill write failed", "error", err)
	}
	return nil
}

// Validate runs the cross-field rules in order and returns the first
// failure. It runs at submit time only; keystrokes never trigger it.
func (c *Coordinator) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Coordinator) validateLocked() error {
	if c.originLoc.IsZero() {
		return domain.NewValidationError("origin", MsgSelectOrigin)
	}
	if c.destLoc.IsZero() {
		return domain.NewValidationError("destination", MsgSelectDestination)
	}
	if c.originLoc.Code == c.destLoc.Code {
		return domain.NewValidationError("destination", msgSameAirport(c.originLoc.City))
	}
	if c.rng.Start == nil {
		return domain.NewValidationError("dates", MsgSelectDate)
	}
	if c.dates.TripType() == domain.TripRoundTrip {
		if c.rng.End == nil {
			return domain.NewValidationError("dates", MsgReturnRequired)
		}
		if domain.DayBefore(*c.rng.End, *c.rng.Start) {
			return domain.NewValidationError("dates", MsgReturnBeforeStart)
		}
	}
	return nil
}

// Submit validates the form, builds the search request, hands it to the
// execute callback, and records it in the recency list. Validation
// failures are reported and returned; persistence failures are logged
// only — the search itself has already been handed off.
func (c *Coordinator) Submit() (domain.SearchRequest, error) {
	c.mu.Lock()
	if err := c.validateLocked(); err != nil {
		c.mu.Unlock()
		c.report(err.Error())
		return domain.SearchRequest{}, err
	}

	req := domain.SearchRequest{
		Origin:      c.originLoc,
		Destination: c.destLoc,
		Dates:       c.rng,
		Passengers:  c.passengers,
		Cabin:       c.cabin,
		TripType:    c.dates.TripType(),
	}
	req.Legs = req.BuildLegs()
	now := c.now()
	c.mu.Unlock()

	if c.execute != nil {
		c.execute(req)
	}
	if err := c.store.SaveRecentSearch(domain.NewRecentSearch(req, now)); err != nil {
		c.log.Warn("recent search write failed", "error", err)
	}
	return req, nil
}

// RecentSearches returns the persisted recency list, most recent first.
func (c *Coordinator) RecentSearches() []domain.RecentSearch {
	return c.store.RecentSearches()
}

// UseRecent replays a recency entry into every child component and
// immediately resubmits it.
func (c *Coordinator) UseRecent(rec domain.RecentSearch) (domain.SearchRequest, error) {
	req := rec.Request

	c.mu.Lock()
	c.originLoc = req.Origin
	c.destLoc = req.Destination
	c.rng = req.Dates
	c.passengers = req.Passengers
	c.cabin = req.Cabin
	c.mu.Unlock()

	c.origin.SetValue(req.Origin)
	c.dest.SetValue(req.Destination)
	c.dates.Restore(req.TripType, req.Dates)
	c.syncExclusions()

	return c.Submit()
}

// AdjustPassengers feeds one increment or decrement through the bounded
// counter rules and returns the resulting count.
func (c *Coordinator) AdjustPassengers(field passenger.Field, delta int) domain.PassengerCount {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passengers = passenger.Apply(c.passengers, field, delta)
	return c.passengers
}

// Passengers returns the current party composition.
func (c *Coordinator) Passengers() domain.PassengerCount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passengers
}

// SetCabin selects the cabin class. No cross-validation applies.
func (c *Coordinator) SetCabin(cabin domain.CabinClass) {
	c.mu.Lock()
	c.cabin = cabin
	c.mu.Unlock()
}

// Cabin returns the selected cabin class.
func (c *Coordinator) Cabin() domain.CabinClass {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cabin
}

// SetTripType flips the trip mode via the picker (which owns the flip
// affordances).
func (c *Coordinator) SetTripType(t domain.TripType) {
	c.dates.SetTripType(t)
}

// Currency returns the selected currency.
func (c *Coordinator) Currency() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currency
}

// SetCurrency selects and persists the currency.
func (c *Coordinator) SetCurrency(code string) {
	c.mu.Lock()
	c.currency = code
	c.mu.Unlock()
	if err := c.store.SetCurrency(code); err != nil {
		c.log.Warn("currency write failed", "error", err)
	}
}

// OriginLocation returns the committed departure location.
func (c *Coordinator) OriginLocation() domain.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.originLoc
}

// DestinationLocation returns the committed arrival location.
func (c *Coordinator) DestinationLocation() domain.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destLoc
}

// Stop releases the field engines' timers. Call on unmount.
func (c *Coordinator) Stop() {
	c.origin.Stop()
	c.dest.Stop()
}

func (c *Coordinator) report(message string) {
	if c.notify != nil {
		c.notify(message)
	}
}
