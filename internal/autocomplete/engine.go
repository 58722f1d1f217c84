// Package autocomplete implements the per-field location search engine:
// debounced querying, grouped results with expand/collapse, selection, and
// overlay placement for one origin or destination field.
//
// The engine is driven by discrete events (SetText, SelectRow, Escape,
// OutsideClick, ...) and publishes state through accessors; it knows
// nothing about rendering. Async lookup completions re-enter through a
// mutex, and stale completions are discarded both by commit state and by a
// monotonic request sequence, so out-of-order responses can never clobber
// a newer view.
package autocomplete

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/skytrips/search-core/internal/domain"
	"github.com/skytrips/search-core/internal/lookup"
	"github.com/skytrips/search-core/internal/overlay"
	"github.com/skytrips/search-core/internal/timing"
)

// State enumerates the field states.
type State int

const (
	// StateIdle: no text, no committed selection.
	StateIdle State = iota
	// StateTyping: free text entered, debounce timer running.
	StateTyping
	// StateLoading: a lookup request is in flight; the overlay shows a
	// loading indicator for at least the minimum display time.
	StateLoading
	// StateResults: grouped results (or an inline error) are shown.
	StateResults
	// StateSelected: a location is committed; the field is read-only.
	StateSelected
)

// User-facing overlay messages.
const (
	FetchErrorMessage = "Failed to fetch locations, please try again"
	NoResultsMessage  = "No results found"
	ExcludedRowLabel  = "Already selected as the other airport"
)

// Default timings. Both are overridable per engine, which the tests use.
const (
	DefaultDebounceInterval = 300 * time.Millisecond
	DefaultMinLoadingTime   = 300 * time.Millisecond
)

// Options configures an Engine.
type Options struct {
	Label       string
	Placeholder string

	// Client performs lookups. Required.
	Client lookup.Client

	// OnChange fires with the committed location on selection, and with
	// the zero Location when the field is cleared.
	OnChange func(domain.Location)

	// OnUpdate is invoked after an asynchronous state change (lookup
	// completion) so a rendering shell can repaint. Optional.
	OnUpdate func()

	// Popular overrides the bundled popular-locations seed. Optional.
	Popular []domain.LocationGroup

	Logger           *slog.Logger
	DebounceInterval time.Duration
	MinLoadingTime   time.Duration
}

// Engine owns the state of one location field.
type Engine struct {
	mu sync.Mutex

	label       string
	placeholder string
	client      lookup.Client
	onChange    func(domain.Location)
	onUpdate    func()
	popular     []domain.LocationGroup
	log         *slog.Logger
	minLoading  time.Duration
	debounce    *timing.Debouncer

	state       State
	open        bool
	text        string
	selection   domain.Location
	excludeCode string
	groups      []domain.LocationGroup
	expanded    map[string]bool
	errMessage  string
	noResults   bool

	// seq is the monotonic request guard: only the completion carrying
	// the latest sequence number may apply its results.
	seq int

	// selecting gates the document-level outside-click handler: the
	// pointer-down that begins a row selection must not also close the
	// overlay.
	selecting bool
}

// New constructs an Engine. Options.Client must be set.
func New(opts Options) *Engine {
	if opts.Client == nil {
		panic("autocomplete: Options.Client is required")
	}
	if opts.DebounceInterval <= 0 {
		opts.DebounceInterval = DefaultDebounceInterval
	}
	if opts.MinLoadingTime == 0 {
		opts.MinLoadingTime = DefaultMinLoadingTime
	} else if opts.MinLoadingTime < 0 {
		opts.MinLoadingTime = 0
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Popular == nil {
		opts.Popular = lookup.Popular()
	}
	return &Engine{
		label:       opts.Label,
		placeholder: opts.Placeholder,
		client:      opts.Client,
		onChange:    opts.OnChange,
		onUpdate:    opts.OnUpdate,
		popular:     opts.Popular,
		log:         opts.Logger,
		minLoading:  opts.MinLoadingTime,
		debounce:    timing.NewDebouncer(opts.DebounceInterval),
		expanded:    make(map[string]bool),
	}
}

// Focus handles a click or focus on the field. While a selection is
// committed this clears it (firing OnChange with the zero Location) and
// re-enters the empty state so the user can search again; otherwise it
// just opens the overlay, seeding it with the popular list when the text
// is empty.
func (e *Engine) Focus() {
	e.mu.Lock()
	cleared := false
	if e.state == StateSelected {
		e.selection = domain.Location{}
		e.text = ""
		cleared = true
	}
	e.state = StateIdle
	if e.text != "" {
		e.state = StateTyping
	}
	e.open = true
	if strings.TrimSpace(e.text) == "" {
		e.showGroupsLocked(e.popular)
		e.state = StateResults
	}
	e.mu.Unlock()

	if cleared && e.onChange != nil {
		e.onChange(domain.Location{})
	}
}

// SetText handles a keystroke. Each call restarts the debounce timer; only
// the last value before a quiet period triggers a lookup.
func (e *Engine) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.state = StateTyping
	e.open = true
	e.errMessage = ""
	e.noResults = false
	e.mu.Unlock()

	e.debounce.Trigger(func() { e.fireQuery(text) })
}

// fireQuery runs when the debounce timer expires.
func (e *Engine) fireQuery(text string) {
	e.mu.Lock()
	if e.state == StateSelected || e.text != text {
		// Superseded by a commit or by further typing.
		e.mu.Unlock()
		return
	}

	query := strings.TrimSpace(text)
	if query == "" {
		// Empty text shows the precomputed popular list, no network call.
		e.showGroupsLocked(e.popular)
		e.state = StateResults
		e.mu.Unlock()
		e.notifyUpdate()
		return
	}

	e.seq++
	seq := e.seq
	e.state = StateLoading
	e.open = true
	e.mu.Unlock()
	e.notifyUpdate()

	go func() {
		// The loading indicator stays visible for at least the minimum
		// display time; the request itself is never delayed.
		groups, err := timing.WithMinimumDuration(e.minLoading, func() ([]domain.LocationGroup, error) {
			return e.client.Search(context.Background(), query)
		})
		e.applyResults(seq, groups, err)
	}()
}

// applyResults installs a lookup completion unless it has gone stale.
func (e *Engine) applyResults(seq int, groups []domain.LocationGroup, err error) {
	e.mu.Lock()
	if seq != e.seq || e.state == StateSelected {
		e.mu.Unlock()
		return
	}

	if err != nil {
		e.log.Debug("lookup failed", "field", e.label, "error", err)
		e.groups = nil
		e.errMessage = FetchErrorMessage
		e.noResults = false
	} else {
		e.showGroupsLocked(groups)
		e.noResults = len(groups) == 0
	}
	e.state = StateResults
	e.mu.Unlock()
	e.notifyUpdate()
}

// showGroupsLocked replaces the result set wholesale and resets the
// expansion map to its default (everything expanded).
func (e *Engine) showGroupsLocked(groups []domain.LocationGroup) {
	e.groups = groups
	e.expanded = make(map[string]bool)
	e.errMessage = ""
	e.noResults = false
}

// BeginSelection marks that a pointer-down landed on a result row, so the
// outside-click that follows it must not close the overlay.
func (e *Engine) BeginSelection() {
	e.mu.Lock()
	e.selecting = true
	e.mu.Unlock()
}

// SelectRow commits the given location. Rows carrying the excluded code
// are disabled and ignored. The popularity mark is fire-and-forget: its
// failure is logged and can never affect the selection.
func (e *Engine) SelectRow(loc domain.Location) {
	e.mu.Lock()
	if loc.IsZero() || loc.Code == e.excludeCode {
		e.selecting = false
		e.mu.Unlock()
		return
	}
	e.selection = loc
	e.text = loc.Label()
	e.state = StateSelected
	e.open = false
	e.selecting = false
	e.errMessage = ""
	e.mu.Unlock()

	if e.onChange != nil {
		e.onChange(loc)
	}

	go func() {
		if err := e.client.MarkPopular(context.Background(), loc.Code); err != nil {
			e.log.Debug("popularity mark failed", "code", loc.Code, "error", err)
		}
	}()
}

// Escape closes the overlay without altering the selection.
func (e *Engine) Escape() {
	e.mu.Lock()
	e.open = false
	e.mu.Unlock()
}

// OutsideClick handles a document-level pointer-down. The click that is
// itself a row selection is absorbed via the selecting flag.
func (e *Engine) OutsideClick() {
	e.mu.Lock()
	if e.selecting {
		e.selecting = false
		e.mu.Unlock()
		return
	}
	e.open = false
	e.mu.Unlock()
}

// SetValue installs an externally-controlled value: a non-zero location
// commits it as if selected (without firing OnChange or the popularity
// mark), the zero location resets the field.
func (e *Engine) SetValue(loc domain.Location) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if loc.IsZero() {
		e.selection = domain.Location{}
		e.text = ""
		e.state = StateIdle
		e.open = false
		return
	}
	e.selection = loc
	e.text = loc.Label()
	e.state = StateSelected
	e.open = false
}

// SetExcludeCode sets the code that may not be chosen in this field
// (the paired field's committed selection). Matching rows render disabled
// rather than being removed.
func (e *Engine) SetExcludeCode(code string) {
	e.mu.Lock()
	e.excludeCode = code
	e.mu.Unlock()
}

// ToggleGroup flips the expansion state of one result group.
func (e *Engine) ToggleGroup(key string) {
	e.mu.Lock()
	e.expanded[key] = !e.isExpandedLocked(key)
	e.mu.Unlock()
}

// IsExpanded reports a group's expansion state; groups default to
// expanded.
func (e *Engine) IsExpanded(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isExpandedLocked(key)
}

func (e *Engine) isExpandedLocked(key string) bool {
	if v, ok := e.expanded[key]; ok {
		return v
	}
	return true
}

// RowDisabled reports whether a row must render disabled because its code
// is excluded by the paired field.
func (e *Engine) RowDisabled(loc domain.Location) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.excludeCode != "" && loc.Code == e.excludeCode
}

// Position places the overlay for the given trigger and viewport.
func (e *Engine) Position(trigger overlay.Rect, vp overlay.Viewport) overlay.Position {
	return overlay.Compute(trigger, vp)
}

// Stop cancels any pending debounce work. Call on unmount.
func (e *Engine) Stop() {
	e.debounce.Stop()
}

func (e *Engine) notifyUpdate() {
	if e.onUpdate != nil {
		e.onUpdate()
	}
}

// --- accessors --------------------------------------------------------------

// State returns the current field state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsOpen reports whether the overlay is showing.
func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Text returns the field text: the raw typed text, or the read-only
// "{city} ({code})" label once a selection is committed.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Selection returns the committed location, zero when none.
func (e *Engine) Selection() domain.Location {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// Groups returns the current result set.
func (e *Engine) Groups() []domain.LocationGroup {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.groups
}

// ErrorMessage returns the inline overlay error, empty when none.
func (e *Engine) ErrorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMessage
}

// NoResults reports whether the last query returned an empty result set
// for non-empty text. Distinct from ErrorMessage.
func (e *Engine) NoResults() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.noResults
}

// Label returns the field label.
func (e *Engine) Label() string { return e.label }

// Placeholder returns the field placeholder.
func (e *Engine) Placeholder() string { return e.placeholder }
