// Package tui is the terminal front end for the flight search form. It is
// a thin rendering shell: every rule lives in the form coordinator and its
// child components, and the model only translates key presses into
// component events and component state into text.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skytrips/search-core/internal/autocomplete"
	"github.com/skytrips/search-core/internal/calendar"
	"github.com/skytrips/search-core/internal/domain"
	"github.com/skytrips/search-core/internal/form"
	"github.com/skytrips/search-core/internal/lookup"
	"github.com/skytrips/search-core/internal/passenger"
	"github.com/skytrips/search-core/internal/storage"
)

// section identifies the focused form section.
type section int

const (
	sectionFrom section = iota
	sectionTo
	sectionDates
	sectionPassengers
	sectionCabin
	sectionSubmit
	sectionCount
)

// Options configures the terminal model.
type Options struct {
	// Lookup serves the two location fields. Required.
	Lookup lookup.Client

	// Store persists recent searches and prefill state. Required.
	Store *storage.Service

	DefaultCurrency string
	Logger          *slog.Logger

	// Timing overrides for the field engines; zero values keep defaults.
	DebounceInterval time.Duration
	MinLoadingTime   time.Duration
}

// Model drives the search form from the terminal.
type Model struct {
	form *form.Coordinator

	fromInput textinput.Model
	toInput   textinput.Model
	focus     section

	// cursor is the highlighted day while the calendar is open.
	cursor time.Time

	status   string
	launched *domain.SearchRequest

	// updates carries async component callbacks into the bubbletea loop.
	updates chan tea.Msg
}

// New builds the model and wires the coordinator's callbacks into the
// message loop.
func New(opts Options) *Model {
	m := &Model{
		updates: make(chan tea.Msg, 16),
		cursor:  today(),
	}

	m.form = form.New(form.Options{
		Lookup:           opts.Lookup,
		Store:            opts.Store,
		DefaultCurrency:  opts.DefaultCurrency,
		Logger:           opts.Logger,
		DebounceInterval: opts.DebounceInterval,
		MinLoadingTime:   opts.MinLoadingTime,
		Execute: func(req domain.SearchRequest) {
			m.updates <- searchLaunchedMsg{req: req}
		},
		Notify: func(msg string) {
			m.updates <- statusMsg(msg)
		},
		OnUpdate: func() {
			m.updates <- refreshMsg{}
		},
	})

	m.fromInput = newInput(m.form.Origin().Placeholder())
	m.toInput = newInput(m.form.Destination().Placeholder())
	m.fromInput.SetValue(m.form.Origin().Text())
	m.toInput.SetValue(m.form.Destination().Text())
	m.fromInput.Focus()

	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 60
	ti.Width = 40
	return ti
}

// Form exposes the coordinator, mainly for tests.
func (m *Model) Form() *form.Coordinator { return m.form }

// Init starts listening for async component updates.
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate
}

// waitForUpdate blocks until a component callback produces a message.
func (m *Model) waitForUpdate() tea.Msg {
	return <-m.updates
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, m.waitForUpdate

	case statusMsg:
		m.status = string(msg)
		return m, m.waitForUpdate

	case searchLaunchedMsg:
		req := msg.req
		m.launched = &req
		m.status = fmt.Sprintf("searching %s to %s", req.Origin.Code, req.Destination.Code)
		return m, m.waitForUpdate

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.form.Stop()
		return m, tea.Quit

	case "tab":
		m.setFocus((m.focus + 1) % sectionCount)
		return m, nil

	case "shift+tab":
		m.setFocus((m.focus + sectionCount - 1) % sectionCount)
		return m, nil
	}

	switch m.focus {
	case sectionFrom:
		return m.handleFieldKey(msg, m.form.Origin(), &m.fromInput)
	case sectionTo:
		return m.handleFieldKey(msg, m.form.Destination(), &m.toInput)
	case sectionDates:
		return m.handleDatesKey(msg)
	case sectionPassengers:
		return m.handlePassengersKey(msg)
	case sectionCabin:
		return m.handleCabinKey(msg)
	case sectionSubmit:
		return m.handleSubmitKey(msg)
	}
	return m, nil
}

// setFocus moves focus, mirroring the pointer interactions the engines
// expect: entering a field is a focus, leaving it is an outside click.
func (m *Model) setFocus(next section) {
	switch m.focus {
	case sectionFrom:
		m.form.Origin().OutsideClick()
		m.fromInput.Blur()
	case sectionTo:
		m.form.Destination().OutsideClick()
		m.toInput.Blur()
	case sectionDates:
		m.form.Dates().Close()
	}

	m.focus = next
	m.status = ""

	switch next {
	case sectionFrom:
		m.form.Origin().Focus()
		m.fromInput.SetValue(m.form.Origin().Text())
		m.fromInput.CursorEnd()
		m.fromInput.Focus()
	case sectionTo:
		m.form.Destination().Focus()
		m.toInput.SetValue(m.form.Destination().Text())
		m.toInput.CursorEnd()
		m.toInput.Focus()
	case sectionDates:
		m.form.Dates().Open()
		if start := m.form.Dates().Range().Start; start != nil {
			m.cursor = *start
		} else {
			m.cursor = today()
		}
	}
}

func (m *Model) handleFieldKey(msg tea.KeyMsg, engine *autocomplete.Engine, input *textinput.Model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Commit the first enabled row, the keyboard analog of clicking it.
		for _, g := range engine.Groups() {
			for _, loc := range g.Locations {
				if !engine.RowDisabled(loc) {
					engine.BeginSelection()
					engine.SelectRow(loc)
					input.SetValue(engine.Text())
					input.CursorEnd()
					return m, nil
				}
			}
		}
		return m, nil

	case "esc":
		engine.Escape()
		return m, nil
	}

	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() != before {
		engine.SetText(input.Value())
	}
	return m, cmd
}

func (m *Model) handleDatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker := m.form.Dates()
	switch msg.String() {
	case "left":
		m.cursor = m.cursor.AddDate(0, 0, -1)
	case "right":
		m.cursor = m.cursor.AddDate(0, 0, 1)
	case "up":
		m.cursor = m.cursor.AddDate(0, 0, -7)
	case "down":
		m.cursor = m.cursor.AddDate(0, 0, 7)
	case "enter":
		picker.PickDate(m.cursor)
	case "a":
		picker.Apply()
	case "c":
		picker.Clear()
	case "t":
		if picker.TripType() == domain.TripOneWay {
			m.form.SetTripType(domain.TripRoundTrip)
		} else {
			m.form.SetTripType(domain.TripOneWay)
		}
	case "esc":
		picker.Close()
	}
	return m, nil
}

func (m *Model) handlePassengersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.form.AdjustPassengers(passenger.Adults, +1)
	case "z":
		m.form.AdjustPassengers(passenger.Adults, -1)
	case "s":
		m.form.AdjustPassengers(passenger.Children, +1)
	case "x":
		m.form.AdjustPassengers(passenger.Children, -1)
	case "d":
		m.form.AdjustPassengers(passenger.Infants, +1)
	case "c":
		m.form.AdjustPassengers(passenger.Infants, -1)
	}
	return m, nil
}

func (m *Model) handleCabinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" && msg.String() != " " {
		return m, nil
	}
	cabins := domain.CabinClasses
	current := m.form.Cabin()
	for i, c := range cabins {
		if c == current {
			m.form.SetCabin(cabins[(i+1)%len(cabins)])
			break
		}
	}
	return m, nil
}

func (m *Model) handleSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Validation failures surface through the Notify callback.
		_, _ = m.form.Submit()
	case "w":
		if err := m.form.Swap(); err == nil {
			m.fromInput.SetValue(m.form.Origin().Text())
			m.toInput.SetValue(m.form.Destination().Text())
		}
	case "r":
		if recents := m.form.RecentSearches(); len(recents) > 0 {
			if _, err := m.form.UseRecent(recents[0]); err == nil {
				m.fromInput.SetValue(m.form.Origin().Text())
				m.toInput.SetValue(m.form.Destination().Text())
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString("Flight Search\n\n")

	m.renderField(&b, sectionFrom, m.form.Origin().Label(), m.fromInput.View(), m.form.Origin())
	m.renderField(&b, sectionTo, m.form.Destination().Label(), m.toInput.View(), m.form.Destination())
	m.renderDates(&b)
	m.renderPassengers(&b)
	m.renderCabin(&b)
	m.renderSubmit(&b)

	if m.launched != nil {
		fmt.Fprintf(&b, "\nlast search: %s → %s\n", m.launched.Origin.Code, m.launched.Destination.Code)
	}
	if m.status != "" {
		fmt.Fprintf(&b, "\n! %s\n", m.status)
	}
	b.WriteString("\ntab: next field · ctrl+c: quit\n")
	return b.String()
}

func (m *Model) renderField(b *strings.Builder, s section, label, inputView string, engine *autocomplete.Engine) {
	fmt.Fprintf(b, "%s %s: %s\n", m.marker(s), label, inputView)

	if !engine.IsOpen() {
		return
	}
	switch {
	case engine.State() == autocomplete.StateLoading:
		b.WriteString("    loading...\n")
	case engine.ErrorMessage() != "":
		fmt.Fprintf(b, "    %s\n", engine.ErrorMessage())
	case engine.NoResults():
		fmt.Fprintf(b, "    %s\n", autocomplete.NoResultsMessage)
	default:
		for _, g := range engine.Groups() {
			fmt.Fprintf(b, "    %s, %s\n", g.Municipality, g.Country)
			if !engine.IsExpanded(g.Key()) {
				continue
			}
			for _, loc := range g.Locations {
				if engine.RowDisabled(loc) {
					fmt.Fprintf(b, "      %s — %s (disabled)\n", loc.Code, loc.DisplayName)
				} else {
					fmt.Fprintf(b, "      %s — %s\n", loc.Code, loc.DisplayName)
				}
			}
		}
	}
}

func (m *Model) renderDates(b *strings.Builder) {
	picker := m.form.Dates()
	rng := picker.Range()

	summary := "no dates"
	if rng.Start != nil {
		summary = rng.Start.Format("Mon 02 Jan")
		if rng.End != nil {
			summary += " → " + rng.End.Format("Mon 02 Jan")
		}
	}
	trip := "one way"
	if picker.TripType() == domain.TripRoundTrip {
		trip = "round trip"
	}
	fmt.Fprintf(b, "%s Dates: %s (%s)\n", m.marker(sectionDates), summary, trip)

	if picker.IsOpen() && m.focus == sectionDates {
		fmt.Fprintf(b, "    cursor: %s%s\n", m.cursor.Format("Mon 02 Jan 2006"), dayNote(picker.Day(m.cursor)))
		b.WriteString("    arrows: move · enter: pick · a: apply · c: clear · t: trip type\n")
	}
}

func dayNote(info calendar.DayInfo) string {
	switch {
	case info.Disabled:
		return " (unavailable)"
	case info.IsStart && info.IsEnd:
		return " (start/end)"
	case info.IsStart:
		return " (start)"
	case info.IsEnd:
		return " (end)"
	case info.InRange:
		return " (in range)"
	}
	return ""
}

func (m *Model) renderPassengers(b *strings.Builder) {
	p := m.form.Passengers()
	fmt.Fprintf(b, "%s Passengers: %d adult, %d child, %d infant\n",
		m.marker(sectionPassengers), p.Adults, p.Children, p.Infants)
	if m.focus == sectionPassengers {
		b.WriteString("    a/z: adults · s/x: children · d/c: infants\n")
	}
}

func (m *Model) renderCabin(b *strings.Builder) {
	fmt.Fprintf(b, "%s Cabin: %s (%s)\n", m.marker(sectionCabin), m.form.Cabin(), m.form.Currency())
}

func (m *Model) renderSubmit(b *strings.Builder) {
	fmt.Fprintf(b, "%s [ Search ]\n", m.marker(sectionSubmit))
	if m.focus == sectionSubmit {
		b.WriteString("    enter: search · w: swap airports · r: repeat last search\n")
	}
}

func (m *Model) marker(s section) string {
	if m.focus == s {
		return ">"
	}
	return " "
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
