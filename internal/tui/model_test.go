package tui_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrips/search-core/internal/domain"
	"github.com/skytrips/search-core/internal/storage"
	"github.com/skytrips/search-core/internal/tui"
)

type stubLookup struct{}

func (stubLookup) Search(ctx context.Context, query string) ([]domain.LocationGroup, error) {
	return nil, nil
}
func (stubLookup) MarkPopular(ctx context.Context, code string) error { return nil }

func newModel(t *testing.T) *tui.Model {
	t.Helper()
	m := tui.New(tui.Options{
		Lookup:           stubLookup{},
		Store:            storage.NewService(storage.NewMemoryStore(), nil),
		DebounceInterval: time.Millisecond,
		MinLoadingTime:   -1,
	})
	t.Cleanup(func() { m.Form().Stop() })
	return m
}

func press(m *tui.Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestView_RendersAllSections(t *testing.T) {
	m := newModel(t)

	view := m.View()

	assert.Contains(t, view, "From:")
	assert.Contains(t, view, "To:")
	assert.Contains(t, view, "Dates: no dates (one way)")
	assert.Contains(t, view, "Passengers: 1 adult, 0 child, 0 infant")
	assert.Contains(t, view, "Cabin: economy (USD)")
	assert.Contains(t, view, "[ Search ]")
}

func TestTab_CyclesFocusThroughSections(t *testing.T) {
	m := newModel(t)

	require.True(t, strings.HasPrefix(linesWithMarker(m)[0], "> From:"))

	press(m, "tab")
	assert.True(t, strings.HasPrefix(linesWithMarker(m)[0], "> To:"))

	press(m, "tab", "tab", "tab", "tab", "tab")
	assert.True(t, strings.HasPrefix(linesWithMarker(m)[0], "> From:"))
}

func linesWithMarker(m *tui.Model) []string {
	var out []string
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.HasPrefix(line, "> ") {
			out = append(out, line)
		}
	}
	return out
}

// Tabbing back into an empty field focuses the engine, which surfaces the
// popular list; enter commits its first row.
func TestEnter_CommitsFirstPopularRow(t *testing.T) {
	m := newModel(t)

	press(m, "tab", "tab", "tab", "tab", "tab", "tab") // full cycle back to From
	require.Contains(t, m.View(), "Sydney, Australia")

	press(m, "enter")

	assert.Equal(t, "SYD", m.Form().OriginLocation().Code)
	assert.Contains(t, m.View(), "Sydney (SYD)")
}

func TestPassengerKeys_AdjustCounts(t *testing.T) {
	m := newModel(t)

	press(m, "tab", "tab", "tab") // passengers
	press(m, "a", "s", "s")

	p := m.Form().Passengers()
	assert.Equal(t, 2, p.Adults)
	assert.Equal(t, 2, p.Children)
	assert.Contains(t, m.View(), "Passengers: 2 adult, 2 child, 0 infant")
}

func TestCabinKey_CyclesClasses(t *testing.T) {
	m := newModel(t)

	press(m, "tab", "tab", "tab", "tab") // cabin
	press(m, "enter")

	assert.Equal(t, domain.CabinPremium, m.Form().Cabin())
}

func TestDatesSection_PickAndFlipTripType(t *testing.T) {
	m := newModel(t)

	press(m, "tab", "tab") // dates
	require.True(t, m.Form().Dates().IsOpen())

	press(m, "right", "enter") // pick tomorrow

	rng := m.Form().Dates().Range()
	require.NotNil(t, rng.Start)
	assert.Nil(t, rng.End)

	press(m, "t")
	assert.Equal(t, domain.TripRoundTrip, m.Form().Dates().TripType())
	assert.Contains(t, m.View(), "(round trip)")
}

func TestSubmitWithEmptyForm_ShowsValidationNotice(t *testing.T) {
	m := newModel(t)

	press(m, "tab", "tab", "tab", "tab", "tab") // submit
	press(m, "enter")

	// The notice arrives through the update channel; drain it the way the
	// program loop would.
	msg := m.Init()()
	m.Update(msg)

	assert.Contains(t, m.View(), "select a departure airport")
}
