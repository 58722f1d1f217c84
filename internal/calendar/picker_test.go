package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrips/search-core/internal/calendar"
	"github.com/skytrips/search-core/internal/domain"
)

var today = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return today.AddDate(0, 0, d-1)
}

func newPicker(t *testing.T, opts calendar.Options) (*calendar.Picker, *[]domain.DateRange) {
	t.Helper()
	var changes []domain.DateRange
	userOnChange := opts.OnChange
	opts.OnChange = func(r domain.DateRange) {
		changes = append(changes, r)
		if userOnChange != nil {
			userOnChange(r)
		}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return today }
	}
	return calendar.New(opts), &changes
}

func TestOneWay_StartPickCommits(t *testing.T) {
	p, changes := newPicker(t, calendar.Options{TripType: domain.TripOneWay})

	p.Open()
	p.PickDate(day(10))

	require.Len(t, *changes, 1)
	rng := (*changes)[0]
	require.NotNil(t, rng.Start)
	assert.True(t, domain.SameDay(*rng.Start, day(10)))
	assert.Nil(t, rng.End)
	assert.True(t, p.CanApply())
}

func TestRoundTrip_StartThenEndCommits(t *testing.T) {
	p, changes := newPicker(t, calendar.Options{TripType: domain.TripRoundTrip})

	p.Open()
	p.PickDate(day(10))
	assert.True(t, p.ActivelySelecting())
	assert.False(t, p.CanApply())

	p.PickDate(day(14))
	assert.False(t, p.ActivelySelecting())
	assert.True(t, p.CanApply())

	rng := p.Range()
	require.NotNil(t, rng.End)
	assert.True(t, domain.SameDay(*rng.End, day(14)))
	// Two commits: the restarted start, then the completed range.
	assert.Len(t, *changes, 2)
}

func TestRoundTrip_SameDayReturnAccepted(t *testing.T) {
	p, _ := newPicker(t, calendar.Options{TripType: domain.TripRoundTrip})

	p.Open()
	p.PickDate(day(10))
	p.PickDate(day(10))

	rng := p.Range()
	require.NotNil(t, rng.End)
	assert.True(t, domain.SameDay(*rng.Start, *rng.End))
	assert.True(t, p.CanApply())
}

func TestRoundTrip_NewStartRestartsEndSelection(t *testing.T) {
	p, _ := newPicker(t, calendar.Options{TripType: domain.TripRoundTrip})

	p.Open()
	p.PickDate(day(10))
	p.PickDate(day(14))
	require.True(t, p.CanApply())

	// Reopening and picking again starts over: end clears.
	p.Open()
	p.PickDate(day(12))

	rng := p.Range()
	assert.True(t, domain.SameDay(*rng.Start, day(12)))
	assert.Nil(t, rng.End)
	assert.True(t, p.ActivelySelecting())
}

func TestRoundTrip_EarlierDayDisabledOnlyWhileActivelySelecting(t *testing.T) {
	p, _ := newPicker(t, calendar.Options{TripType: domain.TripRoundTrip})

	p.Open()
	p.PickDate(day(10))
	require.True(t, p.ActivelySelecting())

	// Mid-selection: days before the chosen start are off limits.
	assert.True(t, p.Day(day(5)).Disabled)
	p.PickDate(day(5)) // ignored
	assert.Nil(t, p.Range().End)
	assert.True(t, domain.SameDay(*p.Range().Start, day(10)))

	p.PickDate(day(14))

	// Reopened committed view: no artificial lower bound.
	p.Open()
	assert.False(t, p.ActivelySelecting())
	assert.False(t, p.Day(day(5)).Disabled)
}

// TestTripTypeFlip_AutoOpensCalendar covers the flip affordance: one-way
// with a committed start, calendar closed, flips to round-trip and the
// calendar opens by itself (not actively selecting).
func TestTripTypeFlip_AutoOpensCalendar(t *testing.T) {
	var flips []domain.TripType
	p, _ := newPicker(t, calendar.Options{
		TripType:         domain.TripOneWay,
		OnTripTypeChange: func(tt domain.TripType) { flips = append(flips, tt) },
	})

	p.Open()
	p.PickDate(day(10))
	p.Apply()
	require.False(t, p.IsOpen())

	p.SetTripType(domain.TripRoundTrip)

	assert.True(t, p.IsOpen())
	assert.False(t, p.ActivelySelecting())
	assert.Equal(t, []domain.TripType{domain.TripRoundTrip}, flips)
}

func TestTripTypeFlip_BackToOneWayDropsEndDate(t *testing.T) {
	p, changes := newPicker(t, calendar.Options{TripType: domain.TripRoundTrip})

	p.Open()
	p.PickDate(day(10))
	p.PickDate(day(14))
	p.Apply()
	require.False(t, p.IsOpen())
	before := len(*changes)

	p.SetTripType(domain.TripOneWay)

	rng := p.Range()
	assert.Nil(t, rng.End)
	require.NotNil(t, rng.Start)
	// The dropped end date is reported, and the overlay stays closed.
	assert.Len(t, *changes, before+1)
	assert.False(t, p.IsOpen())
}

func TestTripTypeFlip_WithoutStartDoesNotOpen(t *testing.T) {
	p, _ := newPicker(t, calendar.Options{TripType: domain.TripOneWay})

	p.SetTripType(domain.TripRoundTrip)

	assert.False(t, p.IsOpen())
}

func TestClear_ResetsAndReports(t *testing.T) {
	p, changes := newPicker(t, calendar.Options{TripType: domain.TripRoundTrip})

	p.Open()
	p.PickDate(day(10))
	p.PickDate(day(14))

	p.Clear()

	rng := p.Range()
	assert.Nil(t, rng.Start)
	assert.Nil(t, rng.End)
	last := (*changes)[len(*changes)-1]
	assert.Nil(t, last.Start)
	assert.Nil(t, last.End)
	assert.False(t, p.CanApply())
}

func TestApply_NoOpUntilComplete(t *testing.T) {
	p, _ := newPicker(t, calendar.Options{TripType: domain.TripRoundTrip})

	p.Open()
	p.PickDate(day(10))
	p.Apply()
	assert.True(t, p.IsOpen(), "apply is disabled until the range is complete")

	p.PickDate(day(14))
	p.Apply()
	assert.False(t, p.IsOpen())
}

func TestPickDate_PastDaysIgnored(t *testing.T) {
	p, changes := newPicker(t, calendar.Options{TripType: domain.TripOneWay})

	p.Open()
	p.PickDate(today.AddDate(0, 0, -1))

	assert.Empty(t, *changes)
	assert.Nil(t, p.Range().Start)
}

// --- DayState ---------------------------------------------------------------

func TestDayState_Table(t *testing.T) {
	start := day(10)
	end := day(14)

	tests := []struct {
		name   string
		day    time.Time
		start  *time.Time
		end    *time.Time
		active bool
		want   calendar.DayInfo
	}{
		{"past day disabled", day(-3), nil, nil, false, calendar.DayInfo{Disabled: true}},
		{"today neutral", today, nil, nil, false, calendar.DayInfo{}},
		{"before start while active", day(8), &start, nil, true, calendar.DayInfo{Disabled: true}},
		{"before start while viewing committed", day(8), &start, &end, false, calendar.DayInfo{}},
		{"start marker", day(10), &start, &end, false, calendar.DayInfo{IsStart: true}},
		{"end marker", day(14), &start, &end, false, calendar.DayInfo{IsEnd: true}},
		{"in range strictly between", day(12), &start, &end, false, calendar.DayInfo{InRange: true}},
		{"after end neutral", day(20), &start, &end, false, calendar.DayInfo{}},
		{"same day start and end", day(10), &start, &start, false, calendar.DayInfo{IsStart: true, IsEnd: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.DayState(tt.day, today, tt.start, tt.end, tt.active)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayState_IsPureAndDeterministic(t *testing.T) {
	start := day(10)
	a := calendar.DayState(day(12), today, &start, nil, true)
	b := calendar.DayState(day(12), today, &start, nil, true)
	assert.Equal(t, a, b)
}
