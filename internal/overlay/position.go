// Package overlay computes viewport-aware placement for the dropdown and
// calendar overlays. Everything here is pure math over two rectangles; the
// rendering layer feeds in measurements and applies the result.
package overlay

import "github.com/skytrips/search-core/internal/domain"

// Placement thresholds. NarrowViewport is the breakpoint below which the
// overlay switches to its mobile layout.
const (
	NarrowViewport = 768
	MinWidth       = 380
	MaxHeight      = 350
	MinSpaceBelow  = 150
	Margin         = 16
	gap            = 8
)

// Calendar candidate widths. The calendar's intrinsic size depends on the
// trip mode, not on the trigger element.
const (
	CalendarWidthOneWay    = 340
	CalendarWidthRoundTrip = 660
)

// Rect is the bounding rectangle of the trigger element, in viewport
// coordinates.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the y coordinate of the rect's lower edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the x coordinate of the rect's right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Viewport is the visible window size.
type Viewport struct {
	Width  float64
	Height float64
}

// Narrow reports whether the viewport is below the mobile breakpoint.
func (v Viewport) Narrow() bool { return v.Width < NarrowViewport }

// Position is the computed overlay placement.
type Position struct {
	Top       float64
	Left      float64
	Width     float64
	MaxHeight float64
	// Flipped is true when the overlay opens above the trigger because
	// there was not enough room below.
	Flipped bool
}

// Compute places the autocomplete dropdown relative to its trigger.
//
// Width: a viewport-derived fixed width on narrow viewports, otherwise the
// larger of the trigger width and MinWidth. Height: clamp to the space
// below the trigger, flipping above it when the space below drops under
// MinSpaceBelow and there is more room above. Horizontal: align to the
// trigger's left edge unless that overflows the viewport, in which case
// right-align with a margin; centered on narrow viewports.
func Compute(trigger Rect, vp Viewport) Position {
	width := trigger.Width
	if width < MinWidth {
		width = MinWidth
	}
	if vp.Narrow() {
		width = vp.Width - 2*Margin
	}

	p := Position{Width: width}
	p.Top, p.MaxHeight, p.Flipped = vertical(trigger, vp)
	p.Left = horizontal(trigger, vp, width)
	return p
}

// ComputeCalendar places the calendar overlay. It uses fixed candidate
// widths per trip mode (halved on narrow viewports) but shares the
// vertical flip and horizontal clamping rules with Compute.
func ComputeCalendar(trigger Rect, vp Viewport, trip domain.TripType) Position {
	width := float64(CalendarWidthOneWay)
	if trip == domain.TripRoundTrip {
		width = CalendarWidthRoundTrip
	}
	if vp.Narrow() {
		width /= 2
	}

	p := Position{Width: width}
	p.Top, p.MaxHeight, p.Flipped = vertical(trigger, vp)
	p.Left = horizontal(trigger, vp, width)
	return p
}

func vertical(trigger Rect, vp Viewport) (top, maxHeight float64, flipped bool) {
	spaceBelow := vp.Height - trigger.Bottom() - gap
	spaceAbove := trigger.Top - gap

	if spaceBelow < MinSpaceBelow && spaceAbove > spaceBelow {
		maxHeight = spaceAbove - Margin
		if maxHeight > MaxHeight {
			maxHeight = MaxHeight
		}
		return trigger.Top - gap - maxHeight, maxHeight, true
	}

	maxHeight = spaceBelow
	if maxHeight > MaxHeight {
		maxHeight = MaxHeight
	}
	return trigger.Bottom() + gap, maxHeight, false
}

func horizontal(trigger Rect, vp Viewport, width float64) float64 {
	if vp.Narrow() {
		return (vp.Width - width) / 2
	}
	left := trigger.Left
	if left+width > vp.Width {
		left = vp.Width - width - Margin
	}
	return left
}
