// Package passenger implements the bounded passenger counter. Apply is a
// pure function; the form keeps the current count and feeds every
// increment or decrement through it.
package passenger

import "github.com/skytrips/search-core/internal/domain"

// Field names the counter being changed.
type Field string

const (
	Adults   Field = "adults"
	Children Field = "children"
	Infants  Field = "infants"
)

// Apply returns the count after changing one field by delta, with every
// invariant restored. Rules run in order:
//
//  1. Clamp the touched field at its floor (adults 1, others 0).
//  2. If the total exceeds domain.MaxPassengers, reduce the touched field
//     by the overflow. The operation is never rejected outright.
//  3. Infants may never exceed adults: a drop in adults drags infants
//     down, a rise in infants is capped at adults.
func Apply(current domain.PassengerCount, field Field, delta int) domain.PassengerCount {
	next := current

	switch field {
	case Adults:
		next.Adults += delta
		if next.Adults < 1 {
			next.Adults = 1
		}
	case Children:
		next.Children += delta
		if next.Children < 0 {
			next.Children = 0
		}
	case Infants:
		next.Infants += delta
		if next.Infants < 0 {
			next.Infants = 0
		}
	default:
		return current
	}

	if over := next.Total() - domain.MaxPassengers; over > 0 {
		switch field {
		case Adults:
			next.Adults -= over
		case Children:
			next.Children -= over
		case Infants:
			next.Infants -= over
		}
	}

	if next.Infants > next.Adults {
		next.Infants = next.Adults
	}

	return next
}
