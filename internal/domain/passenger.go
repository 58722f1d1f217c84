package domain

// MaxPassengers is the hard cap on the total party size.
const MaxPassengers = 7

// PassengerCount holds the party composition. Invariants maintained by
// passenger.Apply: Adults >= 1, Infants <= Adults, Total() <= MaxPassengers.
type PassengerCount struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// DefaultPassengers is the initial party: one adult.
func DefaultPassengers() PassengerCount {
	return PassengerCount{Adults: 1}
}

// Total returns the party size.
func (p PassengerCount) Total() int {
	return p.Adults + p.Children + p.Infants
}

// CabinClass is the requested service class. It has no cross-field
// validation against the passenger counts.
type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinPremium  CabinClass = "premium_economy"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// CabinClasses lists the selectable classes in display order.
var CabinClasses = []CabinClass{CabinEconomy, CabinPremium, CabinBusiness, CabinFirst}
