// Package storage persists the form's shared state (recent searches, last
// committed airports, selected currency) behind a flat key-value
// interface. The store is single-writer, last-write-wins; entries are
// independent, so no transactional semantics are needed.
package storage

// Keys in the flat store. All are optional; absence means defaults.
const (
	KeyRecentSearches = "recent_searches"
	KeyCurrency       = "selectedCurrency"
	KeyAirports       = "skytrips_airports"
)

// KV is the persistence interface injected into the form service. It is
// deliberately string-to-string, mirroring browser local storage, so
// implementations stay trivially swappable.
type KV interface {
	// Get returns the stored value, with ok=false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
