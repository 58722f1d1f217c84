package lookup

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/skytrips/search-core/internal/domain"
)

// popularJSON is the bundled popular-locations seed, shown when the query
// is empty so the field has useful content before the user types.
//
//go:embed popular.json
var popularJSON []byte

var popularOnce = sync.OnceValue(func() []domain.LocationGroup {
	var groups []domain.LocationGroup
	// The seed is compiled in; a decode failure is a build defect.
	if err := json.Unmarshal(popularJSON, &groups); err != nil {
		panic("lookup: corrupt embedded popular.json: " + err.Error())
	}
	return groups
})

// Popular returns the bundled popular-locations seed. The returned slice
// is shared; callers must not mutate it.
func Popular() []domain.LocationGroup {
	return popularOnce()
}
