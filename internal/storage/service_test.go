package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrips/search-core/internal/domain"
	"github.com/skytrips/search-core/internal/storage"
)

func recentFixture(origin, dest string, day int) domain.RecentSearch {
	start := time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
	return domain.NewRecentSearch(domain.SearchRequest{
		Origin:      domain.Location{Code: origin, City: origin},
		Destination: domain.Location{Code: dest, City: dest},
		Dates:       domain.DateRange{Start: &start},
		Passengers:  domain.DefaultPassengers(),
		Cabin:       domain.CabinEconomy,
		TripType:    domain.TripOneWay,
	}, time.Now())
}

func TestRecentSearches_EmptyStore(t *testing.T) {
	svc := storage.NewService(storage.NewMemoryStore(), nil)
	assert.Empty(t, svc.RecentSearches())
}

func TestRecentSearches_CorruptPayloadFallsBackToEmpty(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyRecentSearches, "{not json"))

	svc := storage.NewService(kv, nil)
	assert.Empty(t, svc.RecentSearches())
}

func TestSaveRecentSearch_MostRecentFirst(t *testing.T) {
	svc := storage.NewService(storage.NewMemoryStore(), nil)

	require.NoError(t, svc.SaveRecentSearch(recentFixture("SYD", "KTM", 10)))
	require.NoError(t, svc.SaveRecentSearch(recentFixture("SYD", "SIN", 11)))

	list := svc.RecentSearches()
	require.Len(t, list, 2)
	assert.Equal(t, "SIN", list[0].Request.Destination.Code)
	assert.Equal(t, "KTM", list[1].Request.Destination.Code)
}

// TestSaveRecentSearch_DuplicateSubmissionsCollapse covers the recency
// idempotence property: the same tuple submitted twice occupies one slot.
func TestSaveRecentSearch_DuplicateSubmissionsCollapse(t *testing.T) {
	svc := storage.NewService(storage.NewMemoryStore(), nil)

	require.NoError(t, svc.SaveRecentSearch(recentFixture("SYD", "KTM", 10)))
	require.NoError(t, svc.SaveRecentSearch(recentFixture("SYD", "KTM", 10)))

	assert.Len(t, svc.RecentSearches(), 1)
}

func TestSaveRecentSearch_CapsAtSix(t *testing.T) {
	svc := storage.NewService(storage.NewMemoryStore(), nil)

	for day := 1; day <= 9; day++ {
		require.NoError(t, svc.SaveRecentSearch(recentFixture("SYD", "KTM", day)))
	}

	list := svc.RecentSearches()
	require.Len(t, list, storage.MaxRecentSearches)
	// Most recent submission leads the list.
	assert.Equal(t, 9, list[0].Request.Dates.Start.Day())
}

func TestCurrency_DefaultAndRoundTrip(t *testing.T) {
	svc := storage.NewService(storage.NewMemoryStore(), nil)

	assert.Equal(t, "USD", svc.Currency("USD"))

	require.NoError(t, svc.SetCurrency("AUD"))
	assert.Equal(t, "AUD", svc.Currency("USD"))
}

func TestAirports_RoundTripAndCorruptFallback(t *testing.T) {
	kv := storage.NewMemoryStore()
	svc := storage.NewService(kv, nil)

	origin := domain.Location{Code: "SYD", City: "Sydney", Country: "Australia"}
	dest := domain.Location{Code: "KTM", City: "Kathmandu", Country: "Nepal"}
	require.NoError(t, svc.SetAirports(origin, dest))

	gotOrigin, gotDest := svc.Airports()
	assert.Equal(t, origin, gotOrigin)
	assert.Equal(t, dest, gotDest)

	require.NoError(t, kv.Set(storage.KeyAirports, "garbage"))
	gotOrigin, gotDest = svc.Airports()
	assert.True(t, gotOrigin.IsZero())
	assert.True(t, gotDest.IsZero())
}

func TestMemoryStore_Remove(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set("k", "v"))

	_, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, kv.Remove("k"))
	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
