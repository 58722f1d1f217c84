package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrips/search-core/internal/storage"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("selectedCurrency", "AUD"))
	v, ok, err := store.Get("selectedCurrency")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AUD", v)

	// Last write wins.
	require.NoError(t, store.Set("selectedCurrency", "NPR"))
	v, _, err = store.Get("selectedCurrency")
	require.NoError(t, err)
	assert.Equal(t, "NPR", v)

	require.NoError(t, store.Remove("selectedCurrency"))
	_, ok, err = store.Get("selectedCurrency")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/skytrips.db"

	store, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Close())

	reopened, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	v, ok, err := reopened.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", v)
}
