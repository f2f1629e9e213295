package store_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mparente/todoreg/pkg/todoreg/store"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	// First store instance
	store1, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	require.NoError(t, store1.Put(1, "persistent"))
	require.NoError(t, store1.Close())

	// Second store instance (reopening the database)
	store2, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	// Data should persist
	text, err := store2.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "persistent", text)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	// Try to create in non-existent directory
	_, err := store.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	// Close multiple times should be safe
	assert.NoError(t, st.Close())
	assert.NoError(t, st.Close())
}

func TestSQLiteStore_PutReplaces(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Put(1, "v1"))
	require.NoError(t, st.Put(1, "v2"))

	text, err := st.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "v2", text)

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Get(99)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, st.Delete(99), store.ErrNotFound)

	ok, err := st.Has(99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_ListOrdering(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer st.Close()

	for _, id := range []uint16{300, 100, 200} {
		require.NoError(t, st.Put(id, "x"))
	}

	items, err := st.List(0, -1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, uint16(100), items[0].ID)
	assert.Equal(t, uint16(200), items[1].ID)
	assert.Equal(t, uint16(300), items[2].ID)

	window, err := st.List(1, 1)
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, uint16(200), window[0].ID)
}

func TestSQLiteStore_FullIDRange(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer st.Close()

	// Boundary ids survive the round trip
	require.NoError(t, st.Put(0, "zero"))
	require.NoError(t, st.Put(65535, "max"))

	text, err := st.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "zero", text)

	text, err = st.Get(65535)
	require.NoError(t, err)
	assert.Equal(t, "max", text)
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer st.Close()

	const numGoroutines = 20
	const numOps = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(n int) {
			defer wg.Done()

			for j := 0; j < numOps; j++ {
				id := uint16(n*numOps + j)
				switch j % 4 {
				case 0, 1:
					_ = st.Put(id, "data")
				case 2:
					_, _ = st.Get(id)
				case 3:
					_, _ = st.List(0, 10)
				}
			}
		}(i)
	}

	wg.Wait()
}
