package boltstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "steps.bolt")

	store, err := Open(path)
	require.NoError(t, err)

	_, ok, err := store.Get("steps.state")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("steps.state", `{"streak":2}`))
	require.NoError(t, store.Set("steps.language", "fr"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	v, ok, err := reopened.Get("steps.state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"streak":2}`, v)
}

func TestStore_NilIsNotOpen(t *testing.T) {
	var s *Store
	_, _, err := s.Get("x")
	require.Error(t, err)
	require.Error(t, s.Set("x", "y"))
	assert.NoError(t, s.Close())
}
