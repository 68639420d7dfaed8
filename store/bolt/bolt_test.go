package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tandem.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltSetGetDelete(t *testing.T) {
	s := newTestStore(t)

	val, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set([]byte("k"), []byte("v")))
	val, err = s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	has, err := s.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, s.Delete([]byte("k")))
	has, err = s.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBoltCacheWrapFlush(t *testing.T) {
	s := newTestStore(t)

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))

	val, err := s.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, val, "no writes before flush")

	require.NoError(t, cache.Write())

	val, err = s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
	val, err = s.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestBoltCacheWrapDiscard(t *testing.T) {
	s := newTestStore(t)

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	cache.Discard()

	val, err := s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestBoltVersioning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tandem.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.LoadLatestVersion())
	assert.Equal(t, int64(0), s.LatestVersion().Version)

	id, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	require.NoError(t, s.Set([]byte("k"), []byte("v")))
	require.NoError(t, s.Close())

	// Reopen and confirm both data and version survived.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.LoadLatestVersion())
	assert.Equal(t, int64(1), s.LatestVersion().Version)
	val, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}
