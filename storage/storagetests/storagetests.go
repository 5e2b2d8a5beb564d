// Package storagetests provides common acceptance tests for storage.Store
// implementations.
package storagetests

import (
	"testing"

	"github.com/plumekv/plume/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Run(t *testing.T, newStore func() storage.Store) {

	t.Run("TestSaveGetRoundTrip", func(t *testing.T) {
		s := newStore()

		require.NoError(t, s.Save([]byte("fruit"), []byte("apple")))

		v, err := s.Get([]byte("fruit"))
		require.NoError(t, err)
		assert.Equal(t, []byte("apple"), v)
	})

	t.Run("TestGetMissing", func(t *testing.T) {
		s := newStore()

		_, err := s.Get([]byte("nope"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("TestSaveOverwrites", func(t *testing.T) {
		s := newStore()

		require.NoError(t, s.Save([]byte("fruit"), []byte("apple")))
		require.NoError(t, s.Save([]byte("fruit"), []byte("banana")))

		v, err := s.Get([]byte("fruit"))
		require.NoError(t, err)
		assert.Equal(t, []byte("banana"), v)
	})

	t.Run("TestDelete", func(t *testing.T) {
		s := newStore()

		require.NoError(t, s.Save([]byte("fruit"), []byte("apple")))
		require.NoError(t, s.Delete([]byte("fruit")))

		_, err := s.Get([]byte("fruit"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("TestDeleteMissing", func(t *testing.T) {
		s := newStore()

		err := s.Delete([]byte("nope"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("TestEmptyKey", func(t *testing.T) {
		s := newStore()

		_, err := s.Get(nil)
		assert.ErrorIs(t, err, storage.ErrEmptyKey)
		assert.ErrorIs(t, s.Save(nil, []byte("v")), storage.ErrEmptyKey)
		assert.ErrorIs(t, s.Delete(nil), storage.ErrEmptyKey)
	})

	t.Run("TestBinaryKeysAndValues", func(t *testing.T) {
		s := newStore()

		key := []byte{0x00, 0xff, 0x10, 0x00}
		value := []byte{0xde, 0xad, 0xbe, 0xef, 0x00}
		require.NoError(t, s.Save(key, value))

		v, err := s.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, v)
	})

	t.Run("TestEmptyValue", func(t *testing.T) {
		s := newStore()

		require.NoError(t, s.Save([]byte("empty"), nil))

		v, err := s.Get([]byte("empty"))
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("TestReturnedValueIsDetached", func(t *testing.T) {
		s := newStore()

		require.NoError(t, s.Save([]byte("fruit"), []byte("apple")))

		v, err := s.Get([]byte("fruit"))
		require.NoError(t, err)
		v[0] = 'X'

		again, err := s.Get([]byte("fruit"))
		require.NoError(t, err)
		assert.Equal(t, []byte("apple"), again, "mutating a returned value must not corrupt the store")
	})
}
