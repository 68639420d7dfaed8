package store

import (
	"github.com/tandemswap/tandem"
)

// EmptyKVStore never holds any data. Reads return nothing, writes are
// silently dropped. It is useful as a backing layer of a stand-alone cache
// wrap and in tests.
type EmptyKVStore struct{}

var _ tandem.KVStore = EmptyKVStore{}

// Get always returns nil.
func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }

// Has always returns false.
func (EmptyKVStore) Has([]byte) (bool, error) { return false, nil }

// Set is a no-op.
func (EmptyKVStore) Set([]byte, []byte) error { return nil }

// Delete is a no-op.
func (EmptyKVStore) Delete([]byte) error { return nil }
