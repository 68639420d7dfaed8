package tandem

// ReadOnlyKVStore is a simple interface to read data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Errors on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Errors on nil key.
	Has(key []byte) (bool, error)
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this interface.
// They *may* implement other methods as well, but at least these are
// required.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Errors on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Errors on nil key.
	Delete(key []byte) error
}

// Op represents a single pending write operation of a cache wrap.
type Op struct {
	// Delete marks a removal of the key, otherwise this is a set.
	Delete bool
	Key    []byte
	Value  []byte
}

// BatchWriter is implemented by stores that can apply a group of operations
// atomically. Cache wraps prefer this interface over applying operations one
// by one when writing back to their parent.
type BatchWriter interface {
	WriteBatch(ops []Op) error
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on cache-wraps
// makes no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data that
// shadows the backing store. Like Postgresql SAVEPOINT / ROLLBACK TO
// SAVEPOINT.
//
// At the end, call Write to flush the cached data, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitID is the identity of a persisted application state.
type CommitID struct {
	Version int64
}

// CommitKVStore is a store that can persist state, load on start up, and
// report the last committed version.
type CommitKVStore interface {
	CacheableKVStore

	// Commit persists the current state as the next version.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. If there was a
	// crash during the last commit, it is guaranteed to return a stable
	// state, even if older.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved.
	LatestVersion() CommitID

	// Close releases the underlying resources.
	Close() error
}
