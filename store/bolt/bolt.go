/*
Package bolt provides a bbolt backed CommitKVStore. It is the persistent
backend of the daemon: all state lives in a single file, writes of one
transaction are flushed as one atomic bolt update.
*/
package bolt

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/store"
)

var (
	// dataBucketKey is the bolt bucket holding all application state.
	dataBucketKey = []byte("data")

	// metaBucketKey is the bolt bucket holding store metadata.
	//
	// maps: versionKey -> big endian commit version
	metaBucketKey = []byte("meta")

	versionKey = []byte("version")
)

// BoltStore persists the application state in a bolt database file.
type BoltStore struct {
	db      *bolt.DB
	version int64
}

var (
	_ tandem.CommitKVStore = (*BoltStore)(nil)
	_ tandem.BatchWriter   = (*BoltStore)(nil)
)

// Open creates or opens a bolt database at the given path and makes sure the
// required buckets exist.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(dataBucketKey); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucketKey)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create buckets: %s", err)
	}
	return &BoltStore{db: db}, nil
}

// Get returns the value stored under the key, nil when not present.
func (s *BoltStore) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrInput, "nil key")
	}
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(dataBucketKey).Get(key); raw != nil {
			value = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	return value, nil
}

// Has checks if the key is present.
func (s *BoltStore) Has(key []byte) (bool, error) {
	value, err := s.Get(key)
	return value != nil, err
}

// Set writes a single key. Prefer WriteBatch for grouped writes.
func (s *BoltStore) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucketKey).Put(key, value)
	})
	return dbError(err, "set")
}

// Delete removes a single key. Prefer WriteBatch for grouped writes.
func (s *BoltStore) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucketKey).Delete(key)
	})
	return dbError(err, "delete")
}

// WriteBatch applies all operations within a single bolt update, so a cache
// wrap flush is atomic on disk.
func (s *BoltStore) WriteBatch(ops []tandem.Op) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(dataBucketKey)
		for _, op := range ops {
			var err error
			if op.Delete {
				err = bucket.Delete(op.Key)
			} else {
				err = bucket.Put(op.Key, op.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	return dbError(err, "write batch")
}

// CacheWrap returns a cache layer that flushes to this store as one batch.
func (s *BoltStore) CacheWrap() tandem.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s, nil)
}

// Commit persists the next version number and reports it.
func (s *BoltStore) Commit() (tandem.CommitID, error) {
	next := s.version + 1
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(next))
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucketKey).Put(versionKey, raw)
	})
	if err != nil {
		return tandem.CommitID{}, errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	s.version = next
	return tandem.CommitID{Version: next}, nil
}

// LoadLatestVersion loads the last committed version number.
func (s *BoltStore) LoadLatestVersion() error {
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(metaBucketKey).Get(versionKey); raw != nil {
			s.version = int64(binary.BigEndian.Uint64(raw))
		}
		return nil
	})
	return dbError(err, "load version")
}

// LatestVersion returns the last committed version.
func (s *BoltStore) LatestVersion() tandem.CommitID {
	return tandem.CommitID{Version: s.version}
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return dbError(s.db.Close(), "close")
}

// dbError classifies an infrastructure failure, passing nil through.
func dbError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(errors.ErrDatabase, "%s: %s", msg, err)
}
