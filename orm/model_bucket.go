/*
Package orm provides an easy to use db wrapper.

It breaks the state space into prefixed sections called buckets. Each bucket
contains only one type of object, addressed by a primary key, and may own a
sequence for id generation.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	tandem.Persistent
	Validate() error
}

// ModelBucket is a prefixed subspace of the database holding entities of a
// single type.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket returns a bucket using the given name as the keyspace
// prefix.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %s", name))
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b ModelBucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One queries the database for a single model instance. Lookup is done by
// the primary key. The result is loaded into the given destination model.
//
// This method returns ErrNotFound if the entity does not exist in the
// database. Absence carries no information about whether the entity was
// never created or was removed.
func (b ModelBucket) One(db tandem.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "bucket get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

// Has returns true if an entity with the given primary key exists.
func (b ModelBucket) Has(db tandem.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put saves the given model in the database under the given key. The model
// is validated before being written.
func (b ModelBucket) Put(db tandem.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with the given primary key from the database.
// It returns ErrNotFound if an entity with the given key does not exist.
func (b ModelBucket) Delete(db tandem.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	has, err := db.Has(dbkey)
	if err != nil {
		return errors.Wrap(err, "bucket has")
	}
	if !has {
		return errors.Wrapf(errors.ErrNotFound, "no %s entity for the key", b.name)
	}
	return db.Delete(dbkey)
}

// Register registers this bucket under the given query path.
func (b ModelBucket) Register(name string, qr tandem.QueryRouter) {
	if name == "" {
		name = b.name
	}
	qr.Register("/"+name, b)
}

// Query handles queries from the QueryRouter. Only exact key queries are
// supported; the registry is key addressed and range scans are not part of
// its surface.
func (b ModelBucket) Query(db tandem.ReadOnlyKVStore, mod string, data []byte) ([]tandem.Model, error) {
	switch mod {
	case tandem.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// Return nothing on miss.
		if value == nil {
			return nil, nil
		}
		return []tandem.Model{{Key: key, Value: value}}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod: %q", mod)
	}
}
