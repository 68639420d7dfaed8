package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// DefaultFreeListSize is the size we hold for free nodes in the btree.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable adds a simple btree-based CacheWrap strategy to any KVStore.
type BTreeCacheable struct {
	tandem.KVStore
}

var _ tandem.CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or rolled back.
func (b BTreeCacheable) CacheWrap() tandem.KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.KVStore, nil)
}

// MemStore returns a simple in-memory implementation useful for tests and
// for the development host. There is no persistence here.
//
// The returned store does not expose Write or Discard. A stand-alone store
// has no parent to roll back to, so discarding it would have to either drop
// all state or silently keep it.
func MemStore() tandem.CacheableKVStore {
	e := EmptyKVStore{}
	return memStore{bt: NewBTreeCacheWrap(e, nil, nil)}
}

// memStore narrows a stand-alone cache wrap to the plain store surface.
type memStore struct {
	bt *BTreeCacheWrap
}

var _ tandem.CacheableKVStore = memStore{}

func (m memStore) Get(key []byte) ([]byte, error) { return m.bt.Get(key) }

func (m memStore) Has(key []byte) (bool, error) { return m.bt.Has(key) }

func (m memStore) Set(key, value []byte) error { return m.bt.Set(key, value) }

func (m memStore) Delete(key []byte) error { return m.bt.Delete(key) }

func (m memStore) CacheWrap() tandem.KVCacheWrap { return m.bt.CacheWrap() }

///////////////////////////////////////////////
// Actual CacheWrap implementation

// BTreeCacheWrap places a btree cache over a KVStore. All writes are
// buffered in the btree until Write sends them to the parent, or Discard
// drops them.
type BTreeCacheWrap struct {
	bt     *btree.BTree
	free   *btree.FreeList
	back   tandem.ReadOnlyKVStore
	parent tandem.KVStore
	ops    []tandem.Op
}

var _ tandem.KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this kv store. Reads
// fall through to back, all writes are buffered and flushed to parent on
// Write. A nil parent makes Write a no-op, which turns the wrap into a
// stand-alone in-memory store.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(back tandem.ReadOnlyKVStore, parent tandem.KVStore, free *btree.FreeList) *BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return &BTreeCacheWrap{
		bt:     btree.NewWithFreeList(2, free),
		free:   free,
		back:   back,
		parent: parent,
	}
}

// CacheWrap layers another cache on top of this one. Writes of the child are
// applied to this wrap on Write.
func (b *BTreeCacheWrap) CacheWrap() tandem.KVCacheWrap {
	return NewBTreeCacheWrap(b, b, b.free)
}

// Get reads from the cache, falling back to the backing store.
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrInput, "nil key")
	}
	if item := b.bt.Get(newLookupItem(key)); item != nil {
		cached := item.(cacheItem)
		if cached.delete {
			return nil, nil
		}
		return cached.value, nil
	}
	return b.back.Get(key)
}

// Has checks existence in the cache, falling back to the backing store.
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	if key == nil {
		return false, errors.Wrap(errors.ErrInput, "nil key")
	}
	if item := b.bt.Get(newLookupItem(key)); item != nil {
		return !item.(cacheItem).delete, nil
	}
	return b.back.Has(key)
}

// Set buffers the write in the cache.
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	b.ops = append(b.ops, tandem.Op{Key: key, Value: value})
	return nil
}

// Delete buffers the removal in the cache.
func (b *BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrInput, "nil key")
	}
	b.bt.ReplaceOrInsert(newDeleteItem(key))
	b.ops = append(b.ops, tandem.Op{Delete: true, Key: key})
	return nil
}

// Write flushes all buffered operations to the parent store. When the parent
// can consume batches the flush is a single atomic batch.
func (b *BTreeCacheWrap) Write() error {
	defer b.clear()

	if b.parent == nil {
		// Stand-alone in-memory store, writes stay in the btree.
		return nil
	}
	if bw, ok := b.parent.(tandem.BatchWriter); ok {
		return bw.WriteBatch(b.ops)
	}
	for _, op := range b.ops {
		var err error
		if op.Delete {
			err = b.parent.Delete(op.Key)
		} else {
			err = b.parent.Set(op.Key, op.Value)
		}
		if err != nil {
			return errors.Wrap(err, "flush cache")
		}
	}
	return nil
}

// WriteBatch applies a group of operations at once. Within a single process
// the btree update is already indivisible, so this is a plain replay.
func (b *BTreeCacheWrap) WriteBatch(ops []tandem.Op) error {
	for _, op := range ops {
		var err error
		if op.Delete {
			err = b.Delete(op.Key)
		} else {
			err = b.Set(op.Key, op.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Discard drops all buffered operations.
func (b *BTreeCacheWrap) Discard() {
	b.clear()
}

func (b *BTreeCacheWrap) clear() {
	if b.parent == nil {
		// Stand-alone store keeps its state on Write, only ops are
		// reset. MemStore hides Write and Discard, so this branch is
		// reachable only through NewBTreeCacheWrap with a nil parent.
		b.ops = nil
		return
	}
	b.bt.Clear(true)
	b.ops = nil
}

/////////////////////////////////////////////////////////
// btree items

// cacheItem is a node in the btree, a buffered set or delete of one key.
type cacheItem struct {
	key    []byte
	value  []byte
	delete bool
}

var _ btree.Item = cacheItem{}

func (i cacheItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(cacheItem).key) < 0
}

func newLookupItem(key []byte) cacheItem {
	return cacheItem{key: key}
}

func newSetItem(key, value []byte) cacheItem {
	return cacheItem{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	}
}

func newDeleteItem(key []byte) cacheItem {
	return cacheItem{
		key:    append([]byte(nil), key...),
		delete: true,
	}
}
