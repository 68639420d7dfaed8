package orm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/store"
)

func TestSequenceMonotonic(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("swap", SeqID)

	var prev []byte
	for i := int64(1); i <= 10; i++ {
		val, err := seq.NextInt(db)
		require.NoError(t, err)
		assert.Equal(t, i, val)

		_, raw, err := seq.Latest(db)
		require.NoError(t, err)
		if prev != nil && bytes.Compare(prev, raw) >= 0 {
			t.Fatalf("sequence keys must be strictly increasing: %x then %x", prev, raw)
		}
		prev = raw
	}
}

func TestSequenceIndependentCounters(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("swap", SeqID)
	b := NewSequence("wallet", SeqID)

	_, err := a.NextInt(db)
	require.NoError(t, err)
	_, err = a.NextInt(db)
	require.NoError(t, err)

	val, err := b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), val, "sequences must not share state")
}

func TestSequenceOverflowIsFatal(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("swap", SeqID)

	// Force the counter to the highest possible value.
	require.NoError(t, db.Set(seq.id, EncodeSequence(int64(^uint64(0)>>1))))

	_, err := seq.NextInt(db)
	if !errors.ErrOverflow.Is(err) {
		t.Fatalf("want ErrOverflow, got %+v", err)
	}

	// The stored state must be left untouched, no wrapped value is ever
	// handed out.
	val, _, err := seq.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(^uint64(0)>>1), val)
}
