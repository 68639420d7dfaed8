package utils

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// Savepoint will isolate all data inside of the call, and commit or
// discard the cache wrap depending on whether the wrapped call succeeded.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ tandem.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. Without OnCheck or OnDeliver
// it is a no-op.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that isolates Check calls.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that isolates Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check implements tandem.Decorator.
func (s Savepoint) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Checker) (*tandem.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	cdb, ok := db.(tandem.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrType, "store cannot cache wrap")
	}
	cache := cdb.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write cache")
	}
	return res, nil
}

// Deliver implements tandem.Decorator.
func (s Savepoint) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Deliverer) (*tandem.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	cdb, ok := db.(tandem.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrType, "store cannot cache wrap")
	}
	cache := cdb.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write cache")
	}
	return res, nil
}
