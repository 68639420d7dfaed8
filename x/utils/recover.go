package utils

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we can
// log them as errors instead of crashing the process.
type Recovery struct{}

var _ tandem.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check implements tandem.Decorator.
func (r Recovery) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Checker) (res *tandem.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver implements tandem.Decorator.
func (r Recovery) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Deliverer) (res *tandem.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
