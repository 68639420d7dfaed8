package guard

import (
	"github.com/tandemswap/tandem"
)

// Decorator gates a whole handler stack behind a shared Guard. Use it when
// every route of an application must be protected, instead of acquiring
// the guard in each handler.
type Decorator struct {
	guard *Guard
}

var _ tandem.Decorator = Decorator{}

// NewDecorator creates a Decorator around the given guard.
func NewDecorator(g *Guard) Decorator {
	return Decorator{guard: g}
}

// Check implements tandem.Decorator. Check never mutates state, so it
// passes through without touching the guard.
func (d Decorator) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Checker) (*tandem.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver implements tandem.Decorator.
func (d Decorator) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Deliverer) (*tandem.DeliverResult, error) {
	if err := d.guard.Acquire(); err != nil {
		return nil, err
	}
	defer d.guard.Release()
	return next.Deliver(ctx, db, tx)
}
