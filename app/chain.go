package app

import (
	"reflect"

	"github.com/tandemswap/tandem"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []tandem.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final
Handler (often a Router), returns a Handler that will execute this whole
stack.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  utils.NewActionTagger(),
	  utils.NewSavepoint().OnDeliver(),
	).WithHandler(
	  app.NewRouter(),
	)
*/
func ChainDecorators(chain ...tandem.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain appends more decorators to the chain. Nil entries are dropped, so
// optional decorators can be passed without a condition at the call site.
func (d Decorators) Chain(chain ...tandem.Decorator) Decorators {
	next := make([]tandem.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if isNilDecorator(dec) {
			continue
		}
		next = append(next, dec)
	}
	return Decorators{chain: next}
}

// WithHandler resolves the stack and returns a concrete Handler that will
// pass through the chain of decorators before calling the final Handler.
func (d Decorators) WithHandler(h tandem.Handler) tandem.Handler {
	// The top of the chain is executed first, so wrap from the end.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

func isNilDecorator(d tandem.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// step captures one step executing a decorator around a specific Handler.
type step struct {
	d    tandem.Decorator
	next tandem.Handler
}

var _ tandem.Handler = step{}

func (s step) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
