package app

import (
	"context"
	"testing"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/store"
	"github.com/tandemswap/tandem/tandemtest"
)

// marker records its name when the chain passes through it.
type marker struct {
	name string
	log  *[]string
}

func (m marker) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Checker) (*tandem.CheckResult, error) {
	*m.log = append(*m.log, m.name)
	return next.Check(ctx, db, tx)
}

func (m marker) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Deliverer) (*tandem.DeliverResult, error) {
	*m.log = append(*m.log, m.name)
	return next.Deliver(ctx, db, tx)
}

func TestChainDecoratorsOrder(t *testing.T) {
	var log []string
	h := &tandemtest.Handler{}

	stack := ChainDecorators(
		marker{name: "first", log: &log},
		nil,
		marker{name: "second", log: &log},
	).Chain(
		marker{name: "third", log: &log},
	).WithHandler(h)

	db := store.MemStore()
	if _, err := stack.Deliver(context.Background(), db, &tandemtest.Tx{}); err != nil {
		t.Fatalf("deliver: %+v", err)
	}
	if h.DeliverCallCount() != 1 {
		t.Fatalf("handler called %d times", h.DeliverCallCount())
	}
	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("unexpected chain: %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("unexpected chain: %v", log)
		}
	}
}
