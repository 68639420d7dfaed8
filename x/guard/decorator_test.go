package guard

import (
	"context"
	"testing"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/store"
	"github.com/tandemswap/tandem/tandemtest"
)

// reentrant calls back into the same decorator from inside Deliver.
type reentrant struct {
	d   Decorator
	err error
}

func (r *reentrant) Check(tandem.Context, tandem.KVStore, tandem.Tx) (*tandem.CheckResult, error) {
	return &tandem.CheckResult{}, nil
}

func (r *reentrant) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	_, r.err = r.d.Deliver(ctx, db, tx, &tandemtest.Handler{})
	return &tandem.DeliverResult{}, r.err
}

func TestDecoratorBlocksReentrancy(t *testing.T) {
	g := NewGuard()
	d := NewDecorator(g)
	inner := &reentrant{d: d}

	db := store.MemStore()
	_, err := d.Deliver(context.Background(), db, &tandemtest.Tx{}, inner)
	if !ErrReentrancy.Is(err) {
		t.Fatalf("want ErrReentrancy, got %+v", err)
	}
	if !ErrReentrancy.Is(inner.err) {
		t.Fatalf("inner call must be rejected, got %+v", inner.err)
	}
	if g.Held() {
		t.Fatal("guard must be released afterwards")
	}
}

func TestDecoratorAllowsSequentialCalls(t *testing.T) {
	d := NewDecorator(NewGuard())
	h := &tandemtest.Handler{}
	db := store.MemStore()

	for i := 0; i < 3; i++ {
		if _, err := d.Deliver(context.Background(), db, &tandemtest.Tx{}, h); err != nil {
			t.Fatalf("deliver #%d: %+v", i, err)
		}
	}
	if h.DeliverCallCount() != 3 {
		t.Fatalf("handler called %d times", h.DeliverCallCount())
	}

	if _, err := d.Check(context.Background(), db, &tandemtest.Tx{}, h); err != nil {
		t.Fatalf("check: %+v", err)
	}
}
