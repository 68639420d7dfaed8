package app

import (
	"context"
	"testing"

	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/store"
	"github.com/tandemswap/tandem/tandemtest"
)

func TestRouterRoutes(t *testing.T) {
	r := NewRouter()
	h := &tandemtest.Handler{}
	r.Handle(&tandemtest.Msg{RoutePath: "testing/ok"}, h)

	db := store.MemStore()
	tx := &tandemtest.Tx{Msg: &tandemtest.Msg{RoutePath: "testing/ok"}}
	if _, err := r.Deliver(context.Background(), db, tx); err != nil {
		t.Fatalf("deliver: %+v", err)
	}
	if h.DeliverCallCount() != 1 {
		t.Fatalf("handler called %d times", h.DeliverCallCount())
	}

	missing := &tandemtest.Tx{Msg: &tandemtest.Msg{RoutePath: "testing/missing"}}
	if _, err := r.Check(context.Background(), db, missing); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unknown path: want ErrNotFound, got %+v", err)
	}
}

func TestRouterRejectsBadPath(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("invalid path must panic")
		}
	}()
	NewRouter().Handle(&tandemtest.Msg{RoutePath: "Bad-Path"}, &tandemtest.Handler{})
}

func TestRouterRejectsDuplicate(t *testing.T) {
	r := NewRouter()
	r.Handle(&tandemtest.Msg{RoutePath: "testing/ok"}, &tandemtest.Handler{})
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration must panic")
		}
	}()
	r.Handle(&tandemtest.Msg{RoutePath: "testing/ok"}, &tandemtest.Handler{})
}
