package app

import (
	"fmt"
	"regexp"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// isPath ensures registered paths look like "extension/action".
var isPath = regexp.MustCompile(`^[a-z_]+/[a-z_]+$`).MatchString

// Router maps message paths to handlers.
type Router struct {
	handlers map[string]tandem.Handler
}

var _ tandem.Registry = (*Router)(nil)
var _ tandem.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]tandem.Handler),
	}
}

// Handle implements tandem.Registry. It panics on an invalid path or a
// duplicate registration, both are a setup error.
func (r *Router) Handle(m tandem.Msg, h tandem.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering path %q", path))
	}
	r.handlers[path] = h
}

// handler returns the registered handler, or a handler that always fails
// when the path is unknown.
func (r *Router) handler(path string) tandem.Handler {
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check implements tandem.Handler by routing to the message handler.
func (r *Router) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.CheckResult, error) {
	return r.handler(tandem.GetPath(tx)).Check(ctx, db, tx)
}

// Deliver implements tandem.Handler by routing to the message handler.
func (r *Router) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	return r.handler(tandem.GetPath(tx)).Deliver(ctx, db, tx)
}

type notFoundHandler string

func (p notFoundHandler) Check(tandem.Context, tandem.KVStore, tandem.Tx) (*tandem.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(p))
}

func (p notFoundHandler) Deliver(tandem.Context, tandem.KVStore, tandem.Tx) (*tandem.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(p))
}
