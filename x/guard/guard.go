/*
Package guard provides a reentrancy lock shared by the swap handlers.

The lock is a plain flag, not a mutex. Transaction execution is serialized
by the application, so the only way the flag can already be held when a
handler runs is a reentrant call, for example a transfer hook dispatching
another message while the first one is still executing. Such calls must
fail instead of deadlocking.
*/
package guard

import (
	"github.com/tandemswap/tandem/errors"
)

// ErrReentrancy is returned when a guarded operation is entered while
// another guarded operation is still in progress.
var ErrReentrancy = errors.Register(1100, "reentrant call")

// Guard is a non-blocking reentrancy lock. The zero value is released.
type Guard struct {
	held bool
}

// NewGuard returns a released guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Acquire takes the lock. It fails with ErrReentrancy if the lock is
// already held.
func (g *Guard) Acquire() error {
	if g.held {
		return errors.Wrap(ErrReentrancy, "guard already held")
	}
	g.held = true
	return nil
}

// Release frees the lock. Releasing a released guard is a noop, so it is
// safe to defer Release right after a successful Acquire.
func (g *Guard) Release() {
	g.held = false
}

// Held returns true while the lock is taken.
func (g *Guard) Held() bool {
	return g.held
}
