package app

import (
	"context"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/x"
)

type senderKey struct{}

// WithSender returns a context in which the given address is
// authenticated.
func WithSender(ctx tandem.Context, addr tandem.Address) tandem.Context {
	return context.WithValue(ctx, senderKey{}, addr.Clone())
}

// Auth authenticates the transaction sender stored in the context. The
// sender is declared by the transaction envelope, there is no signature
// scheme. Deployments terminate authentication at the RPC boundary.
type Auth struct{}

var _ x.Authenticator = Auth{}

// GetConditions implements x.Authenticator. A plain address reveals no
// condition, so the result is always empty. Messages processed under this
// authenticator must name their parties explicitly.
func (Auth) GetConditions(tandem.Context) []tandem.Condition {
	return nil
}

// HasAddress implements x.Authenticator.
func (Auth) HasAddress(ctx tandem.Context, addr tandem.Address) bool {
	sender, ok := ctx.Value(senderKey{}).(tandem.Address)
	return ok && sender.Equals(addr)
}

// SenderTx is implemented by transactions that declare their sender.
type SenderTx interface {
	GetSender() tandem.Address
}

// SenderDecorator exposes the transaction sender to the handlers by
// storing it in the context, where Auth picks it up.
type SenderDecorator struct{}

var _ tandem.Decorator = SenderDecorator{}

// NewSenderDecorator creates a SenderDecorator.
func NewSenderDecorator() SenderDecorator {
	return SenderDecorator{}
}

// Check implements tandem.Decorator.
func (SenderDecorator) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Checker) (*tandem.CheckResult, error) {
	return next.Check(withTxSender(ctx, tx), db, tx)
}

// Deliver implements tandem.Decorator.
func (SenderDecorator) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Deliverer) (*tandem.DeliverResult, error) {
	return next.Deliver(withTxSender(ctx, tx), db, tx)
}

func withTxSender(ctx tandem.Context, tx tandem.Tx) tandem.Context {
	stx, ok := tx.(SenderTx)
	if !ok {
		return ctx
	}
	sender := stx.GetSender()
	if len(sender) == 0 {
		return ctx
	}
	return WithSender(ctx, sender)
}
