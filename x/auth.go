/*
Package x holds the interfaces shared by all extensions, most importantly the
Authenticator that reveals the caller identity to handlers.
*/
package x

import (
	"github.com/tandemswap/tandem"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// one implementation for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper.
	GetConditions(tandem.Context) []tandem.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(tandem.Context, tandem.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx tandem.Context) []tandem.Condition {
	var res []tandem.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx tandem.Context, addr tandem.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx tandem.Context, auth Authenticator) []tandem.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]tandem.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition of the request if any, otherwise
// nil. It is the "caller identity" used when a message does not declare an
// explicit party.
func MainSigner(ctx tandem.Context, auth Authenticator) tandem.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
