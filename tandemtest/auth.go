package tandemtest

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/tandemswap/tandem"
)

// Auth is a mock implementing x.Authenticator interface. Whatever is
// declared as a signer is authenticated, regardless of the context.
type Auth struct {
	// Signer is included in the result when set.
	Signer tandem.Condition
	// Signers are included in the result when set.
	Signers []tandem.Condition
}

func (a *Auth) GetConditions(tandem.Context) []tandem.Condition {
	conds := make([]tandem.Condition, 0, len(a.Signers)+1)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx tandem.Context, addr tandem.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if s.Address().Equals(addr) {
			return true
		}
	}
	return false
}

// CtxAuth is an x.Authenticator implementation that reads conditions from
// the context, stored under a declared key.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context with the given conditions attached.
func (a *CtxAuth) SetConditions(ctx tandem.Context, conds ...tandem.Condition) tandem.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx tandem.Context) []tandem.Condition {
	conds, ok := ctx.Value(ctxAuthKey(a.Key)).([]tandem.Condition)
	if !ok {
		return nil
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx tandem.Context, addr tandem.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if s.Address().Equals(addr) {
			return true
		}
	}
	return false
}

// NewCondition returns a random, never repeating condition.
func NewCondition() tandem.Condition {
	data := make([]byte, 16)
	if _, err := rand.Read(data); err != nil {
		panic(fmt.Sprintf("cannot read random data: %s", err))
	}
	return tandem.NewCondition("test", "random", data)
}
