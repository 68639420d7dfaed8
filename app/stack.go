package app

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/x"
	"github.com/tandemswap/tandem/x/funds"
	"github.com/tandemswap/tandem/x/guard"
	"github.com/tandemswap/tandem/x/swap"
	"github.com/tandemswap/tandem/x/utils"
)

// Stack wires all extensions into a router and wraps it with the standard
// decorators. Handlers run inside a savepoint, so a failing handler never
// leaves partial writes behind.
func Stack(auth x.Authenticator, control funds.Controller, g *guard.Guard) tandem.Handler {
	r := NewRouter()
	funds.RegisterRoutes(r, auth, control)
	swap.RegisterRoutes(r, auth, control, g)

	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		NewSenderDecorator(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)
}

// QueryRouter returns a router with all extension queries registered.
func QueryRouter() tandem.QueryRouter {
	qr := tandem.NewQueryRouter()
	qr.RegisterAll(
		funds.RegisterQuery,
		swap.RegisterQuery,
	)
	return qr
}
