package funds

import (
	"strconv"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r tandem.Registry, auth x.Authenticator, control CoinMover) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery registers wallets for the query router.
func RegisterQuery(qr tandem.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler processes SendMsg transactions.
type SendHandler struct {
	auth    x.Authenticator
	control CoinMover
}

var _ tandem.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control CoinMover) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message without applying it.
func (h SendHandler) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tandem.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the funds.
func (h SendHandler) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	res := tandem.DeliverResult{
		Events: []tandem.Event{
			tandem.NewEvent("transfer",
				tandem.Pair{Key: "src", Value: msg.Src.String()},
				tandem.Pair{Key: "dest", Value: msg.Dest.String()},
				tandem.Pair{Key: "amount", Value: strconv.FormatInt(msg.Amount, 10)},
			),
		},
	}
	return &res, nil
}

func (h SendHandler) validate(ctx tandem.Context, tx tandem.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := tandem.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender must sign the transfer")
	}
	return &msg, nil
}
