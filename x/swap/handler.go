package swap

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/orm"
	"github.com/tandemswap/tandem/x"
	"github.com/tandemswap/tandem/x/funds"
	"github.com/tandemswap/tandem/x/guard"
)

const (
	initiateSwapCost int64 = 300
	resolveSwapCost  int64 = 150
)

// RegisterRoutes will instantiate and register all handlers in this
// package. All three handlers share one reentrancy guard.
func RegisterRoutes(r tandem.Registry, auth x.Authenticator, control funds.CoinMover, g *guard.Guard) {
	bucket, seq := NewBucket()
	r.Handle(&InitiateSwapMsg{}, InitiateSwapHandler{
		auth:   auth,
		bucket: bucket,
		seq:    seq,
		bank:   control,
		guard:  g,
	})
	r.Handle(&AcceptSwapMsg{}, AcceptSwapHandler{
		auth:   auth,
		bucket: bucket,
		bank:   control,
		guard:  g,
	})
	r.Handle(&CancelSwapMsg{}, CancelSwapHandler{
		auth:   auth,
		bucket: bucket,
		bank:   control,
		guard:  g,
	})
}

// RegisterQuery registers open swaps for the query router.
func RegisterQuery(qr tandem.QueryRouter) {
	bucket, _ := NewBucket()
	bucket.Register("swaps", qr)
}

// InitiateSwapHandler opens swaps and escrows the initiator deposit.
type InitiateSwapHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	seq    orm.Sequence
	bank   funds.CoinMover
	guard  *guard.Guard
}

var _ tandem.Handler = InitiateSwapHandler{}

// Check validates the message without opening a swap.
func (h InitiateSwapHandler) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tandem.CheckResult{GasAllocated: initiateSwapCost}, nil
}

// Deliver assigns the next swap id, moves the deposit onto the swap
// address and stores the record. The id is returned as the result data.
func (h InitiateSwapHandler) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	if err := h.guard.Acquire(); err != nil {
		return nil, err
	}
	defer h.guard.Release()

	msg, initiator, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	id, err := h.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "new swap id")
	}
	swap := Swap{
		Initiator:         initiator,
		Counterparty:      msg.Counterparty,
		InitiatorAsset:    msg.Amount,
		CounterpartyAsset: msg.CounterpartyAmount,
		Address:           SwapAddr(id),
	}
	if err := h.bank.MoveCoins(db, swap.Initiator, swap.Address, swap.InitiatorAsset); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	if err := h.bucket.Put(db, id, &swap); err != nil {
		return nil, errors.Wrap(err, "store swap")
	}

	res := tandem.DeliverResult{
		Data:   id,
		Events: []tandem.Event{initiatedEvent(id, &swap)},
	}
	return &res, nil
}

// validate returns the message and the resolved initiator address. When the
// message does not name an initiator, the main signer is used.
func (h InitiateSwapHandler) validate(ctx tandem.Context, tx tandem.Tx) (*InitiateSwapMsg, tandem.Address, error) {
	var msg InitiateSwapMsg
	if err := tandem.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}

	initiator := msg.Initiator
	if len(initiator) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		initiator = signer.Address()
	}
	if !h.auth.HasAddress(ctx, initiator) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initiator must sign")
	}
	if initiator.Equals(msg.Counterparty) {
		return nil, nil, errors.Wrap(ErrSelfSwap, "initiator is counterparty")
	}
	return &msg, initiator, nil
}

// AcceptSwapHandler settles open swaps.
type AcceptSwapHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   funds.CoinMover
	guard  *guard.Guard
}

var _ tandem.Handler = AcceptSwapHandler{}

// Check validates the message against the stored swap.
func (h AcceptSwapHandler) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tandem.CheckResult{GasAllocated: resolveSwapCost}, nil
}

// Deliver pays the counterparty asset to the initiator, releases the
// escrowed deposit to the counterparty and removes the record. Both legs
// and the deletion commit or fail together, the surrounding savepoint
// discards partial writes.
func (h AcceptSwapHandler) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	if err := h.guard.Acquire(); err != nil {
		return nil, err
	}
	defer h.guard.Release()

	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.bank.MoveCoins(db, swap.Counterparty, swap.Initiator, swap.CounterpartyAsset); err != nil {
		return nil, errors.Wrap(err, "counterparty payment")
	}
	if err := h.bank.MoveCoins(db, swap.Address, swap.Counterparty, swap.InitiatorAsset); err != nil {
		return nil, errors.Wrap(err, "release deposit")
	}
	if err := h.bucket.Delete(db, msg.SwapID); err != nil {
		return nil, errors.Wrap(err, "delete swap")
	}

	res := tandem.DeliverResult{
		Data:   msg.SwapID,
		Events: []tandem.Event{acceptedEvent(msg.SwapID, swap)},
	}
	return &res, nil
}

func (h AcceptSwapHandler) validate(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*AcceptSwapMsg, *Swap, error) {
	var msg AcceptSwapMsg
	if err := tandem.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	var swap Swap
	if err := h.bucket.One(db, msg.SwapID, &swap); err != nil {
		return nil, nil, errors.Wrap(err, "load swap")
	}
	if !h.auth.HasAddress(ctx, swap.Counterparty) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "counterparty must sign")
	}
	if msg.Amount != swap.CounterpartyAsset {
		return nil, nil, errors.Wrapf(errors.ErrAmount,
			"payment %d, swap requires %d", msg.Amount, swap.CounterpartyAsset)
	}
	return &msg, &swap, nil
}

// CancelSwapHandler removes open swaps and refunds the deposit.
type CancelSwapHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   funds.CoinMover
	guard  *guard.Guard
}

var _ tandem.Handler = CancelSwapHandler{}

// Check validates the message against the stored swap.
func (h CancelSwapHandler) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tandem.CheckResult{GasAllocated: resolveSwapCost}, nil
}

// Deliver refunds the escrowed deposit to the initiator and removes the
// record.
func (h CancelSwapHandler) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	if err := h.guard.Acquire(); err != nil {
		return nil, err
	}
	defer h.guard.Release()

	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.bank.MoveCoins(db, swap.Address, swap.Initiator, swap.InitiatorAsset); err != nil {
		return nil, errors.Wrap(err, "refund deposit")
	}
	if err := h.bucket.Delete(db, msg.SwapID); err != nil {
		return nil, errors.Wrap(err, "delete swap")
	}

	res := tandem.DeliverResult{
		Data:   msg.SwapID,
		Events: []tandem.Event{cancelledEvent(msg.SwapID, swap)},
	}
	return &res, nil
}

func (h CancelSwapHandler) validate(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*CancelSwapMsg, *Swap, error) {
	var msg CancelSwapMsg
	if err := tandem.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	var swap Swap
	if err := h.bucket.One(db, msg.SwapID, &swap); err != nil {
		return nil, nil, errors.Wrap(err, "load swap")
	}
	if !h.auth.HasAddress(ctx, swap.Initiator) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "initiator must sign")
	}
	return &msg, &swap, nil
}
