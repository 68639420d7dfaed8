package swap

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

const (
	pathInitiateSwapMsg = "swap/initiate"
	pathAcceptSwapMsg   = "swap/accept"
	pathCancelSwapMsg   = "swap/cancel"
)

var (
	_ tandem.Msg = (*InitiateSwapMsg)(nil)
	_ tandem.Msg = (*AcceptSwapMsg)(nil)
	_ tandem.Msg = (*CancelSwapMsg)(nil)
)

// InitiateSwapMsg opens a swap. Amount is deposited from the initiator
// into the swap escrow, CounterpartyAmount is what the named counterparty
// must pay to accept.
type InitiateSwapMsg struct {
	// Initiator is optional. When empty the main signer is used.
	Initiator          tandem.Address
	Counterparty       tandem.Address
	Amount             int64
	CounterpartyAmount int64
}

// Path implements tandem.Msg.
func (InitiateSwapMsg) Path() string {
	return pathInitiateSwapMsg
}

func (m *InitiateSwapMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *InitiateSwapMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate implements tandem.Msg.
func (m *InitiateSwapMsg) Validate() error {
	if len(m.Initiator) != 0 {
		if err := m.Initiator.Validate(); err != nil {
			return errors.Wrap(err, "initiator")
		}
		if m.Initiator.Equals(m.Counterparty) {
			return errors.Wrap(ErrSelfSwap, "initiator is counterparty")
		}
	}
	if err := m.Counterparty.Validate(); err != nil {
		return errors.Wrap(err, "counterparty")
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "amount %d", m.Amount)
	}
	if m.CounterpartyAmount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "counterparty amount %d", m.CounterpartyAmount)
	}
	return nil
}

// AcceptSwapMsg settles the swap with the given id. Amount is the payment
// attached by the counterparty and must equal the swap's counterparty
// asset.
type AcceptSwapMsg struct {
	SwapID []byte
	Amount int64
}

// Path implements tandem.Msg.
func (AcceptSwapMsg) Path() string {
	return pathAcceptSwapMsg
}

func (m *AcceptSwapMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *AcceptSwapMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate implements tandem.Msg.
func (m *AcceptSwapMsg) Validate() error {
	if err := validateSwapID(m.SwapID); err != nil {
		return err
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "amount %d", m.Amount)
	}
	return nil
}

// CancelSwapMsg removes an open swap and refunds the escrow to the
// initiator.
type CancelSwapMsg struct {
	SwapID []byte
}

// Path implements tandem.Msg.
func (CancelSwapMsg) Path() string {
	return pathCancelSwapMsg
}

func (m *CancelSwapMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CancelSwapMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate implements tandem.Msg.
func (m *CancelSwapMsg) Validate() error {
	return validateSwapID(m.SwapID)
}

func validateSwapID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "swap id must be 8 bytes, got %d", len(id))
	}
	return nil
}
