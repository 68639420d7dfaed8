package swap

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/orm"
)

// Swap is an open offer to exchange InitiatorAsset against
// CounterpartyAsset with a fixed counterparty. The record exists only
// while the swap is open. Accepting or cancelling removes it.
type Swap struct {
	// Initiator created the swap and funded the escrow.
	Initiator tandem.Address
	// Counterparty is the only address allowed to accept.
	Counterparty tandem.Address
	// InitiatorAsset is the amount held on the escrow address.
	InitiatorAsset int64
	// CounterpartyAsset is the amount the counterparty must pay.
	CounterpartyAsset int64
	// Address is the escrow address holding the initiator deposit.
	Address tandem.Address
}

var _ orm.Model = (*Swap)(nil)

// Marshal implements tandem.Persistent.
func (s *Swap) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

// Unmarshal implements tandem.Persistent.
func (s *Swap) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// Validate ensures the record is sound before it is persisted.
func (s *Swap) Validate() error {
	if err := s.Initiator.Validate(); err != nil {
		return errors.Wrap(err, "initiator")
	}
	if err := s.Counterparty.Validate(); err != nil {
		return errors.Wrap(err, "counterparty")
	}
	if s.Initiator.Equals(s.Counterparty) {
		return errors.Wrap(ErrSelfSwap, "initiator is counterparty")
	}
	if s.InitiatorAsset <= 0 {
		return errors.Wrapf(errors.ErrAmount, "initiator asset %d", s.InitiatorAsset)
	}
	if s.CounterpartyAsset <= 0 {
		return errors.Wrapf(errors.ErrAmount, "counterparty asset %d", s.CounterpartyAsset)
	}
	if err := s.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

// SwapAddr returns the escrow address derived from the swap id. Funds held
// there can only be moved by this extension.
func SwapAddr(key []byte) tandem.Address {
	return tandem.NewCondition("swap", "seq", key).Address()
}

// NewBucket returns the bucket persisting open swaps, together with the
// sequence issuing swap ids.
func NewBucket() (orm.ModelBucket, orm.Sequence) {
	return orm.NewModelBucket("swap"), orm.NewSequence("swap", "id")
}
