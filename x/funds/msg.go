package funds

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

const pathSendMsg = "funds/send"

// SendMsg moves funds from the source to the destination wallet.
type SendMsg struct {
	Src    tandem.Address
	Dest   tandem.Address
	Amount int64
}

var _ tandem.Msg = (*SendMsg)(nil)

// Path implements tandem.Msg.
func (SendMsg) Path() string {
	return pathSendMsg
}

// Marshal implements tandem.Persistent.
func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal implements tandem.Persistent.
func (m *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate implements tandem.Msg.
func (m *SendMsg) Validate() error {
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %d", m.Amount)
	}
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if m.Src.Equals(m.Dest) {
		return errors.Wrap(errors.ErrInput, "transfer to self")
	}
	return nil
}
