package tandemtest

import (
	"encoding/binary"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// Tx is a mock implementation of the tandem.Tx interface, wrapping a single
// message.
type Tx struct {
	// Msg is the message held by this transaction.
	Msg tandem.Msg
	// Err, if set, is returned by every method call.
	Err error
}

var _ tandem.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tandem.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return errors.Wrap(errors.ErrHuman, "tandemtest.Tx cannot be deserialized")
}

// Msg is a mock implementation of the tandem.Msg interface.
type Msg struct {
	// RoutePath is returned by Path.
	RoutePath string
	// Serialized is the raw form returned by Marshal.
	Serialized []byte
	// Err, if set, is returned by Marshal, Unmarshal and Validate.
	Err error
}

var _ tandem.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}

func (m *Msg) Validate() error {
	return m.Err
}

// SequenceID returns the raw form of an ID issued by an orm.Sequence.
func SequenceID(n int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}
