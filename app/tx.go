package app

import (
	amino "github.com/tendermint/go-amino"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/x/funds"
	"github.com/tandemswap/tandem/x/swap"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*tandem.Msg)(nil), nil)
	cdc.RegisterConcrete(&funds.SendMsg{}, "funds/SendMsg", nil)
	cdc.RegisterConcrete(&swap.InitiateSwapMsg{}, "swap/InitiateSwapMsg", nil)
	cdc.RegisterConcrete(&swap.AcceptSwapMsg{}, "swap/AcceptSwapMsg", nil)
	cdc.RegisterConcrete(&swap.CancelSwapMsg{}, "swap/CancelSwapMsg", nil)
	cdc.RegisterConcrete(&Tx{}, "app/Tx", nil)
}

// Tx is the transaction envelope of this application, wrapping exactly one
// message together with the declared sender.
type Tx struct {
	Sender tandem.Address
	Sum    tandem.Msg
}

var (
	_ tandem.Tx = (*Tx)(nil)
	_ SenderTx  = (*Tx)(nil)
)

// NewTx wraps a message into a transaction.
func NewTx(sender tandem.Address, msg tandem.Msg) *Tx {
	return &Tx{Sender: sender, Sum: msg}
}

// GetSender implements SenderTx.
func (tx *Tx) GetSender() tandem.Address {
	return tx.Sender
}

// GetMsg implements tandem.Tx.
func (tx *Tx) GetMsg() (tandem.Msg, error) {
	if tx.Sum == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction without a message")
	}
	return tx.Sum, nil
}

// Marshal implements tandem.Persistent.
func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

// Unmarshal implements tandem.Persistent.
func (tx *Tx) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, tx)
}

// TxDecoder parses raw transaction bytes.
func TxDecoder(raw []byte) (tandem.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}
