package funds

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/orm"
)

// Wallet holds the asset balance of one address. The wallet key is the
// owner address, so an address cannot own more than one wallet.
type Wallet struct {
	Balance int64
}

var _ orm.Model = (*Wallet)(nil)

// Marshal implements tandem.Persistent.
func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

// Unmarshal implements tandem.Persistent.
func (w *Wallet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, w)
}

// Validate enforces that a wallet never stores a negative balance.
func (w *Wallet) Validate() error {
	if w.Balance < 0 {
		return errors.Wrapf(errors.ErrModel, "negative balance %d", w.Balance)
	}
	return nil
}

// NewWalletBucket returns the bucket that persists all wallets.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallet")
}

// WalletBalance loads the balance of the given address. A missing wallet
// reads as a zero balance.
func WalletBalance(db tandem.ReadOnlyKVStore, bucket orm.ModelBucket, addr tandem.Address) (int64, error) {
	var w Wallet
	err := bucket.One(db, addr, &w)
	switch {
	case err == nil:
		return w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "load wallet")
	}
}
