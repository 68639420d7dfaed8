package funds

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/orm"
)

// CoinMover moves value between two wallets.
type CoinMover interface {
	// MoveCoins removes amount from src and credits it to dest. It fails
	// without mutating state when src cannot cover the amount.
	MoveCoins(db tandem.KVStore, src, dest tandem.Address, amount int64) error
}

// CoinMinter credits value out of thin air. Only genesis initialization
// should hold this capability.
type CoinMinter interface {
	IssueCoins(db tandem.KVStore, dest tandem.Address, amount int64) error
}

// Controller is the full ledger interface offered to other extensions.
type Controller interface {
	CoinMover
	CoinMinter
	Balance(db tandem.ReadOnlyKVStore, addr tandem.Address) (int64, error)
}

// TransferHook is invoked after every successful MoveCoins, with the same
// store the transfer wrote to. A non-nil result fails the transfer. Hooks
// model token contracts that observe transfers and may call back into the
// application.
type TransferHook func(db tandem.KVStore, src, dest tandem.Address, amount int64) error

// BaseController implements Controller over the wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
	hook   TransferHook
}

var _ Controller = BaseController{}

// NewController returns a controller without a transfer hook.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// WithHook returns a copy of the controller that invokes the given hook
// after every successful transfer.
func (c BaseController) WithHook(hook TransferHook) BaseController {
	c.hook = hook
	return c
}

// Balance returns the balance of the given address, zero for an address
// without a wallet.
func (c BaseController) Balance(db tandem.ReadOnlyKVStore, addr tandem.Address) (int64, error) {
	return WalletBalance(db, c.bucket, addr)
}

// MoveCoins implements CoinMover.
func (c BaseController) MoveCoins(db tandem.KVStore, src, dest tandem.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer %d", amount)
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "transfer to self")
	}

	var sender Wallet
	if err := c.bucket.One(db, src, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "no wallet for %s", src)
		}
		return errors.Wrap(err, "load sender")
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"balance %d, requested %d", sender.Balance, amount)
	}
	sender.Balance -= amount

	if err := c.credit(db, dest, amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, src, &sender); err != nil {
		return errors.Wrap(err, "store sender")
	}

	if c.hook != nil {
		if err := c.hook(db, src, dest, amount); err != nil {
			return errors.Wrap(err, "transfer hook")
		}
	}
	return nil
}

// IssueCoins implements CoinMinter.
func (c BaseController) IssueCoins(db tandem.KVStore, dest tandem.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive issue %d", amount)
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return c.credit(db, dest, amount)
}

func (c BaseController) credit(db tandem.KVStore, dest tandem.Address, amount int64) error {
	var recipient Wallet
	err := c.bucket.One(db, dest, &recipient)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "load recipient")
	}
	if recipient.Balance+amount < recipient.Balance {
		return errors.Wrapf(errors.ErrOverflow,
			"crediting %d to %d", amount, recipient.Balance)
	}
	recipient.Balance += amount
	if err := c.bucket.Put(db, dest, &recipient); err != nil {
		return errors.Wrap(err, "store recipient")
	}
	return nil
}
