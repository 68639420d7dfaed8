package funds

import (
	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// Initializer fulfils the Initializer interface to load genesis balances.
type Initializer struct{}

var _ tandem.Initializer = Initializer{}

// FromGenesis initializes wallets from the "funds" genesis option:
//
//	"funds": [
//	  {"address": "0123...", "balance": 100}
//	]
func (Initializer) FromGenesis(opts tandem.Options, db tandem.KVStore) error {
	var accounts []struct {
		Address tandem.Address `json:"address"`
		Balance int64          `json:"balance"`
	}
	if err := opts.ReadOptions("funds", &accounts); err != nil {
		return errors.Wrap(err, "read funds options")
	}
	control := NewController(NewWalletBucket())
	for i, acct := range accounts {
		if err := control.IssueCoins(db, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
