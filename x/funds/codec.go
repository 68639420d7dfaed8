package funds

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterConcrete(&Wallet{}, "funds/Wallet", nil)
	cdc.RegisterConcrete(&SendMsg{}, "funds/SendMsg", nil)
}
