package swap

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterConcrete(&Swap{}, "swap/Swap", nil)
	cdc.RegisterConcrete(&InitiateSwapMsg{}, "swap/InitiateSwapMsg", nil)
	cdc.RegisterConcrete(&AcceptSwapMsg{}, "swap/AcceptSwapMsg", nil)
	cdc.RegisterConcrete(&CancelSwapMsg{}, "swap/CancelSwapMsg", nil)
}
