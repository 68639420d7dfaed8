package swap

import (
	"github.com/tandemswap/tandem/errors"
)

// ErrSelfSwap is returned when a swap names the same party on both sides.
var ErrSelfSwap = errors.Register(1200, "swap with oneself")
