package swap

import (
	"testing"

	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/tandemtest"
)

func TestSwapValidate(t *testing.T) {
	alice := tandemtest.NewCondition().Address()
	bob := tandemtest.NewCondition().Address()
	escrow := SwapAddr(tandemtest.SequenceID(1))

	valid := Swap{
		Initiator:         alice,
		Counterparty:      bob,
		InitiatorAsset:    100,
		CounterpartyAsset: 50,
		Address:           escrow,
	}

	cases := map[string]struct {
		mutate  func(*Swap)
		wantErr *errors.Error
	}{
		"valid": {
			mutate: func(*Swap) {},
		},
		"missing initiator": {
			mutate:  func(s *Swap) { s.Initiator = nil },
			wantErr: errors.ErrInput,
		},
		"missing counterparty": {
			mutate:  func(s *Swap) { s.Counterparty = nil },
			wantErr: errors.ErrInput,
		},
		"same parties": {
			mutate:  func(s *Swap) { s.Counterparty = s.Initiator },
			wantErr: ErrSelfSwap,
		},
		"zero initiator asset": {
			mutate:  func(s *Swap) { s.InitiatorAsset = 0 },
			wantErr: errors.ErrAmount,
		},
		"negative counterparty asset": {
			mutate:  func(s *Swap) { s.CounterpartyAsset = -2 },
			wantErr: errors.ErrAmount,
		},
		"missing escrow address": {
			mutate:  func(s *Swap) { s.Address = nil },
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := valid
			tc.mutate(&s)
			if err := s.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestSwapAddrIsDeterministic(t *testing.T) {
	a := SwapAddr(tandemtest.SequenceID(7))
	b := SwapAddr(tandemtest.SequenceID(7))
	c := SwapAddr(tandemtest.SequenceID(8))

	if !a.Equals(b) {
		t.Fatal("same id must derive the same address")
	}
	if a.Equals(c) {
		t.Fatal("different ids must derive different addresses")
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("derived address: %+v", err)
	}
}
