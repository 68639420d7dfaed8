package swap

import (
	"testing"

	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/tandemtest"
)

func TestInitiateSwapMsgValidate(t *testing.T) {
	alice := tandemtest.NewCondition().Address()
	bob := tandemtest.NewCondition().Address()

	cases := map[string]struct {
		msg     InitiateSwapMsg
		wantErr *errors.Error
	}{
		"valid without initiator": {
			msg: InitiateSwapMsg{
				Counterparty:       bob,
				Amount:             10,
				CounterpartyAmount: 4,
			},
		},
		"valid with initiator": {
			msg: InitiateSwapMsg{
				Initiator:          alice,
				Counterparty:       bob,
				Amount:             10,
				CounterpartyAmount: 4,
			},
		},
		"missing counterparty": {
			msg: InitiateSwapMsg{
				Amount:             10,
				CounterpartyAmount: 4,
			},
			wantErr: errors.ErrInput,
		},
		"self swap": {
			msg: InitiateSwapMsg{
				Initiator:          alice,
				Counterparty:       alice,
				Amount:             10,
				CounterpartyAmount: 4,
			},
			wantErr: ErrSelfSwap,
		},
		"zero amount": {
			msg: InitiateSwapMsg{
				Counterparty:       bob,
				Amount:             0,
				CounterpartyAmount: 4,
			},
			wantErr: errors.ErrAmount,
		},
		"zero counterparty amount": {
			msg: InitiateSwapMsg{
				Counterparty:       bob,
				Amount:             10,
				CounterpartyAmount: 0,
			},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestResolveMsgsValidate(t *testing.T) {
	goodID := tandemtest.SequenceID(1)

	if err := (&AcceptSwapMsg{SwapID: goodID, Amount: 5}).Validate(); err != nil {
		t.Fatalf("valid accept: %+v", err)
	}
	if err := (&AcceptSwapMsg{SwapID: []byte{1, 2}, Amount: 5}).Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("short id: %+v", err)
	}
	if err := (&AcceptSwapMsg{SwapID: goodID, Amount: 0}).Validate(); !errors.ErrAmount.Is(err) {
		t.Fatalf("zero payment: %+v", err)
	}

	if err := (&CancelSwapMsg{SwapID: goodID}).Validate(); err != nil {
		t.Fatalf("valid cancel: %+v", err)
	}
	if err := (&CancelSwapMsg{}).Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("missing id: %+v", err)
	}
}

func TestMsgPaths(t *testing.T) {
	paths := map[string]string{
		InitiateSwapMsg{}.Path(): "swap/initiate",
		AcceptSwapMsg{}.Path():   "swap/accept",
		CancelSwapMsg{}.Path():   "swap/cancel",
	}
	for got, want := range paths {
		if got != want {
			t.Fatalf("path %q, want %q", got, want)
		}
	}
}
