package funds

import (
	"context"
	"testing"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/store"
	"github.com/tandemswap/tandem/tandemtest"
)

func TestSendHandler(t *testing.T) {
	alice := tandemtest.NewCondition()
	bob := tandemtest.NewCondition()

	cases := map[string]struct {
		signer  tandem.Condition
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"happy path": {
			signer: alice,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: 10,
			},
		},
		"not signed by source": {
			signer: bob,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: 10,
			},
			wantErr: errors.ErrUnauthorized,
		},
		"invalid amount": {
			signer: alice,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: 0,
			},
			wantErr: errors.ErrAmount,
		},
		"send to self": {
			signer: alice,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   alice.Address(),
				Amount: 10,
			},
			wantErr: errors.ErrInput,
		},
		"insufficient funds": {
			signer: alice,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: 1000,
			},
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController(NewWalletBucket())
			if err := control.IssueCoins(db, alice.Address(), 100); err != nil {
				t.Fatalf("issue: %+v", err)
			}

			auth := &tandemtest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, control)
			tx := &tandemtest.Tx{Msg: tc.msg}
			ctx := tandem.WithHeight(context.Background(), 100)

			if _, err := h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("check: unexpected error %+v", err)
			}
			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: unexpected error %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			if len(res.Events) != 1 || res.Events[0].Type != "transfer" {
				t.Fatalf("unexpected events: %+v", res.Events)
			}
			assertBalance(t, db, control, alice.Address(), 100-tc.msg.Amount)
			assertBalance(t, db, control, bob.Address(), tc.msg.Amount)
		})
	}
}

func TestGenesisBalances(t *testing.T) {
	db := store.MemStore()
	addr := tandemtest.NewCondition().Address()

	opts := tandem.Options{
		"funds": []byte(`[{"address": "` + addr.String() + `", "balance": 50}]`),
	}
	var ini Initializer
	if err := ini.FromGenesis(opts, db); err != nil {
		t.Fatalf("genesis: %+v", err)
	}
	control := NewController(NewWalletBucket())
	assertBalance(t, db, control, addr, 50)
}
