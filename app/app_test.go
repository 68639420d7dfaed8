package app

import (
	"path/filepath"
	"testing"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
	"github.com/tandemswap/tandem/store/bolt"
	"github.com/tandemswap/tandem/tandemtest"
	"github.com/tandemswap/tandem/x/funds"
	"github.com/tandemswap/tandem/x/guard"
	"github.com/tandemswap/tandem/x/swap"
)

func newTestApp(t testing.TB) *TandemApp {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "tandem.db"))
	if err != nil {
		t.Fatalf("open store: %+v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.LoadLatestVersion(); err != nil {
		t.Fatalf("load store: %+v", err)
	}

	control := funds.NewController(funds.NewWalletBucket())
	handler := Stack(Auth{}, control, guard.NewGuard())
	return New(db, handler, TxDecoder, QueryRouter(), nil)
}

func deliver(t testing.TB, a *TandemApp, sender tandem.Address, msg tandem.Msg) (*tandem.DeliverResult, error) {
	t.Helper()
	raw, err := NewTx(sender, msg).Marshal()
	if err != nil {
		t.Fatalf("marshal tx: %+v", err)
	}
	return a.DeliverTx(raw)
}

func queryWallet(t testing.TB, a *TandemApp, addr tandem.Address) int64 {
	t.Helper()
	models, err := a.Query("/wallets", addr)
	if err != nil {
		t.Fatalf("query wallet: %+v", err)
	}
	if len(models) == 0 {
		return 0
	}
	var w funds.Wallet
	if err := w.Unmarshal(models[0].Value); err != nil {
		t.Fatalf("unmarshal wallet: %+v", err)
	}
	return w.Balance
}

func TestAppSwapLifecycle(t *testing.T) {
	alice := tandemtest.NewCondition().Address()
	bob := tandemtest.NewCondition().Address()

	a := newTestApp(t)
	genesis := tandem.Options{
		"funds": []byte(`[
			{"address": "` + alice.String() + `", "balance": 100},
			{"address": "` + bob.String() + `", "balance": 50}
		]`),
	}
	if err := a.InitChain("tandem-test", genesis, funds.Initializer{}); err != nil {
		t.Fatalf("init chain: %+v", err)
	}
	if err := a.BeginBlock(1); err != nil {
		t.Fatalf("begin block: %+v", err)
	}

	res, err := deliver(t, a, alice, &swap.InitiateSwapMsg{
		Initiator:          alice,
		Counterparty:       bob,
		Amount:             100,
		CounterpartyAmount: 50,
	})
	if err != nil {
		t.Fatalf("initiate: %+v", err)
	}
	swapID := res.Data
	if _, err := a.Commit(); err != nil {
		t.Fatalf("commit: %+v", err)
	}

	if got := queryWallet(t, a, alice); got != 0 {
		t.Fatalf("initiator balance after deposit: %d", got)
	}
	models, err := a.Query("/swaps", swapID)
	if err != nil {
		t.Fatalf("query swap: %+v", err)
	}
	if len(models) != 1 {
		t.Fatalf("want stored swap, got %+v", models)
	}

	if err := a.BeginBlock(2); err != nil {
		t.Fatalf("begin block: %+v", err)
	}
	res, err = deliver(t, a, bob, &swap.AcceptSwapMsg{SwapID: swapID, Amount: 50})
	if err != nil {
		t.Fatalf("accept: %+v", err)
	}
	var hasAction bool
	for _, ev := range res.Events {
		if ev.Type == "message" {
			hasAction = true
		}
	}
	if !hasAction {
		t.Fatalf("want action event, got %+v", res.Events)
	}
	if _, err := a.Commit(); err != nil {
		t.Fatalf("commit: %+v", err)
	}

	if got := queryWallet(t, a, alice); got != 50 {
		t.Fatalf("initiator balance after accept: %d", got)
	}
	if got := queryWallet(t, a, bob); got != 100 {
		t.Fatalf("counterparty balance after accept: %d", got)
	}
	models, err = a.Query("/swaps", swapID)
	if err != nil {
		t.Fatalf("query swap: %+v", err)
	}
	if len(models) != 0 {
		t.Fatalf("accepted swap must be gone, got %+v", models)
	}
}

func TestAppFailedDeliverLeavesNoTrace(t *testing.T) {
	alice := tandemtest.NewCondition().Address()
	bob := tandemtest.NewCondition().Address()

	a := newTestApp(t)
	genesis := tandem.Options{
		"funds": []byte(`[{"address": "` + alice.String() + `", "balance": 10}]`),
	}
	if err := a.InitChain("tandem-test", genesis, funds.Initializer{}); err != nil {
		t.Fatalf("init chain: %+v", err)
	}
	if err := a.BeginBlock(1); err != nil {
		t.Fatalf("begin block: %+v", err)
	}

	_, err := deliver(t, a, alice, &swap.InitiateSwapMsg{
		Initiator:          alice,
		Counterparty:       bob,
		Amount:             100,
		CounterpartyAmount: 50,
	})
	if !errors.ErrInsufficientAmount.Is(err) {
		t.Fatalf("want ErrInsufficientAmount, got %+v", err)
	}
	if _, err := a.Commit(); err != nil {
		t.Fatalf("commit: %+v", err)
	}

	if got := queryWallet(t, a, alice); got != 10 {
		t.Fatalf("balance must be untouched: %d", got)
	}
	// The id sequence must not have been consumed by the failed attempt.
	if err := a.BeginBlock(2); err != nil {
		t.Fatalf("begin block: %+v", err)
	}
	res, err := deliver(t, a, alice, &swap.InitiateSwapMsg{
		Initiator:          alice,
		Counterparty:       bob,
		Amount:             10,
		CounterpartyAmount: 5,
	})
	if err != nil {
		t.Fatalf("initiate: %+v", err)
	}
	if len(res.Data) != 8 || res.Data[7] != 1 {
		t.Fatalf("failed attempt must not consume an id, got %x", res.Data)
	}
}

func TestAppUnauthorizedSender(t *testing.T) {
	alice := tandemtest.NewCondition().Address()
	bob := tandemtest.NewCondition().Address()

	a := newTestApp(t)
	genesis := tandem.Options{
		"funds": []byte(`[{"address": "` + alice.String() + `", "balance": 100}]`),
	}
	if err := a.InitChain("tandem-test", genesis, funds.Initializer{}); err != nil {
		t.Fatalf("init chain: %+v", err)
	}
	if err := a.BeginBlock(1); err != nil {
		t.Fatalf("begin block: %+v", err)
	}

	_, err := deliver(t, a, bob, &swap.InitiateSwapMsg{
		Initiator:          alice,
		Counterparty:       bob,
		Amount:             100,
		CounterpartyAmount: 50,
	})
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want ErrUnauthorized, got %+v", err)
	}
}

func TestAppRejectsTxBeforeInit(t *testing.T) {
	alice := tandemtest.NewCondition().Address()
	bob := tandemtest.NewCondition().Address()

	a := newTestApp(t)

	raw, err := NewTx(alice, &funds.SendMsg{
		Src:    alice,
		Dest:   bob,
		Amount: 10,
	}).Marshal()
	if err != nil {
		t.Fatalf("marshal tx: %+v", err)
	}
	if _, err := a.DeliverTx(raw); !errors.ErrState.Is(err) {
		t.Fatalf("deliver: want ErrState, got %+v", err)
	}
	if _, err := a.CheckTx(raw); !errors.ErrState.Is(err) {
		t.Fatalf("check: want ErrState, got %+v", err)
	}
}

func TestAppInitChainTwice(t *testing.T) {
	a := newTestApp(t)
	if err := a.InitChain("tandem-test", tandem.Options{}); err != nil {
		t.Fatalf("init chain: %+v", err)
	}
	if err := a.InitChain("tandem-test", tandem.Options{}); !errors.ErrState.Is(err) {
		t.Fatalf("second init: want ErrState, got %+v", err)
	}
}
