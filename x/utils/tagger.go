package utils

import (
	"github.com/tandemswap/tandem"
)

// ActionTagger appends an event with the message path to every delivered
// transaction, so indexers can subscribe per action.
type ActionTagger struct{}

var _ tandem.Decorator = ActionTagger{}

// NewActionTagger creates an ActionTagger decorator.
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check implements tandem.Decorator. Check results carry no events, so it
// only passes the call through.
func (ActionTagger) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Checker) (*tandem.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver implements tandem.Decorator.
func (ActionTagger) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Deliverer) (*tandem.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return res, err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return res, err
	}
	res.Events = append(res.Events, tandem.NewEvent("message",
		tandem.Pair{Key: "action", Value: msg.Path()},
	))
	return res, nil
}
