package tandemtest

import (
	"github.com/tandemswap/tandem"
)

// Handler is a mock implementation of the tandem.Handler interface. It
// counts the calls and returns declared results.
type Handler struct {
	CheckResult tandem.CheckResult
	// CheckErr, if set, is returned by every Check call.
	CheckErr error

	DeliverResult tandem.DeliverResult
	// DeliverErr, if set, is returned by every Deliver call.
	DeliverErr error

	checkCall   int
	deliverCall int
}

var _ tandem.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx) (*tandem.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
