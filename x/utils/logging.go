package utils

import (
	"time"

	"go.uber.org/zap"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/errors"
)

// Logging is a decorator to log messages as they pass through it.
type Logging struct{}

var _ tandem.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check implements tandem.Decorator.
func (l Logging) Check(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Checker) (*tandem.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logCall(ctx, "check", tandem.GetPath(tx), start, err)
	return res, err
}

// Deliver implements tandem.Decorator.
func (l Logging) Deliver(ctx tandem.Context, db tandem.KVStore, tx tandem.Tx, next tandem.Deliverer) (*tandem.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logCall(ctx, "deliver", tandem.GetPath(tx), start, err)
	return res, err
}

func logCall(ctx tandem.Context, phase, path string, start time.Time, err error) {
	logger := tandem.GetLogger(ctx).With(
		zap.String("phase", phase),
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)),
	)
	if err != nil {
		logger.Info("tx failed",
			zap.Uint32("code", errors.Code(err)),
			zap.Error(err),
		)
		return
	}
	logger.Debug("tx processed")
}
