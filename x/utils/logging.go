package utils

import (
	"time"

	"github.com/iov-one/vault"
)

// Logging writes one line per transaction with its path and how long it
// took. Failures are logged at error level. Successful checks are logged
// at debug level and successful deliveries at info level.
type Logging struct{}

var _ vault.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logResult(ctx, tx, start, msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logResult(ctx, tx, start, msg, err, false)
	return res, err
}

// logResult always emits a line, even with an empty message.
func logResult(ctx vault.Context, tx vault.Tx, start time.Time, msg string, err error, check bool) {
	logger := vault.GetLogger(ctx).With(
		"path", vault.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
