package vault

import (
	"context"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information every handler runs with. The
// values are set by the application once per block and cannot be
// replaced afterwards.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyBlockTime
	contextKeyChainID
	contextKeyLogger
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight panics when the height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(contextKeyHeight).(int64)
	return h, ok
}

// WithBlockTime stores t in UTC and panics when a block time is already
// set.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := BlockTime(ctx); ok {
		panic("block time already set")
	}
	return context.WithValue(ctx, contextKeyBlockTime, t.UTC())
}

// BlockTime reports false when no block time, or a zero one, was set.
func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// IsExpired is true once the block time reached t. An account expiring
// at t can be withdrawn from and terminated in a block stamped t.
//
// It panics without a block time, since no time gated decision can be
// made safely without one.
func IsExpired(ctx Context, t UnixTime) bool {
	now, ok := BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return AsUnixTime(now) >= t
}

// WithChainID panics when the chain id is already set or malformed.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain ID")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID panics when no chain id was set. Signatures cannot be
// checked without it.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("Chain ID not set")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo adds key value pairs to every line logged from the
// returned context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
