package vault

import (
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is what a handler reports after a successful CheckTx.
// Failures are always reported through the error return value.
type CheckResult struct {
	// Data is an opaque value handed back to the client.
	Data []byte
	Log  string
	// GasAllocated is the upper bound of work the transaction may
	// consume when it is delivered.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverResult is what a handler reports after a successful DeliverTx.
type DeliverResult struct {
	// Data is an opaque value handed back to the client, for example
	// the id of a newly created account.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and can be used to search the
	// transaction history.
	Tags []common.KVPair
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data: d.Data,
		Log:  d.Log,
		Tags: d.Tags,
	}
}

// CheckOrError builds the CheckTx response from whichever of the two
// values is set.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverOrError builds the DeliverTx response from whichever of the
// two values is set.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckTxError maps err onto an ABCI code and log. Internal errors are
// redacted unless debug is set.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := txErrorInfo("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// DeliverTxError maps err onto an ABCI code and log. Internal errors are
// redacted unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := txErrorInfo("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func txErrorInfo(stage string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + stage + " tx: " + log
}
