package errors

import (
	"fmt"
	"reflect"
)

// SuccessABCICode is the code of a response that carries no error.
const SuccessABCICode = 0

// Errors that were not created from a registered root error are reported
// under code 1 with a fixed log, so that no implementation detail leaks
// to the client.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of the response for err.
//
// With debug set the log carries the full stack trace. Without it,
// internal errors only report "internal error" and a recovered panic
// reports "panic".
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	case code == ErrPanic.code:
		return code, ErrPanic.desc
	default:
		return code, err.Error()
	}
}

// abciCode follows the causes of err until it finds one that knows its
// code.
func abciCode(err error) uint32 {
	type coder interface {
		ABCICode() uint32
	}

	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil also catches a typed nil pointer stored in an error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
