package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes 100 and above belong to
// extensions.
var (
	// ErrUnauthorized means a required signature is missing.
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg means the transaction carries no message or an unknown one.
	ErrMsg   = Register(4, "invalid message")
	ErrModel = Register(5, "invalid model")
	// ErrDuplicate means a unique key or index value is already taken.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks a code path that correct wiring never reaches.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	// ErrState means the entity cannot accept the operation in its
	// current state, for example a terminated account.
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrExpired            = Register(15, "expired")
	ErrOverflow           = Register(16, "an operation cannot be completed due to value overflow")

	// ErrAborted is returned when the ledger could not honor a state
	// transition that was already judged valid. The whole transaction must
	// be rolled back.
	ErrAborted = Register(17, "transaction aborted")

	ErrDatabase = Register(18, "database")
	// ErrIteratorDone ends every iteration.
	ErrIteratorDone = Register(19, "iterator done")
	ErrMetadata     = Register(20, "invalid metadata")

	// ErrPanic is only produced by Recover. Its message is never shown to
	// clients.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error under an ABCI code. Extensions call it
// from package level var blocks. A code can only be claimed once and a
// second claim panics.
func Register(code uint32, description string) *Error {
	if prev, ok := registered[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// registered maps every claimed code to its root error. Code 1 is
// reserved for errors that were never registered.
var registered = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: "internal"},
}

// Error is a root error. Errors created at runtime wrap one of them, so
// that the client receives a stable code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is kind or wraps it. A group built by Append
// matches when any of its members does. A nil kind only matches a nil
// error.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				if kind.Is(member) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds a description in front of err. The innermost wrap records a
// stack trace. Wrapping nil returns nil, so the result of a call can be
// wrapped without checking it first.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the stack trace of the innermost error for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover must be deferred. It turns a panic into an ErrPanic assigned
// to *err.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// IsFatal is true for a recovered panic and for an aborted state
// transition. Such a transaction is rolled back and never retried.
func IsFatal(err error) bool {
	return ErrPanic.Is(err) || ErrAborted.Is(err)
}

type causer interface {
	Cause() error
}

// stackTrace returns the first stack trace found while following causes.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil
}
