package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	plain := stdlib.New("disk full")

	cases := map[string]struct {
		err  error
		want error
	}{
		"registered":         {err: ErrNotFound, want: ErrNotFound},
		"wrapped registered": {err: Wrap(Wrap(ErrNotFound, "account"), "load"), want: ErrNotFound},
		"wrapped stdlib":     {err: Wrap(plain, "commit"), want: plain},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.want {
				t.Fatalf("want %v cause, got %v", tc.want, got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"same kind":                 {a: ErrNotFound, b: ErrNotFound, wantIs: true},
		"different kind":            {a: ErrNotFound, b: ErrModel},
		"wrapped same kind":         {a: ErrNotFound, b: Wrap(ErrNotFound, "gone"), wantIs: true},
		"wrapped different kind":    {a: ErrNotFound, b: Wrap(ErrModel, "gone")},
		"stdlib error":              {a: ErrNotFound, b: fmt.Errorf("not found")},
		"nil kind and nil error":    {a: nil, b: nil, wantIs: true},
		"nil kind and typed nil":    {a: nil, b: (*customError)(nil), wantIs: true},
		"nil kind and actual error": {a: nil, b: ErrModel},
		"multi error contains the kind": {
			a:      ErrAmount,
			b:      Append(ErrModel, Wrap(ErrAmount, "negative")),
			wantIs: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("want %v, got %v", tc.wantIs, got)
			}
		})
	}
}

type customError struct{}

func (customError) Error() string {
	return "custom error"
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.ABCICode(), "duplicate")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
	if !IsFatal(err) {
		t.Fatal("recovered panic must be fatal")
	}
}

func TestIsFatal(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":               {err: nil, want: false},
		"aborted":           {err: Wrap(ErrAborted, "transfer"), want: true},
		"panic":             {err: ErrPanic, want: true},
		"recoverable error": {err: Wrap(ErrAmount, "zero"), want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := IsFatal(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantCode: ErrNotFound.ABCICode(),
			wantLog:  "not found",
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantCode: ErrNotFound.ABCICode(),
			wantLog:  "bar: foo: not found",
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("cannot connect"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "secret path"),
			wantCode: ErrPanic.ABCICode(),
			wantLog:  "panic",
		},
		"nil is success": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIInfoDebugIncludesStack(t *testing.T) {
	_, log := ABCIInfo(Wrap(ErrNotFound, "lost"), true)
	if !strings.Contains(log, "lost") || !strings.Contains(log, "errors_test.go") {
		t.Fatalf("unexpected debug log: %s", log)
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Owner", ErrEmpty, "required"),
		Field("Amount", ErrAmount, "negative"),
		nil,
	)
	if errs := FieldErrors(err, "Owner"); len(errs) != 1 || !ErrEmpty.Is(errs[0]) {
		t.Fatalf("unexpected owner errors: %v", errs)
	}
	if errs := FieldErrors(err, "Expiration"); len(errs) != 0 {
		t.Fatalf("unexpected expiration errors: %v", errs)
	}
	if Field("Owner", nil, "required") != nil {
		t.Fatal("nil field error must be nil")
	}
}

func TestAppend(t *testing.T) {
	if Append(nil, nil) != nil {
		t.Fatal("want nil")
	}
	if err := Append(nil, ErrEmpty); err != ErrEmpty {
		t.Fatalf("single error must be returned as is, got %v", err)
	}
	err := Append(ErrEmpty, Append(ErrAmount, ErrInput))
	if n := len(err.(multiErr)); n != 3 {
		t.Fatalf("want flat group of 3, got %d", n)
	}
	if code, _ := ABCIInfo(err, false); code != ErrEmpty.ABCICode() {
		t.Fatalf("want first error code, got %d", code)
	}
}
