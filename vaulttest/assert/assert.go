// Package assert provides the few assertions the vault tests need when
// pulling in testify is not worth it, mostly inside table tests that run
// against the store test suite.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/vault/errors"
)

// Tester is the part of testing.TB these helpers use.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil or a typed nil. Errors are printed with
// %+v to show their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError fails unless err holds an error of kind want for the named
// field. A nil want asserts that the field has no error at all.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("expected no error, got %q", errs)
		}
		return
	}
	for _, e := range errs {
		if want.Is(e) {
			return
		}
	}
	t.Fatalf("%q field error not found in %+v", want, err)
}
