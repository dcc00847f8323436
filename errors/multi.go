package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided or all of them are nil, nil is returned. A single
// non nil error is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		// Flatten nested groups so that Unpack returns leaf errors.
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, err)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

var _ unpacker = multiErr(nil)

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error, consistent with a fail-fast
// approach.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

// Unpack returns all errors of this group.
func (m multiErr) Unpack() []error {
	return m
}

// unpacker is implemented by errors that are a collection of errors.
type unpacker interface {
	Unpack() []error
}
