package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches err to a named field of a message or model. Nested
// fields use dot notation, for example "Metadata.Schema". A nil err
// returns nil, which lets validation code collect results with Append
// without branching.
func Field(name string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the field error, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Field() string {
	return e.field
}

// FieldErrors collects the errors reported for the named field anywhere
// inside err.
func FieldErrors(err error, name string) []error {
	type fielder interface {
		Field() string
	}

	var found []error
	for !errIsNil(err) {
		if f, ok := err.(fielder); ok && f.Field() == name {
			return append(found, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				found = append(found, FieldErrors(member, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}
