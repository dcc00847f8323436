package app

import (
	"reflect"

	"github.com/iov-one/vault"
)

// Decorators is an ordered list of decorators waiting for the handler
// they wrap. The first decorator sees the transaction first.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators []vault.Decorator

// ChainDecorators skips nil entries, which lets optional decorators be
// listed inline.
func ChainDecorators(ds ...vault.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new list with ds appended. The receiver is not
// modified.
func (d Decorators) Chain(ds ...vault.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNilDecorator(d vault.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the chain with h.
func (d Decorators) WithHandler(h vault.Handler) vault.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = link{dec: d[i], next: h}
	}
	return h
}

// link runs one decorator around the rest of the chain.
type link struct {
	dec  vault.Decorator
	next vault.Handler
}

var _ vault.Handler = link{}

func (l link) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
