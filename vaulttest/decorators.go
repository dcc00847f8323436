package vaulttest

import "github.com/iov-one/vault"

// calls counts how often a mock was invoked, failed calls included.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int {
	return c.check
}

func (c *calls) DeliverCallCount() int {
	return c.deliver
}

func (c *calls) CallCount() int {
	return c.check + c.deliver
}

// Decorator passes every call on to the next handler unless CheckErr or
// DeliverErr is set, in which case it stops the chain with that error.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ vault.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h with a single decorator, which is all most decorator
// tests need.
func Decorate(h vault.Handler, d vault.Decorator) vault.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   vault.Handler
	decorator vault.Decorator
}

func (d decorated) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
