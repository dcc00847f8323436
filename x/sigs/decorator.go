package sigs

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

// RegisterQuery exposes the signer bucket under /auth, keyed by address.
// Clients use it to learn the next sequence of a key.
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of every SignedTx. A transaction
// without any signature is rejected unless AllowMissingSigs was called.
type Decorator struct {
	allowMissingSigs bool
}

var _ vault.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets unsigned transactions through. Handlers then see
// no signer at all.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate bumps the sequence of every signer in db. The change
// persists even if the message later fails.
func (d Decorator) authenticate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (vault.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(db, stx, vault.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey{}, signers), nil
}

type signersKey struct{}

// Authenticate reports the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns nil outside of a decorated call.
func (Authenticate) GetConditions(ctx vault.Context) []vault.Condition {
	signers, _ := ctx.Value(signersKey{}).([]vault.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
