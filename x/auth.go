package x

import (
	"github.com/iov-one/vault"
)

// Authenticator tells a handler which conditions signed the current
// transaction. Handlers receive it in their constructor so that the
// signature scheme stays pluggable.
type Authenticator interface {
	GetConditions(vault.Context) []vault.Condition
	HasAddress(vault.Context, vault.Address) bool
}

// Authenticators merges the results of several authenticators. The
// conditions of the first entry come first.
type Authenticators []Authenticator

var _ Authenticator = Authenticators(nil)

// ChainAuth is a shorthand for Authenticators{impls...}.
func ChainAuth(impls ...Authenticator) Authenticators {
	return Authenticators(impls)
}

func (as Authenticators) GetConditions(ctx vault.Context) []vault.Condition {
	var conds []vault.Condition
	for _, a := range as {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (as Authenticators) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, a := range as {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition reported by auth, or nil when
// the transaction carries no signature. Account creation treats it as
// the owner.
func MainSigner(ctx vault.Context, auth Authenticator) vault.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// HasAllAddresses is true when every one of the addresses signed.
func HasAllAddresses(ctx vault.Context, auth Authenticator, addrs []vault.Address) bool {
	for _, a := range addrs {
		if !auth.HasAddress(ctx, a) {
			return false
		}
	}
	return true
}
