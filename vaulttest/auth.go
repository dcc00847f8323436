package vaulttest

import (
	"context"

	"github.com/iov-one/vault"
)

// Auth authenticates a fixed set of conditions, Signers followed by
// Signer when it is set.
type Auth struct {
	Signer  vault.Condition
	Signers []vault.Condition
}

func (a *Auth) GetConditions(vault.Context) []vault.Condition {
	conds := append([]vault.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth reads the conditions stored in the context by SetConditions,
// which lets a single test authenticate different signers per call.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a CtxAuth) SetConditions(ctx vault.Context, conds ...vault.Condition) vault.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a CtxAuth) GetConditions(ctx vault.Context) []vault.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]vault.Condition)
	return conds
}

func (a CtxAuth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []vault.Condition, addr vault.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
