package vaulttest

import "github.com/iov-one/vault"

// Handler returns CheckResult and DeliverResult, or the configured
// error, and counts its calls.
type Handler struct {
	calls
	CheckResult   vault.CheckResult
	CheckErr      error
	DeliverResult vault.DeliverResult
	DeliverErr    error
}

var _ vault.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler writes given key/value pair to the store before returning
// the configured error.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ vault.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, h.Err
}

// PanicHandler panics with configured value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ vault.Handler = PanicHandler{}

func (h PanicHandler) Check(vault.Context, vault.KVStore, vault.Tx) (*vault.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(vault.Context, vault.KVStore, vault.Tx) (*vault.DeliverResult, error) {
	panic(h.Value)
}
