package savings

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/ledger"
)

const (
	createAccountCost   int64 = 300
	spendCost           int64 = 100
	withdrawSavingsCost int64 = 50
	terminateCost       int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator, control ledger.Controller) {
	bucket := NewAccountBucket()
	r.Handle(pathCreateMsg, &CreateHandler{auth: auth, control: control, bucket: bucket})
	r.Handle(pathSpendMsg, &SpendHandler{auth: auth, control: control, bucket: bucket})
	r.Handle(pathWithdrawSavingsMsg, &WithdrawSavingsHandler{auth: auth, control: control, bucket: bucket})
	r.Handle(pathTerminateMsg, &TerminateHandler{auth: auth, control: control, bucket: bucket})
}

// RegisterQuery registers the account bucket as "/savings" (and its owner
// index as "/savings/owner") and the computed account view as
// "/savings/view".
func RegisterQuery(qr vault.QueryRouter) {
	bucket := NewAccountBucket()
	bucket.Register(BucketName, qr)
	qr.Register("/savings/view", NewViewQuery(bucket, ledger.NewController()))
}

// loadAccount returns the stored account with given id, bound to the
// ledger environment of the current transaction.
func loadAccount(
	ctx vault.Context,
	db vault.KVStore,
	auth x.Authenticator,
	control ledger.Controller,
	bucket orm.ModelBucket,
	id []byte,
) (*EscrowAccount, error) {
	var acc Account
	if err := bucket.One(db, id, &acc); err != nil {
		return nil, errors.Wrap(err, "cannot load account")
	}
	env := &ledgerEnv{
		ctx:    ctx,
		db:     db,
		auth:   auth,
		ledger: control,
		bucket: bucket,
		id:     id,
	}
	return Load(env, &acc), nil
}

// CreateHandler creates new accounts. The signer becomes the owner.
type CreateHandler struct {
	auth    x.Authenticator
	control ledger.Controller
	bucket  orm.ModelBucket
}

var _ vault.Handler = (*CreateHandler)(nil)

func (h *CreateHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: createAccountCost}, nil
}

// Deliver stores the new account and moves the deposit, if any, from the
// owner to the account. The id of the new account is returned as data.
func (h *CreateHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	env := &ledgerEnv{
		ctx:    ctx,
		db:     db,
		auth:   h.auth,
		ledger: h.control,
		bucket: h.bucket,
	}
	account := Construct(env, msg.Expiration)
	id, err := h.bucket.Put(db, nil, account.Account())
	if err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	if msg.Deposit.IsPositive() {
		if err := h.control.Transfer(db, owner, AccountAddress(id), msg.Deposit); err != nil {
			return nil, errors.Wrap(err, "deposit")
		}
	}
	return &vault.DeliverResult{Data: id}, nil
}

func (h *CreateHandler) validate(ctx vault.Context, tx vault.Tx) (*CreateMsg, vault.Address, error) {
	var msg CreateMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, signer.Address(), nil
}

// SpendHandler pays from an account. Only the owner may spend.
type SpendHandler struct {
	auth    x.Authenticator
	control ledger.Controller
	bucket  orm.ModelBucket
}

var _ vault.Handler = (*SpendHandler)(nil)

func (h *SpendHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: spendCost}, nil
}

func (h *SpendHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := account.Spend(msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	if _, err := h.bucket.Put(db, msg.AccountID, account.Account()); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	return &vault.DeliverResult{}, nil
}

func (h *SpendHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*SpendMsg, *EscrowAccount, error) {
	var msg SpendMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	account, err := loadAccount(ctx, db, h.auth, h.control, h.bucket, msg.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if owner := account.Account().Owner; !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrapf(ErrCallerIsNotOwner, "owner %s signature missing", owner)
	}
	// The ledger refuses a transfer to the source, which would otherwise
	// surface as an aborted spend.
	if msg.Destination.Equals(AccountAddress(msg.AccountID)) {
		return nil, nil, errors.Field("Destination", errors.ErrInput, "account cannot pay itself")
	}
	return &msg, account, nil
}

// WithdrawSavingsHandler sends the savings of an expired account to the
// owner.
type WithdrawSavingsHandler struct {
	auth    x.Authenticator
	control ledger.Controller
	bucket  orm.ModelBucket
}

var _ vault.Handler = (*WithdrawSavingsHandler)(nil)

// Check ensures the caller may withdraw. Funds are not inspected.
func (h *WithdrawSavingsHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	_, account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := account.authorize(); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: withdrawSavingsCost}, nil
}

func (h *WithdrawSavingsHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := account.WithdrawSavings(); err != nil {
		return nil, err
	}
	if _, err := h.bucket.Put(db, msg.AccountID, account.Account()); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	return &vault.DeliverResult{}, nil
}

func (h *WithdrawSavingsHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*WithdrawSavingsMsg, *EscrowAccount, error) {
	var msg WithdrawSavingsMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	account, err := loadAccount(ctx, db, h.auth, h.control, h.bucket, msg.AccountID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, account, nil
}

// TerminateHandler deletes an expired account. Everything it holds is sent
// to the owner.
type TerminateHandler struct {
	auth    x.Authenticator
	control ledger.Controller
	bucket  orm.ModelBucket
}

var _ vault.Handler = (*TerminateHandler)(nil)

func (h *TerminateHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := account.authorize(); err != nil {
		return nil, err
	}
	return &vault.CheckResult{GasAllocated: terminateCost}, nil
}

// Deliver terminates the account. The ledger environment deletes the
// stored state, so nothing is written back.
func (h *TerminateHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := account.Terminate(); err != nil {
		return nil, err
	}
	return &vault.DeliverResult{}, nil
}

func (h *TerminateHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*EscrowAccount, error) {
	var msg TerminateMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return loadAccount(ctx, db, h.auth, h.control, h.bucket, msg.AccountID)
}
