package savings

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x/ledger"
)

// AccountView is the state of an account together with the values computed
// from the ledger.
type AccountView struct {
	ID          []byte         `json:"id"`
	Address     vault.Address  `json:"address"`
	Owner       vault.Address  `json:"owner"`
	Expiration  vault.UnixTime `json:"expiration"`
	SavedAmount coin.Balance   `json:"saved_amount"`
	Balance     coin.Balance   `json:"balance"`
	Free        coin.Balance   `json:"free"`
}

func (v *AccountView) Marshal() ([]byte, error) {
	return orm.MarshalModel(v)
}

func (v *AccountView) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, v)
}

// ViewQuery returns an AccountView for the account id given as query data.
// Only the key query mod is supported.
type ViewQuery struct {
	bucket  orm.ModelBucket
	control ledger.Controller
}

var _ vault.QueryHandler = (*ViewQuery)(nil)

func NewViewQuery(bucket orm.ModelBucket, control ledger.Controller) *ViewQuery {
	return &ViewQuery{bucket: bucket, control: control}
}

func (q *ViewQuery) Query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	if mod != vault.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
	var acc Account
	switch err := q.bucket.One(db, data, &acc); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}

	account := Load(&viewEnv{db: db, ledger: q.control, id: data}, &acc)
	balance, err := account.GetBalance()
	if err != nil {
		return nil, errors.Wrap(err, "balance")
	}
	free, err := account.Free()
	if err != nil {
		return nil, errors.Wrap(err, "free")
	}
	view := AccountView{
		ID:          data,
		Address:     AccountAddress(data),
		Owner:       acc.Owner,
		Expiration:  account.GetExpiration(),
		SavedAmount: account.AmountStored(),
		Balance:     balance,
		Free:        free,
	}
	raw, err := view.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal view")
	}
	return []vault.Model{vault.Pair(data, raw)}, nil
}

// viewEnv is a read only Environment. There is no caller and no clock, and
// all ledger operations fail.
type viewEnv struct {
	db     vault.ReadOnlyKVStore
	ledger ledger.Controller
	id     []byte
}

var _ Environment = (*viewEnv)(nil)

func (e *viewEnv) Caller() vault.Address {
	return nil
}

func (e *viewEnv) Balance() (coin.Balance, error) {
	return e.ledger.Balance(e.db, AccountAddress(e.id))
}

func (e *viewEnv) MinimumReserve() (coin.Balance, error) {
	return e.ledger.MinimumReserve(e.db)
}

func (e *viewEnv) Now() (vault.UnixTime, error) {
	return 0, errors.Wrap(errors.ErrState, "no clock in a query")
}

func (e *viewEnv) Transfer(vault.Address, coin.Balance) error {
	return errors.Wrap(errors.ErrState, "read only")
}

func (e *viewEnv) TerminateAndFlush(vault.Address) error {
	return errors.Wrap(errors.ErrState, "read only")
}
