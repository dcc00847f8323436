package savings

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	amino "github.com/tendermint/go-amino"
)

const (
	pathCreateMsg          = "savings/create"
	pathSpendMsg           = "savings/spend"
	pathWithdrawSavingsMsg = "savings/withdraw"
	pathTerminateMsg       = "savings/terminate"
)

// RegisterCodec registers the messages of this package, so they can be
// carried by a transaction.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&CreateMsg{}, "savings/CreateMsg", nil)
	cdc.RegisterConcrete(&SpendMsg{}, "savings/SpendMsg", nil)
	cdc.RegisterConcrete(&WithdrawSavingsMsg{}, "savings/WithdrawSavingsMsg", nil)
	cdc.RegisterConcrete(&TerminateMsg{}, "savings/TerminateMsg", nil)
}

// CreateMsg creates a new account owned by the signer. The optional deposit
// is moved from the signer to the account.
type CreateMsg struct {
	Metadata   *vault.Metadata `json:"metadata"`
	Expiration vault.UnixTime  `json:"expiration"`
	Deposit    coin.Balance    `json:"deposit,omitempty"`
}

var _ vault.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Expiration", m.Expiration.Validate())
	return errs
}

// SpendMsg pays from an account. The fee is withheld as savings.
type SpendMsg struct {
	Metadata    *vault.Metadata `json:"metadata"`
	AccountID   []byte          `json:"account_id"`
	Destination vault.Address   `json:"destination"`
	Amount      coin.Balance    `json:"amount"`
}

var _ vault.Msg = (*SpendMsg)(nil)

func (SpendMsg) Path() string {
	return pathSpendMsg
}

// AccountRef lets the action tagger index the transaction by account.
func (m *SpendMsg) AccountRef() []byte {
	return m.AccountID
}

func (m *SpendMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *SpendMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *SpendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AccountID", orm.ValidateSequence(m.AccountID))
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if !m.Amount.IsPositive() {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	return errs
}

// WithdrawSavingsMsg sends the savings of an expired account to its owner.
type WithdrawSavingsMsg struct {
	Metadata  *vault.Metadata `json:"metadata"`
	AccountID []byte          `json:"account_id"`
}

var _ vault.Msg = (*WithdrawSavingsMsg)(nil)

func (WithdrawSavingsMsg) Path() string {
	return pathWithdrawSavingsMsg
}

func (m *WithdrawSavingsMsg) AccountRef() []byte {
	return m.AccountID
}

func (m *WithdrawSavingsMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *WithdrawSavingsMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *WithdrawSavingsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AccountID", orm.ValidateSequence(m.AccountID))
	return errs
}

// TerminateMsg deletes an expired account and sends everything it holds to
// its owner.
type TerminateMsg struct {
	Metadata  *vault.Metadata `json:"metadata"`
	AccountID []byte          `json:"account_id"`
}

var _ vault.Msg = (*TerminateMsg)(nil)

func (TerminateMsg) Path() string {
	return pathTerminateMsg
}

func (m *TerminateMsg) AccountRef() []byte {
	return m.AccountID
}

func (m *TerminateMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *TerminateMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *TerminateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "AccountID", orm.ValidateSequence(m.AccountID))
	return errs
}
