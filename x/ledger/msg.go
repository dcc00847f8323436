package ledger

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

const (
	pathSendMsg                = "ledger/send"
	pathUpdateConfigurationMsg = "ledger/update_configuration"

	sendTxCost int64 = 100

	maxMemoSize = 128
)

// SendMsg moves value between two addresses. The source must sign.
type SendMsg struct {
	Metadata    *vault.Metadata `json:"metadata"`
	Source      vault.Address   `json:"source"`
	Destination vault.Address   `json:"destination"`
	Amount      coin.Balance    `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

var _ vault.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !m.Amount.IsPositive() {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return errs
}

// UpdateConfigurationMsg patches the ledger configuration. Zero fields of
// the patch are ignored.
type UpdateConfigurationMsg struct {
	Metadata *vault.Metadata `json:"metadata"`
	Patch    *Configuration  `json:"patch"`
}

var _ vault.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}
