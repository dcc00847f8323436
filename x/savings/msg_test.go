package savings

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/iov-one/vault/x/utils"
)

var (
	_ utils.AccountRef = (*SpendMsg)(nil)
	_ utils.AccountRef = (*WithdrawSavingsMsg)(nil)
	_ utils.AccountRef = (*TerminateMsg)(nil)
)

func TestMsgValidate(t *testing.T) {
	addr := vaulttest.NewCondition().Address()

	cases := map[string]struct {
		msg     vault.Msg
		wantErr *errors.Error
	}{
		"valid create": {
			msg: &CreateMsg{Metadata: &vault.Metadata{Schema: 1}, Expiration: 10},
		},
		"create without metadata": {
			msg:     &CreateMsg{Expiration: 10},
			wantErr: errors.ErrMetadata,
		},
		"create with a negative expiration": {
			msg:     &CreateMsg{Metadata: &vault.Metadata{Schema: 1}, Expiration: -1},
			wantErr: errors.ErrState,
		},
		"valid spend": {
			msg: &SpendMsg{
				Metadata:    &vault.Metadata{Schema: 1},
				AccountID:   vaulttest.SequenceID(1),
				Destination: addr,
				Amount:      1,
			},
		},
		"spend of nothing": {
			msg: &SpendMsg{
				Metadata:    &vault.Metadata{Schema: 1},
				AccountID:   vaulttest.SequenceID(1),
				Destination: addr,
			},
			wantErr: errors.ErrAmount,
		},
		"spend without destination": {
			msg: &SpendMsg{
				Metadata:  &vault.Metadata{Schema: 1},
				AccountID: vaulttest.SequenceID(1),
				Amount:    1,
			},
			wantErr: errors.ErrInput,
		},
		"spend with a malformed id": {
			msg: &SpendMsg{
				Metadata:    &vault.Metadata{Schema: 1},
				AccountID:   []byte("abc"),
				Destination: addr,
				Amount:      1,
			},
			wantErr: errors.ErrInput,
		},
		"valid withdraw": {
			msg: &WithdrawSavingsMsg{Metadata: &vault.Metadata{Schema: 1}, AccountID: vaulttest.SequenceID(3)},
		},
		"withdraw without id": {
			msg:     &WithdrawSavingsMsg{Metadata: &vault.Metadata{Schema: 1}},
			wantErr: errors.ErrEmpty,
		},
		"valid terminate": {
			msg: &TerminateMsg{Metadata: &vault.Metadata{Schema: 1}, AccountID: vaulttest.SequenceID(3)},
		},
		"terminate without metadata": {
			msg:     &TerminateMsg{AccountID: vaulttest.SequenceID(3)},
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}

func TestSpendMsgFieldErrors(t *testing.T) {
	msg := &SpendMsg{
		Metadata:  &vault.Metadata{Schema: 1},
		AccountID: []byte("abc"),
	}
	err := msg.Validate()
	assert.FieldError(t, err, "Metadata", nil)
	assert.FieldError(t, err, "AccountID", errors.ErrInput)
	assert.FieldError(t, err, "Destination", errors.ErrInput)
	assert.FieldError(t, err, "Amount", errors.ErrAmount)
}
