package utils

import (
	"context"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
)

// accountMsg is a message bound to a single account.
type accountMsg struct {
	vaulttest.Msg
	id []byte
}

func (m *accountMsg) AccountRef() []byte {
	return m.id
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		tx       *vaulttest.Tx
		handler  *vaulttest.Handler
		wantErr  *errors.Error
		wantTags map[string]string
	}{
		"path tag on success": {
			tx:       &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "savings/create"}},
			handler:  &vaulttest.Handler{},
			wantTags: map[string]string{ActionKey: "savings/create"},
		},
		"account messages are tagged with the id": {
			tx: &vaulttest.Tx{Msg: &accountMsg{
				Msg: vaulttest.Msg{RoutePath: "savings/spend"},
				id:  []byte{0, 0, 0, 0, 0, 0, 0, 7},
			}},
			handler: &vaulttest.Handler{},
			wantTags: map[string]string{
				ActionKey:  "savings/spend",
				AccountKey: "0000000000000007",
			},
		},
		"empty account id is not tagged": {
			tx:       &vaulttest.Tx{Msg: &accountMsg{Msg: vaulttest.Msg{RoutePath: "savings/spend"}}},
			handler:  &vaulttest.Handler{},
			wantTags: map[string]string{ActionKey: "savings/spend"},
		},
		"no tag on handler failure": {
			tx:      &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "savings/spend"}},
			handler: &vaulttest.Handler{DeliverErr: errors.ErrInput},
			wantErr: errors.ErrInput,
		},
		"broken message is not dispatched": {
			tx:      &vaulttest.Tx{Err: errors.ErrMsg},
			handler: &vaulttest.Handler{},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := vaulttest.Decorate(tc.handler, NewActionTagger())
			res, err := h.Deliver(context.Background(), store.MemStore(), tc.tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			got := make(map[string]string)
			for _, tag := range res.Tags {
				got[string(tag.Key)] = string(tag.Value)
			}
			assert.Equal(t, tc.wantTags, got)
		})
	}
}
