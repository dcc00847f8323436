package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/vaulttest"
)

func TestSendHandler(t *testing.T) {
	alice := vaulttest.NewCondition()
	bob := vaulttest.NewCondition()

	cases := map[string]struct {
		signer      vault.Condition
		msg         vault.Msg
		wantCheck   *errors.Error
		wantDeliver *errors.Error
		wantBob     coin.Balance
	}{
		"successful send": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &vault.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      500,
			},
			wantBob: 500,
		},
		"source must sign": {
			signer: bob,
			msg: &SendMsg{
				Metadata:    &vault.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      500,
			},
			wantCheck:   errors.ErrUnauthorized,
			wantDeliver: errors.ErrUnauthorized,
		},
		"invalid message": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &vault.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
			},
			wantCheck:   errors.ErrAmount,
			wantDeliver: errors.ErrAmount,
		},
		"insufficient funds fail on deliver": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &vault.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      5000,
			},
			wantDeliver: ErrInsufficientBalance,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newStore(t, 100)
			control := NewController()
			require.NoError(t, control.Issue(db, alice.Address(), 1000))

			auth := &vaulttest.Auth{Signer: tc.signer}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, control)

			tx := &vaulttest.Tx{Msg: tc.msg}
			ctx := context.Background()

			cache := db.CacheWrap()
			if _, err := rt.Check(ctx, cache, tx); !tc.wantCheck.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := rt.Deliver(ctx, db, tx); !tc.wantDeliver.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			got, err := control.Balance(db, bob.Address())
			require.NoError(t, err)
			require.Equal(t, tc.wantBob, got)
		})
	}
}

func TestSendHandlerRejectsOtherMessages(t *testing.T) {
	alice := vaulttest.NewCondition()
	db := newStore(t, 100)
	control := NewController()
	require.NoError(t, control.Issue(db, alice.Address(), 1000))

	h := NewSendHandler(&vaulttest.Auth{Signer: alice}, control)
	tx := &vaulttest.Tx{Msg: &UpdateConfigurationMsg{
		Metadata: &vault.Metadata{Schema: 1},
		Patch:    &Configuration{},
	}}

	_, err := h.Check(context.Background(), db.CacheWrap(), tx)
	require.True(t, errors.ErrType.Is(err), "got %+v", err)
	_, err = h.Deliver(context.Background(), db, tx)
	require.True(t, errors.ErrType.Is(err), "got %+v", err)

	got, err := control.Balance(db, alice.Address())
	require.NoError(t, err)
	require.Equal(t, coin.Balance(1000), got)
}

func TestUpdateConfiguration(t *testing.T) {
	owner := vaulttest.NewCondition()
	db := newStore(t, 100)
	conf := Configuration{
		Metadata:       &vault.Metadata{Schema: 1},
		Owner:          owner.Address(),
		MinimumReserve: 100,
	}
	require.NoError(t, conf.Validate())
	require.NoError(t, gconf.Save(db, confPkg, &conf))

	h := NewConfigHandler(&vaulttest.Auth{Signer: owner})
	msg := &UpdateConfigurationMsg{
		Metadata: &vault.Metadata{Schema: 1},
		Patch:    &Configuration{MinimumReserve: 7},
	}
	_, err := h.Deliver(context.Background(), db, &vaulttest.Tx{Msg: msg})
	require.NoError(t, err)

	reserve, err := NewController().MinimumReserve(db)
	require.NoError(t, err)
	require.Equal(t, coin.Balance(7), reserve)

	h = NewConfigHandler(&vaulttest.Auth{Signer: vaulttest.NewCondition()})
	_, err = h.Deliver(context.Background(), db, &vaulttest.Tx{Msg: msg})
	require.True(t, errors.ErrUnauthorized.Is(err))
}
