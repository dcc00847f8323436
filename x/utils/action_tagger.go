package utils

import (
	"encoding/hex"

	"github.com/iov-one/vault"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags a delivered transaction with its message path, for
	// example action=savings/terminate.
	ActionKey = "action"
	// AccountKey tags messages addressed to a single account with the hex
	// encoded account id.
	AccountKey = "account"
)

// AccountRef is implemented by messages that operate on one stored
// account.
type AccountRef interface {
	AccountRef() []byte
}

// ActionTagger labels successfully delivered transactions so that clients
// can subscribe to one kind of operation, or to everything that happened
// to one account. Check results are never tagged.
type ActionTagger struct{}

var _ vault.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, actionTags(msg)...)
	return res, nil
}

func actionTags(msg vault.Msg) []common.KVPair {
	tags := []common.KVPair{{Key: []byte(ActionKey), Value: []byte(msg.Path())}}
	if ref, ok := msg.(AccountRef); ok && len(ref.AccountRef()) > 0 {
		id := hex.EncodeToString(ref.AccountRef())
		tags = append(tags, common.KVPair{Key: []byte(AccountKey), Value: []byte(id)})
	}
	return tags
}
