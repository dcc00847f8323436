package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ResultSet is how a query response carries several keys or several
// values in a single field.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

// Unmarshal accepts no bytes at all as the empty set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	*r = ResultSet{}
	if len(raw) == 0 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, r); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func ResultsFromKeys(models []vault.Model) *ResultSet {
	return collect(models, func(m vault.Model) []byte { return m.Key })
}

func ResultsFromValues(models []vault.Model) *ResultSet {
	return collect(models, func(m vault.Model) []byte { return m.Value })
}

func collect(models []vault.Model, field func(vault.Model) []byte) *ResultSet {
	out := make([][]byte, len(models))
	for i, m := range models {
		out[i] = field(m)
	}
	return &ResultSet{Results: out}
}

// JoinResults pairs the key and value sets of a query response again.
func JoinResults(keys, values *ResultSet) ([]vault.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrap(errors.ErrState, "mismatch result set size")
	}
	models := make([]vault.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = vault.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a result set into o. An
// empty set leaves o untouched and is not an error, so callers check o
// themselves.
func UnmarshalOneResult(raw []byte, o vault.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return o.Unmarshal(set.Results[0])
}
