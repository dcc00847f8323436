package gconf

import (
	"reflect"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
)

// OwnedConfig is a configuration that only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() vault.Address
}

// UpdateConfigurationHandler applies the Patch field of a message to the
// stored configuration of pkg. Zero fields of the patch keep their
// current value, so a patch only lists what changes.
type UpdateConfigurationHandler struct {
	pkg    string
	config OwnedConfig
	auth   x.Authenticator
}

var _ vault.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler uses config only for its type. The
// configuration itself must already be stored, normally from genesis.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{pkg: pkg, config: config, auth: auth}
}

func (h UpdateConfigurationHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.apply(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	conf, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return &vault.DeliverResult{}, nil
}

// apply returns the patched configuration without storing it.
func (h UpdateConfigurationHandler) apply(ctx vault.Context, db vault.KVStore, tx vault.Tx) (OwnedConfig, error) {
	conf := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}
	switch owner := conf.GetOwner(); {
	case owner == nil:
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	case !h.auth.HasAddress(ctx, owner):
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}

	p, err := patchOf(tx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	if reflect.TypeOf(p) != reflect.TypeOf(conf) {
		return nil, errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}
	dst := reflect.ValueOf(conf).Elem()
	src := reflect.ValueOf(p).Elem()
	for i := 0; i < dst.NumField(); i++ {
		if f := src.Field(i); !isZero(f) {
			dst.Field(i).Set(f)
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "patched configuration")
	}
	return conf, nil
}

func isZero(v reflect.Value) bool {
	return reflect.DeepEqual(v.Interface(), reflect.Zero(v.Type()).Interface())
}

// patchOf returns the Patch field of the validated message of tx.
func patchOf(tx vault.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := v.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	p, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return p, nil
}
