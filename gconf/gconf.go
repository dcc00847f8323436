package gconf

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// ReadStore and Store are the parts of the key value store this package
// touches, which keeps it usable with a plain map in tests.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is the singleton settings object of one extension, for
// example the reserve and fee rate of the ledger.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// confKey returns the store key of the configuration of pkg.
func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save refuses to store an invalid configuration.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := confKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load fails with ErrNotFound when pkg was never configured.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := confKey(pkg)
	raw, err := db.Get(key)
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	return errors.Wrapf(dst.Unmarshal(raw), "unmarshal: key %q", key)
}

// InitConfig saves the genesis section conf.<pkg>. Every extension that
// calls it requires the section to be present.
func InitConfig(db Store, opts vault.Options, pkg string, conf Configuration) error {
	var sections vault.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	return errors.Wrapf(Save(db, pkg, conf), "save configuration for %s", pkg)
}
