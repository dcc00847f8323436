package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/vault/vaulttest/assert"
)

func TestEd25519Signing(t *testing.T) {
	owner := GenPrivKeyEd25519()
	other := GenPrivKeyEd25519()
	spend := []byte("spend 100 to alice")
	withdraw := []byte("withdraw savings")

	spendSig, err := owner.Sign(spend)
	assert.Nil(t, err)
	withdrawSig, err := owner.Sign(withdraw)
	assert.Nil(t, err)

	cases := map[string]struct {
		key  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"signer and message match": {key: owner.PublicKey(), msg: spend, sig: spendSig, want: true},
		"second message":           {key: owner.PublicKey(), msg: withdraw, sig: withdrawSig, want: true},
		"signature of another msg": {key: owner.PublicKey(), msg: spend, sig: withdrawSig},
		"foreign key":              {key: other.PublicKey(), msg: spend, sig: spendSig},
		"empty signature":          {key: owner.PublicKey(), msg: spend, sig: &Signature{}},
		"nil signature":            {key: owner.PublicKey(), msg: spend},
		"empty key":                {key: &PublicKey{}, msg: spend, sig: spendSig},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.key.Verify(tc.msg, tc.sig); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSignatureSerialization(t *testing.T) {
	key := GenPrivKeyEd25519()
	a, err := key.Sign([]byte("first"))
	assert.Nil(t, err)
	b, err := key.Sign([]byte("second"))
	assert.Nil(t, err)

	rawA, err := a.Marshal()
	assert.Nil(t, err)
	rawB, err := b.Marshal()
	assert.Nil(t, err)
	if bytes.Equal(rawA, rawB) {
		t.Fatal("distinct signatures serialized to the same bytes")
	}

	var back Signature
	assert.Nil(t, back.Unmarshal(rawA))
	assert.Equal(t, a.Ed25519, back.Ed25519)
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, pub.Validate())
	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub.Address().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("two different keys produced the same condition")
	}
	if pub.Address().Equals(pub2.Address()) {
		t.Fatal("two different keys produced the same address")
	}

	empty := PublicKey{}
	if empty.Condition() != nil {
		t.Fatal("empty key must not produce a condition")
	}
	if err := empty.Validate(); err == nil {
		t.Fatal("empty key must not be valid")
	}
}

func TestEd25519FromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())

	raw, err := a.Marshal()
	assert.Nil(t, err)
	var back PrivateKey
	assert.Nil(t, back.Unmarshal(raw))
	assert.Equal(t, a.Ed25519, back.Ed25519)

	if _, err := (&PrivateKey{}).Sign([]byte("x")); err == nil {
		t.Fatal("empty key must not sign")
	}
}
