package accountkey

import (
	"bytes"

	"github/chapool/go-txcore/chainerrors"
)

// legacyRLP is the fixed encoding of a legacy key: the type tag followed by
// an empty RLP list.
var legacyRLP = []byte{TagLegacy, 0xc0}

// Legacy marks an account validated by plain ECDSA signature recovery, as
// in a standard single-key account: recover the public key from the
// transaction hash and signature, derive its address, and that address is
// the sender. It carries no key material.
type Legacy struct{}

// NewLegacy creates a Legacy account key.
func NewLegacy() *Legacy { return &Legacy{} }

func (k *Legacy) Tag() byte { return TagLegacy }

func (k *Legacy) RLP() ([]byte, error) {
	return bytes.Clone(legacyRLP), nil
}

func (k *Legacy) accountKey() {}

func decodeLegacy(encoded []byte) (*Legacy, error) {
	if !bytes.Equal(encoded, legacyRLP) {
		return nil, chainerrors.New(chainerrors.CodeStructural, "invalid legacy account key encoding")
	}
	return NewLegacy(), nil
}
