// Package accountkey implements the closed set of account authorization
// key schemes. An account's key decides how many and which signatures
// validate it. Each variant owns its canonical RLP encoding, prefixed by a
// one-byte type tag read before dispatching a decode.
package accountkey

import (
	"github/chapool/go-txcore/chainerrors"
)

// Account key type tags as they appear on the wire.
const (
	TagLegacy           byte = 0x01
	TagPublic           byte = 0x02
	TagFail             byte = 0x03
	TagWeightedMultiSig byte = 0x04
	TagRoleBased        byte = 0x05
	TagNil              byte = 0x80
)

// AccountKey is one authorization scheme. The set of implementations is
// closed; the wire format enumerates a fixed set of tags.
type AccountKey interface {
	// Tag returns the scheme's type tag byte.
	Tag() byte
	// RLP returns the canonical tag-prefixed encoding.
	RLP() ([]byte, error)

	accountKey()
}

// Decode dispatches on the leading type byte and decodes the matching
// variant. Input that matches no known tag or layout fails with a
// CodeStructural error, never a silent default.
func Decode(encoded []byte) (AccountKey, error) {
	if len(encoded) == 0 {
		return nil, chainerrors.New(chainerrors.CodeStructural, "empty account key encoding")
	}

	switch encoded[0] {
	case TagLegacy:
		return decodeLegacy(encoded)
	case TagPublic:
		return decodePublic(encoded)
	case TagFail:
		return decodeFail(encoded)
	case TagWeightedMultiSig:
		return decodeWeightedMultiSig(encoded)
	case TagRoleBased:
		return decodeRoleBased(encoded)
	case TagNil:
		return decodeNil(encoded)
	default:
		return nil, chainerrors.Newf(chainerrors.CodeStructural, "unknown account key tag 0x%02x", encoded[0])
	}
}
