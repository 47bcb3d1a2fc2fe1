package accountkey

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/chainerrors"
)

const (
	compressedPubkeyLen   = 33
	uncompressedPubkeyLen = 64
)

// Public authorizes an account with a single explicit public key, which
// may differ from the key the account address was derived from.
type Public struct {
	// compressed 33-byte secp256k1 point
	pubkey []byte
}

// NewPublic creates a Public account key from a secp256k1 public key in
// compressed (33-byte) or uncompressed (64-byte, no 0x04 marker, or
// 65-byte) form. The key is validated to be a point on the curve and
// stored compressed.
func NewPublic(pubkey []byte) (*Public, error) {
	compressed, err := normalizePubkey(pubkey)
	if err != nil {
		return nil, err
	}
	return &Public{pubkey: compressed}, nil
}

func normalizePubkey(pubkey []byte) ([]byte, error) {
	switch len(pubkey) {
	case compressedPubkeyLen:
		if _, err := crypto.DecompressPubkey(pubkey); err != nil {
			return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "invalid compressed public key", err)
		}
		out := make([]byte, compressedPubkeyLen)
		copy(out, pubkey)
		return out, nil
	case uncompressedPubkeyLen, uncompressedPubkeyLen + 1:
		raw := pubkey
		if len(raw) == uncompressedPubkeyLen {
			raw = append([]byte{0x04}, raw...)
		}
		key, err := crypto.UnmarshalPubkey(raw)
		if err != nil {
			return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "invalid uncompressed public key", err)
		}
		return crypto.CompressPubkey(key), nil
	default:
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "invalid public key length %d", len(pubkey))
	}
}

func (k *Public) Tag() byte { return TagPublic }

// CompressedPubkey returns the 33-byte compressed public key.
func (k *Public) CompressedPubkey() []byte {
	out := make([]byte, compressedPubkeyLen)
	copy(out, k.pubkey)
	return out
}

func (k *Public) RLP() ([]byte, error) {
	encoded, err := rlp.EncodeToBytes(k.pubkey)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode public account key", err)
	}
	return append([]byte{TagPublic}, encoded...), nil
}

func (k *Public) accountKey() {}

func decodePublic(encoded []byte) (*Public, error) {
	var pubkey []byte
	if err := rlp.DecodeBytes(encoded[1:], &pubkey); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid public account key encoding", err)
	}
	if len(pubkey) != compressedPubkeyLen {
		return nil, chainerrors.Newf(chainerrors.CodeStructural, "public account key must hold a compressed key, got %d bytes", len(pubkey))
	}
	key, err := NewPublic(pubkey)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid public account key encoding", err)
	}
	return key, nil
}
