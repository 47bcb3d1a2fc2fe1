package keyring

import (
	"crypto/ecdsa"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github/chapool/go-txcore/chainerrors"
)

const privateKeyHexLen = 64

// PrivateKey wraps a secp256k1 private scalar and produces the signatures
// a network node verifies.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// NewPrivateKey creates a PrivateKey from a hex string, with or without the
// 0x prefix. Invalid hex, a wrong length or an out-of-range scalar fail
// with a CodeInvalidKey error; invalid state is never stored.
func NewPrivateKey(hexKey string) (*PrivateKey, error) {
	trimmed := strings.TrimPrefix(hexKey, "0x")
	if len(trimmed) != privateKeyHexLen {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidKey, "invalid private key length: %d hex chars", len(trimmed))
	}

	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidKey, "invalid private key", err)
	}

	return &PrivateKey{key: key}, nil
}

// NewPrivateKeyFromBytes creates a PrivateKey from a 32-byte scalar.
func NewPrivateKeyFromBytes(raw []byte) (*PrivateKey, error) {
	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidKey, "invalid private key", err)
	}
	return &PrivateKey{key: key}, nil
}

// GenerateKey creates a new random PrivateKey. Caller-supplied entropy is
// mixed with fresh randomness through two rounds of hashing so a single
// weak randomness source cannot fully determine the key:
//
//	inner = keccak256(rand32 || entropy)
//	key   = keccak256(rand32 || inner || rand32)
//
// entropy may be nil, in which case a third random draw takes its place.
// Generation retries until the result is a valid scalar.
func GenerateKey(entropy []byte) (*PrivateKey, error) {
	for {
		first, err := randomBytes(32)
		if err != nil {
			return nil, err
		}

		mixin := entropy
		if len(mixin) == 0 {
			mixin, err = randomBytes(32)
			if err != nil {
				return nil, err
			}
		}
		inner := crypto.Keccak256(first, mixin)

		left, err := randomBytes(32)
		if err != nil {
			return nil, err
		}
		right, err := randomBytes(32)
		if err != nil {
			return nil, err
		}
		seed := crypto.Keccak256(left, inner, right)

		key, err := crypto.ToECDSA(seed)
		if err != nil {
			// Out-of-range scalar, vanishingly rare. Draw again.
			continue
		}
		return &PrivateKey{key: key}, nil
	}
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to read random bytes")
	}
	return buf, nil
}

// Sign ECDSA-signs a 32-byte digest and folds the recovery id into the
// chain-bound v form for replay protection. The input is assumed to be a
// digest already; no hashing is performed here.
func (p *PrivateKey) Sign(hash []byte, chainID *big.Int) (*SignatureData, error) {
	if chainID == nil {
		return nil, chainerrors.MissingField("chainId")
	}
	sig, err := p.ECSign(hash)
	if err != nil {
		return nil, err
	}
	return sig.WithChainID(chainID), nil
}

// ECSign ECDSA-signs a 32-byte digest and returns the raw parity (0 or 1)
// of the signature as v, without chain binding.
func (p *PrivateKey) ECSign(hash []byte) (*SignatureData, error) {
	if len(hash) != common.HashLength {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "hash must be %d bytes, got %d", common.HashLength, len(hash))
	}

	sig, err := crypto.Sign(hash, p.key)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeSigning, "failed to sign hash", err)
	}

	// crypto.Sign returns [R || S || V] with V already a bare recovery id
	// (0 or 1), unlike signers that bias it by 27.
	return &SignatureData{
		V: new(big.Int).SetUint64(uint64(sig[64])),
		R: new(big.Int).SetBytes(sig[:32]),
		S: new(big.Int).SetBytes(sig[32:64]),
	}, nil
}

// PublicKey returns the public key derived from the private scalar: the
// 64-byte uncompressed point, or the 33-byte compressed form.
func (p *PrivateKey) PublicKey(compressed bool) []byte {
	if compressed {
		return crypto.CompressPubkey(&p.key.PublicKey)
	}
	// Strip the 0x04 uncompressed-point marker.
	return crypto.FromECDSAPub(&p.key.PublicKey)[1:]
}

// Address returns the account address derived from the public key, the low
// 20 bytes of keccak256(uncompressed public key).
func (p *PrivateKey) Address() common.Address {
	return crypto.PubkeyToAddress(p.key.PublicKey)
}

// Hex returns the 0x-prefixed hex form of the private scalar.
func (p *PrivateKey) Hex() string {
	return hexutil.Encode(crypto.FromECDSA(p.key))
}

// Bytes returns the 32-byte private scalar.
func (p *PrivateKey) Bytes() []byte {
	return crypto.FromECDSA(p.key)
}
