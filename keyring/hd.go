package keyring

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"

	"github/chapool/go-txcore/chainerrors"
)

// DefaultDerivationPath is the BIP-44 path of the first account for coin
// type 8217.
const DefaultDerivationPath = "m/44'/8217'/0'/0/0"

// DeriveFromSeed derives a PrivateKey from a binary seed by walking a
// BIP-44 path, e.g. "m/44'/8217'/0'/0/0".
func DeriveFromSeed(seed []byte, path string) (*PrivateKey, error) {
	indices, err := parseDerivationPath(path)
	if err != nil {
		return nil, err
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidKey, "failed to create master key", err)
	}
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, chainerrors.Wrap(chainerrors.CodeInvalidKey, "failed to derive child key", errors.Wrapf(err, "index %d", index))
		}
	}

	return NewPrivateKeyFromBytes(key.Key)
}

// parseDerivationPath parses a BIP-44 path string into child indices, with
// the hardened bit applied to segments ending in an apostrophe.
func parseDerivationPath(path string) ([]uint32, error) {
	rest, ok := strings.CutPrefix(path, "m/")
	if !ok || rest == "" {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "invalid derivation path %q", path)
	}

	parts := strings.Split(rest, "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		// Segment values stay below the hardened bit; indices at or
		// above 2^31 must spell the apostrophe instead.
		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "invalid derivation path segment", err)
		}
		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}
		indices = append(indices, uint32(index))
	}

	return indices, nil
}
