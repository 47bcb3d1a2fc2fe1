package keyring_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

func TestDeriveFromSeedIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x5a}, 64)

	first, err := keyring.DeriveFromSeed(seed, keyring.DefaultDerivationPath)
	require.NoError(t, err)
	second, err := keyring.DeriveFromSeed(seed, keyring.DefaultDerivationPath)
	require.NoError(t, err)

	assert.Equal(t, first.Hex(), second.Hex())
	assert.Equal(t, first.Address(), second.Address())
}

func TestDeriveFromSeedPathMatters(t *testing.T) {
	seed := bytes.Repeat([]byte{0x5a}, 64)

	account0, err := keyring.DeriveFromSeed(seed, "m/44'/8217'/0'/0/0")
	require.NoError(t, err)
	account1, err := keyring.DeriveFromSeed(seed, "m/44'/8217'/0'/0/1")
	require.NoError(t, err)
	unhardened, err := keyring.DeriveFromSeed(seed, "m/44/8217/0/0/0")
	require.NoError(t, err)

	assert.NotEqual(t, account0.Hex(), account1.Hex())
	assert.NotEqual(t, account0.Hex(), unhardened.Hex())
}

func TestDeriveFromSeedRejectsBadPaths(t *testing.T) {
	seed := bytes.Repeat([]byte{0x5a}, 64)

	for _, path := range []string{"", "m", "m/", "44'/8217'", "m/44'/x'/0'/0/0"} {
		_, err := keyring.DeriveFromSeed(seed, path)
		require.Error(t, err, "path %q", path)
		assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument), "path %q", path)
	}
}

func TestDeriveFromSeedRejectsOutOfRangeIndices(t *testing.T) {
	seed := bytes.Repeat([]byte{0x5a}, 64)

	// A segment at or above 2^31 must fail rather than wrap into the
	// hardened range and alias a low-index child key.
	for _, path := range []string{"m/2147483648'", "m/2147483648", "m/44'/8217'/0'/0/4294967295"} {
		_, err := keyring.DeriveFromSeed(seed, path)
		require.Error(t, err, "path %q", path)
		assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument), "path %q", path)
	}
}
