package accountkey_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/go-txcore/accountkey"
	"github/chapool/go-txcore/chainerrors"
)

func encodeRoleList(roles [][]byte) ([]byte, error) {
	encoded, err := rlp.EncodeToBytes(roles)
	if err != nil {
		return nil, err
	}
	return append([]byte{0x05}, encoded...), nil
}

func testPubkey(t *testing.T, seed string) []byte {
	t.Helper()
	key, err := crypto.HexToECDSA(seed)
	require.NoError(t, err)
	return crypto.CompressPubkey(&key.PublicKey)
}

func TestLegacyAndFailEncodings(t *testing.T) {
	legacy, err := accountkey.NewLegacy().RLP()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xc0}, legacy)

	fail, err := accountkey.NewFail().RLP()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0xc0}, fail)

	nilKey, err := accountkey.NewNil().RLP()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, nilKey)
}

func TestDecodeRoundtrip(t *testing.T) {
	pub, err := accountkey.NewPublic(testPubkey(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))
	require.NoError(t, err)

	multisig, err := accountkey.NewWeightedMultiSig(2, []accountkey.WeightedPublicKey{
		{Weight: 1, Key: pub},
		{Weight: 2, Key: pub},
	})
	require.NoError(t, err)

	roleBased, err := accountkey.NewRoleBased([]accountkey.AccountKey{
		pub,
		accountkey.NewNil(),
		multisig,
	})
	require.NoError(t, err)

	keys := []accountkey.AccountKey{
		accountkey.NewLegacy(),
		accountkey.NewFail(),
		accountkey.NewNil(),
		pub,
		multisig,
		roleBased,
	}
	for _, key := range keys {
		encoded, err := key.RLP()
		require.NoError(t, err)

		decoded, err := accountkey.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, key.Tag(), decoded.Tag())

		reencoded, err := decoded.RLP()
		require.NoError(t, err)
		assert.Equal(t, encoded, reencoded)
	}
}

func TestDecodePublicKeepsKeyMaterial(t *testing.T) {
	compressed := testPubkey(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	pub, err := accountkey.NewPublic(compressed)
	require.NoError(t, err)

	encoded, err := pub.RLP()
	require.NoError(t, err)

	decoded, err := accountkey.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, compressed, decoded.(*accountkey.Public).CompressedPubkey())
}

func TestNewPublicAcceptsUncompressedForms(t *testing.T) {
	key, err := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	compressed := crypto.CompressPubkey(&key.PublicKey)
	uncompressed := crypto.FromECDSAPub(&key.PublicKey)

	withMarker, err := accountkey.NewPublic(uncompressed)
	require.NoError(t, err)
	assert.Equal(t, compressed, withMarker.CompressedPubkey())

	withoutMarker, err := accountkey.NewPublic(uncompressed[1:])
	require.NoError(t, err)
	assert.Equal(t, compressed, withoutMarker.CompressedPubkey())
}

func TestNewPublicRejectsInvalidKeys(t *testing.T) {
	for _, pubkey := range [][]byte{
		nil,
		make([]byte, 32),
		make([]byte, 33),
		make([]byte, 64),
	} {
		_, err := accountkey.NewPublic(pubkey)
		require.Error(t, err, "length %d", len(pubkey))
		assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))
	}
}

func TestNewWeightedMultiSigValidation(t *testing.T) {
	pub, err := accountkey.NewPublic(testPubkey(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))
	require.NoError(t, err)
	one := []accountkey.WeightedPublicKey{{Weight: 1, Key: pub}}

	_, err = accountkey.NewWeightedMultiSig(0, one)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))

	_, err = accountkey.NewWeightedMultiSig(1, nil)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))

	eleven := make([]accountkey.WeightedPublicKey, 11)
	for i := range eleven {
		eleven[i] = accountkey.WeightedPublicKey{Weight: 1, Key: pub}
	}
	_, err = accountkey.NewWeightedMultiSig(1, eleven)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))

	_, err = accountkey.NewWeightedMultiSig(1, []accountkey.WeightedPublicKey{{Weight: 0, Key: pub}})
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))
}

func TestNewRoleBasedRejectsNesting(t *testing.T) {
	pub, err := accountkey.NewPublic(testPubkey(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))
	require.NoError(t, err)
	inner, err := accountkey.NewRoleBased([]accountkey.AccountKey{pub})
	require.NoError(t, err)

	_, err = accountkey.NewRoleBased([]accountkey.AccountKey{inner})
	require.Error(t, err)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))

	_, err = accountkey.NewRoleBased(nil)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))

	_, err = accountkey.NewRoleBased([]accountkey.AccountKey{pub, pub, pub, pub})
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeInvalidArgument))
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	for _, encoded := range [][]byte{
		nil,
		{0x07, 0xc0},
		{0x01, 0xc1, 0x80},
		{0x03},
		{0x80, 0x00},
	} {
		_, err := accountkey.Decode(encoded)
		require.Error(t, err, "input %x", encoded)
		assert.True(t, chainerrors.HasCode(err, chainerrors.CodeStructural), "input %x", encoded)
	}
}

func TestDecodeRejectsNestedRoleBased(t *testing.T) {
	pub, err := accountkey.NewPublic(testPubkey(t, "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"))
	require.NoError(t, err)
	inner, err := accountkey.NewRoleBased([]accountkey.AccountKey{pub})
	require.NoError(t, err)
	innerEncoded, err := inner.RLP()
	require.NoError(t, err)

	// Hand-build a role-based key embedding another role-based key, which
	// the constructor refuses to produce.
	encoded, err := encodeRoleList([][]byte{innerEncoded})
	require.NoError(t, err)

	_, err = accountkey.Decode(encoded)
	require.Error(t, err)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeStructural))
}
