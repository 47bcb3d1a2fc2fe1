package keyring_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github/chapool/go-txcore/keyring"
)

func TestEmptySignature(t *testing.T) {
	sig := keyring.EmptySignature()
	assert.True(t, sig.IsEmpty())

	real := keyring.NewSignatureData(big.NewInt(27), big.NewInt(5), big.NewInt(9))
	assert.False(t, real.IsEmpty())

	// v=1 alone is not enough; r and s must be zero too.
	almost := keyring.NewSignatureData(big.NewInt(1), big.NewInt(1), big.NewInt(0))
	assert.False(t, almost.IsEmpty())
}

func TestWithChainIDFoldsRecoveryID(t *testing.T) {
	tests := []struct {
		name     string
		v        int64
		chainID  int64
		expected int64
	}{
		{name: "parity zero", v: 0, chainID: 1, expected: 37},
		{name: "parity one", v: 1, chainID: 1, expected: 38},
		{name: "kairos testnet", v: 1, chainID: 1001, expected: 2038},
		{name: "legacy 27 bias normalized", v: 27, chainID: 1, expected: 37},
		{name: "legacy 28 bias normalized", v: 28, chainID: 1, expected: 38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := keyring.NewSignatureData(big.NewInt(tt.v), big.NewInt(3), big.NewInt(4))
			bound := sig.WithChainID(big.NewInt(tt.chainID))
			assert.Equal(t, tt.expected, bound.V.Int64())
			// r and s are untouched by the fold.
			assert.Equal(t, int64(3), bound.R.Int64())
			assert.Equal(t, int64(4), bound.S.Int64())
		})
	}
}

func TestWithChainIDDoesNotMutate(t *testing.T) {
	sig := keyring.NewSignatureData(big.NewInt(1), big.NewInt(3), big.NewInt(4))
	_ = sig.WithChainID(big.NewInt(1001))
	assert.Equal(t, int64(1), sig.V.Int64())
}

func TestSignatureEqualAndCopy(t *testing.T) {
	sig := keyring.NewSignatureData(big.NewInt(37), big.NewInt(3), big.NewInt(4))
	cp := sig.Copy()
	assert.True(t, sig.Equal(cp))

	cp.R.SetInt64(99)
	assert.False(t, sig.Equal(cp))
	assert.Equal(t, int64(3), sig.R.Int64())
}

func TestIsEmptySig(t *testing.T) {
	assert.True(t, keyring.IsEmptySig(nil))
	assert.True(t, keyring.IsEmptySig([]*keyring.SignatureData{keyring.EmptySignature()}))

	real := keyring.NewSignatureData(big.NewInt(37), big.NewInt(3), big.NewInt(4))
	assert.False(t, keyring.IsEmptySig([]*keyring.SignatureData{keyring.EmptySignature(), real}))
}
