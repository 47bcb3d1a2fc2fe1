package transaction_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
	"github/chapool/go-txcore/transaction"
)

func TestCombineAdoptsUnsetFields(t *testing.T) {
	senderKey := mustKey(t, senderKeyHex)
	payerKey := mustKey(t, payerKeyHex)

	// A fully bound and co-signed encoding produced by the other parties.
	candidate, err := transaction.NewFeeDelegatedCancel(transaction.FeeDelegatedCancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240", ChainID: "1001",
		From: senderAddress,
	})
	require.NoError(t, err)
	require.NoError(t, candidate.Sign(senderKey))
	require.NoError(t, candidate.SignAsFeePayer(payerKey))
	raw, err := candidate.RawTx()
	require.NoError(t, err)

	// The local view never learned the gas price or the fee payer.
	target, err := transaction.NewFeeDelegatedCancel(transaction.FeeDelegatedCancelParams{
		Nonce: "0x1", Gas: "0xf4240", From: senderAddress,
	})
	require.NoError(t, err)

	merged, mergedRaw, err := transaction.Combine(target, [][]byte{raw})
	require.NoError(t, err)

	mergedFD := merged.(transaction.FeeDelegatedTransaction)
	assert.Equal(t, big.NewInt(0x5d21dba00), merged.GasPrice())
	require.NotNil(t, mergedFD.FeePayer())
	assert.Equal(t, payerKey.Address(), *mergedFD.FeePayer())
	require.Len(t, merged.Signatures(), 1)
	require.Len(t, mergedFD.FeePayerSignatures(), 1)
	assert.True(t, merged.Signatures()[0].Equal(candidate.Signatures()[0]))
	assert.True(t, mergedFD.FeePayerSignatures()[0].Equal(candidate.FeePayerSignatures()[0]))
	assert.Equal(t, raw, mergedRaw)

	// Combine never mutates its input.
	assert.Nil(t, target.GasPrice())
	assert.Nil(t, target.FeePayer())
	assert.Empty(t, target.Signatures())
}

func TestCombineMergesSignatureListsInOrder(t *testing.T) {
	params := transaction.CancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240", From: senderAddress,
	}

	first, err := transaction.NewCancel(params)
	require.NoError(t, err)
	first.AppendSignatures(sigFixture(2037, 10, 11))
	firstRaw, err := first.RawTx()
	require.NoError(t, err)

	second, err := transaction.NewCancel(params)
	require.NoError(t, err)
	second.AppendSignatures(sigFixture(2038, 20, 21))
	secondRaw, err := second.RawTx()
	require.NoError(t, err)

	target, err := transaction.NewCancel(params)
	require.NoError(t, err)

	merged, _, err := transaction.Combine(target, [][]byte{firstRaw, secondRaw})
	require.NoError(t, err)

	require.Len(t, merged.Signatures(), 2)
	assert.True(t, merged.Signatures()[0].Equal(first.Signatures()[0]))
	assert.True(t, merged.Signatures()[1].Equal(second.Signatures()[0]))
}

func TestCombineKeepsPlaceholderWhenNothingContributed(t *testing.T) {
	params := transaction.CancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240", From: senderAddress,
		Signatures: []*keyring.SignatureData{keyring.EmptySignature()},
	}

	candidate, err := transaction.NewCancel(params)
	require.NoError(t, err)
	raw, err := candidate.RawTx()
	require.NoError(t, err)

	target, err := transaction.NewCancel(params)
	require.NoError(t, err)
	targetRaw, err := target.RawTx()
	require.NoError(t, err)

	// A candidate carrying only the unsigned placeholder contributes no
	// signatures, so the merged list keeps its placeholder shape.
	merged, mergedRaw, err := transaction.Combine(target, [][]byte{raw})
	require.NoError(t, err)
	require.Len(t, merged.Signatures(), 1)
	assert.True(t, merged.Signatures()[0].IsEmpty())
	assert.Equal(t, targetRaw, mergedRaw)
}

func TestCombineRejectsDifferentGas(t *testing.T) {
	candidate, err := transaction.NewCancel(transaction.CancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4241", From: senderAddress,
	})
	require.NoError(t, err)
	candidate.AppendSignatures(sigFixture(2037, 10, 11))
	raw, err := candidate.RawTx()
	require.NoError(t, err)

	target, err := transaction.NewCancel(transaction.CancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240", From: senderAddress,
	})
	require.NoError(t, err)

	_, _, err = transaction.Combine(target, [][]byte{raw})
	require.Error(t, err)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeIncompatibleFields))
}

func TestCombineRejectsDifferentType(t *testing.T) {
	candidate, err := transaction.NewValueTransfer(transaction.ValueTransferParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240",
		To: otherAddress, Value: "0xa", From: senderAddress,
	})
	require.NoError(t, err)
	candidate.AppendSignatures(sigFixture(2037, 10, 11))
	raw, err := candidate.RawTx()
	require.NoError(t, err)

	target, err := transaction.NewCancel(transaction.CancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240", From: senderAddress,
	})
	require.NoError(t, err)

	_, _, err = transaction.Combine(target, [][]byte{raw})
	require.Error(t, err)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeIncompatibleType))
}

func TestCombineRejectsDifferentNonceAfterFilling(t *testing.T) {
	candidate, err := transaction.NewCancel(transaction.CancelParams{
		Nonce: "0x2", GasPrice: "0x5d21dba00", Gas: "0xf4240", From: senderAddress,
	})
	require.NoError(t, err)
	candidate.AppendSignatures(sigFixture(2037, 10, 11))
	raw, err := candidate.RawTx()
	require.NoError(t, err)

	target, err := transaction.NewCancel(transaction.CancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240", From: senderAddress,
	})
	require.NoError(t, err)

	_, _, err = transaction.Combine(target, [][]byte{raw})
	require.Error(t, err)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeIncompatibleFields))
}

func TestCombinePropagatesDecodeErrors(t *testing.T) {
	target, err := transaction.NewCancel(transaction.CancelParams{
		Nonce: "0x1", GasPrice: "0x5d21dba00", Gas: "0xf4240", From: senderAddress,
	})
	require.NoError(t, err)

	_, _, err = transaction.Combine(target, [][]byte{{0xff, 0xc0}})
	require.Error(t, err)
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeStructural))
}
