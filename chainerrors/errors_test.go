package chainerrors_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/go-txcore/chainerrors"
)

func TestErrorCarriesCode(t *testing.T) {
	err := chainerrors.New(chainerrors.CodeStructural, "bad encoding")
	assert.Equal(t, chainerrors.CodeStructural, chainerrors.CodeOf(err))
	assert.True(t, chainerrors.HasCode(err, chainerrors.CodeStructural))
	assert.False(t, chainerrors.HasCode(err, chainerrors.CodeSigning))
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := chainerrors.New(chainerrors.CodeIncompatibleFields, "gas differs")
	wrapped := errors.Wrap(inner, "combine failed")

	typed, ok := chainerrors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, chainerrors.CodeIncompatibleFields, typed.Code)
}

func TestWrapExposesCause(t *testing.T) {
	cause := errors.New("rlp: too few elements")
	err := chainerrors.Wrap(chainerrors.CodeStructural, "invalid encoding", cause)

	assert.ErrorContains(t, err, "invalid encoding")
	assert.ErrorContains(t, err, "rlp: too few elements")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestMissingFieldNamesField(t *testing.T) {
	err := chainerrors.MissingField("gasPrice")
	assert.Equal(t, "gasPrice", err.Field)
	assert.Equal(t, chainerrors.CodeMissingField, err.Code)
	assert.Contains(t, err.Error(), "gasPrice")
}

func TestCodeOfUnknownError(t *testing.T) {
	assert.Equal(t, chainerrors.Code(0), chainerrors.CodeOf(errors.New("plain")))
	assert.Equal(t, chainerrors.Code(0), chainerrors.CodeOf(nil))
}
