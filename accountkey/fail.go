package accountkey

import (
	"bytes"

	"github/chapool/go-txcore/chainerrors"
)

var failRLP = []byte{TagFail, 0xc0}

// Fail marks an account for which transaction validation always fails.
// It is used for accounts that must never act as a sender, such as pure
// fee-payer contracts.
type Fail struct{}

// NewFail creates a Fail account key.
func NewFail() *Fail { return &Fail{} }

func (k *Fail) Tag() byte { return TagFail }

func (k *Fail) RLP() ([]byte, error) {
	return bytes.Clone(failRLP), nil
}

func (k *Fail) accountKey() {}

func decodeFail(encoded []byte) (*Fail, error) {
	if !bytes.Equal(encoded, failRLP) {
		return nil, chainerrors.New(chainerrors.CodeStructural, "invalid fail account key encoding")
	}
	return NewFail(), nil
}
