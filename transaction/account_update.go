package transaction

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/accountkey"
	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// AccountUpdateParams configures an AccountUpdate transaction.
type AccountUpdateParams struct {
	Nonce      string
	GasPrice   string
	Gas        string
	ChainID    string
	From       string
	Key        accountkey.AccountKey
	Signatures []*keyring.SignatureData
}

// AccountUpdate replaces the sender account's authorization key.
//
// Wire format: 0x20 ++ rlp([nonce, gasPrice, gas, from, rlp(accountKey),
// txSignatures]).
type AccountUpdate struct {
	txBase
	key accountkey.AccountKey
}

var _ Transaction = (*AccountUpdate)(nil)

// NewAccountUpdate creates an AccountUpdate transaction, validating every
// given field.
func NewAccountUpdate(params AccountUpdateParams) (*AccountUpdate, error) {
	base, err := newTxBase(TxTypeAccountUpdate, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures)
	if err != nil {
		return nil, err
	}
	return &AccountUpdate{txBase: base, key: params.Key}, nil
}

// Key returns the account key the update installs, or nil while unset.
func (t *AccountUpdate) Key() accountkey.AccountKey { return t.key }

// SetKey replaces the account key the update installs.
func (t *AccountUpdate) SetKey(key accountkey.AccountKey) {
	t.key = key
}

func (t *AccountUpdate) encodeFields() ([]interface{}, error) {
	return accountUpdateFields(&t.txBase, t.key)
}

func accountUpdateFields(base *txBase, key accountkey.AccountKey) ([]interface{}, error) {
	if err := base.requireBaseFields(); err != nil {
		return nil, err
	}
	if key == nil {
		return nil, chainerrors.MissingField("key")
	}
	encodedKey, err := key.RLP()
	if err != nil {
		return nil, err
	}
	return []interface{}{base.nonce, base.gasPrice, base.gas, *base.from, encodedKey}, nil
}

// accountKeysEqual compares two account keys by canonical encoding.
func accountKeysEqual(a, b accountkey.AccountKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	encodedA, errA := a.RLP()
	encodedB, errB := b.RLP()
	return errA == nil && errB == nil && bytes.Equal(encodedA, encodedB)
}

func (t *AccountUpdate) RawTx() ([]byte, error)             { return encodeRawTx(t) }
func (t *AccountUpdate) TxHash() (common.Hash, error)       { return txHash(t) }
func (t *AccountUpdate) SenderTxHash() (common.Hash, error) { return senderTxHash(t) }
func (t *AccountUpdate) SigRLP() ([]byte, error)            { return senderSigRLP(t) }

func (t *AccountUpdate) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *AccountUpdate) Sign(key *keyring.PrivateKey) error { return signSender(t, key) }

func (t *AccountUpdate) copyTx() Transaction {
	return &AccountUpdate{txBase: t.copyBase(), key: t.key}
}

func (t *AccountUpdate) equalFields(other Transaction) bool {
	o, ok := other.(*AccountUpdate)
	return ok && t.equalBase(&o.txBase) && accountKeysEqual(t.key, o.key)
}

type accountUpdateRLP struct {
	Nonce      *big.Int
	GasPrice   *big.Int
	Gas        *big.Int
	From       common.Address
	Key        []byte
	Signatures []*keyring.SignatureData
}

func decodeAccountUpdate(payload []byte) (*AccountUpdate, error) {
	var dec accountUpdateRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeAccountUpdate encoding", err)
	}
	key, err := accountkey.Decode(dec.Key)
	if err != nil {
		return nil, err
	}
	from := dec.From
	return &AccountUpdate{
		txBase: txBase{
			txType:   TxTypeAccountUpdate,
			nonce:    dec.Nonce,
			gasPrice: dec.GasPrice,
			gas:      dec.Gas,
			from:     &from,
			sigs:     dec.Signatures,
		},
		key: key,
	}, nil
}

// FeeDelegatedAccountUpdateParams configures a FeeDelegatedAccountUpdate
// transaction.
type FeeDelegatedAccountUpdateParams struct {
	Nonce              string
	GasPrice           string
	Gas                string
	ChainID            string
	From               string
	Key                accountkey.AccountKey
	FeePayer           string
	Signatures         []*keyring.SignatureData
	FeePayerSignatures []*keyring.SignatureData
}

// FeeDelegatedAccountUpdate is an AccountUpdate whose gas is paid by a
// co-signing fee payer.
//
// Wire format: 0x21 ++ rlp([nonce, gasPrice, gas, from, rlp(accountKey),
// txSignatures, feePayer, feePayerSignatures]).
type FeeDelegatedAccountUpdate struct {
	feeDelegatedBase
	key accountkey.AccountKey
}

var _ FeeDelegatedTransaction = (*FeeDelegatedAccountUpdate)(nil)

// NewFeeDelegatedAccountUpdate creates a FeeDelegatedAccountUpdate
// transaction, validating every given field.
func NewFeeDelegatedAccountUpdate(params FeeDelegatedAccountUpdateParams) (*FeeDelegatedAccountUpdate, error) {
	base, err := newFeeDelegatedBase(TxTypeFeeDelegatedAccountUpdate, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures, params.FeePayer, params.FeePayerSignatures)
	if err != nil {
		return nil, err
	}
	return &FeeDelegatedAccountUpdate{feeDelegatedBase: base, key: params.Key}, nil
}

// Key returns the account key the update installs, or nil while unset.
func (t *FeeDelegatedAccountUpdate) Key() accountkey.AccountKey { return t.key }

// SetKey replaces the account key the update installs.
func (t *FeeDelegatedAccountUpdate) SetKey(key accountkey.AccountKey) {
	t.key = key
}

func (t *FeeDelegatedAccountUpdate) encodeFields() ([]interface{}, error) {
	return accountUpdateFields(&t.txBase, t.key)
}

func (t *FeeDelegatedAccountUpdate) RawTx() ([]byte, error)             { return encodeRawTx(t) }
func (t *FeeDelegatedAccountUpdate) TxHash() (common.Hash, error)       { return txHash(t) }
func (t *FeeDelegatedAccountUpdate) SenderTxHash() (common.Hash, error) { return senderTxHash(t) }
func (t *FeeDelegatedAccountUpdate) SigRLP() ([]byte, error)            { return senderSigRLP(t) }
func (t *FeeDelegatedAccountUpdate) FeePayerSigRLP() ([]byte, error)    { return feePayerSigRLP(t) }

func (t *FeeDelegatedAccountUpdate) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *FeeDelegatedAccountUpdate) Sign(key *keyring.PrivateKey) error {
	return signSender(t, key)
}

func (t *FeeDelegatedAccountUpdate) SignAsFeePayer(key *keyring.PrivateKey) error {
	return signFeePayer(t, key)
}

func (t *FeeDelegatedAccountUpdate) copyTx() Transaction {
	return &FeeDelegatedAccountUpdate{feeDelegatedBase: t.copyFeeDelegatedBase(), key: t.key}
}

func (t *FeeDelegatedAccountUpdate) equalFields(other Transaction) bool {
	o, ok := other.(*FeeDelegatedAccountUpdate)
	return ok && t.equalFeeDelegatedBase(&o.feeDelegatedBase) && accountKeysEqual(t.key, o.key)
}

type feeDelegatedAccountUpdateRLP struct {
	Nonce              *big.Int
	GasPrice           *big.Int
	Gas                *big.Int
	From               common.Address
	Key                []byte
	Signatures         []*keyring.SignatureData
	FeePayer           common.Address
	FeePayerSignatures []*keyring.SignatureData
}

func decodeFeeDelegatedAccountUpdate(payload []byte) (*FeeDelegatedAccountUpdate, error) {
	var dec feeDelegatedAccountUpdateRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeFeeDelegatedAccountUpdate encoding", err)
	}
	key, err := accountkey.Decode(dec.Key)
	if err != nil {
		return nil, err
	}
	from := dec.From
	feePayer := dec.FeePayer
	return &FeeDelegatedAccountUpdate{
		feeDelegatedBase: feeDelegatedBase{
			txBase: txBase{
				txType:   TxTypeFeeDelegatedAccountUpdate,
				nonce:    dec.Nonce,
				gasPrice: dec.GasPrice,
				gas:      dec.Gas,
				from:     &from,
				sigs:     dec.Signatures,
			},
			feePayer:     normalizeFeePayer(&feePayer),
			feePayerSigs: dec.FeePayerSignatures,
		},
		key: key,
	}, nil
}
