package transaction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// ValueTransferParams configures a ValueTransfer transaction.
type ValueTransferParams struct {
	Nonce      string
	GasPrice   string
	Gas        string
	ChainID    string
	To         string
	Value      string
	From       string
	Signatures []*keyring.SignatureData
}

// ValueTransfer moves native tokens from the sender to a recipient.
//
// Wire format: 0x08 ++ rlp([nonce, gasPrice, gas, to, value, from,
// txSignatures]).
type ValueTransfer struct {
	txBase
	to    *common.Address
	value *big.Int
}

var _ Transaction = (*ValueTransfer)(nil)

// NewValueTransfer creates a ValueTransfer transaction, validating every
// given field.
func NewValueTransfer(params ValueTransferParams) (*ValueTransfer, error) {
	base, err := newTxBase(TxTypeValueTransfer, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures)
	if err != nil {
		return nil, err
	}
	tx := &ValueTransfer{txBase: base}
	if err := tx.SetTo(params.To); err != nil {
		return nil, err
	}
	if err := tx.SetValue(params.Value); err != nil {
		return nil, err
	}
	return tx, nil
}

// To returns the recipient, or nil while unset.
func (t *ValueTransfer) To() *common.Address { return t.to }

// Value returns the transferred amount, or nil while unset.
func (t *ValueTransfer) Value() *big.Int { return t.value }

func (t *ValueTransfer) SetTo(value string) error {
	parsed, err := parseAddress(value, "to")
	if err != nil {
		return err
	}
	t.to = parsed
	return nil
}

func (t *ValueTransfer) SetValue(value string) error {
	parsed, err := parseQuantity(value, "value")
	if err != nil {
		return err
	}
	t.value = parsed
	return nil
}

func (t *ValueTransfer) encodeFields() ([]interface{}, error) {
	if err := t.requireBaseFields(); err != nil {
		return nil, err
	}
	if t.to == nil {
		return nil, chainerrors.MissingField("to")
	}
	if t.value == nil {
		return nil, chainerrors.MissingField("value")
	}
	return []interface{}{t.nonce, t.gasPrice, t.gas, *t.to, t.value, *t.from}, nil
}

func (t *ValueTransfer) RawTx() ([]byte, error)             { return encodeRawTx(t) }
func (t *ValueTransfer) TxHash() (common.Hash, error)       { return txHash(t) }
func (t *ValueTransfer) SenderTxHash() (common.Hash, error) { return senderTxHash(t) }
func (t *ValueTransfer) SigRLP() ([]byte, error)            { return senderSigRLP(t) }

func (t *ValueTransfer) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *ValueTransfer) Sign(key *keyring.PrivateKey) error { return signSender(t, key) }

func (t *ValueTransfer) copyTx() Transaction {
	return &ValueTransfer{
		txBase: t.copyBase(),
		to:     copyAddr(t.to),
		value:  copyBig(t.value),
	}
}

func (t *ValueTransfer) equalFields(other Transaction) bool {
	o, ok := other.(*ValueTransfer)
	return ok && t.equalBase(&o.txBase) && addrEqual(t.to, o.to) && bigEqual(t.value, o.value)
}

type valueTransferRLP struct {
	Nonce      *big.Int
	GasPrice   *big.Int
	Gas        *big.Int
	To         common.Address
	Value      *big.Int
	From       common.Address
	Signatures []*keyring.SignatureData
}

func decodeValueTransfer(payload []byte) (*ValueTransfer, error) {
	var dec valueTransferRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeValueTransfer encoding", err)
	}
	to := dec.To
	from := dec.From
	return &ValueTransfer{
		txBase: txBase{
			txType:   TxTypeValueTransfer,
			nonce:    dec.Nonce,
			gasPrice: dec.GasPrice,
			gas:      dec.Gas,
			from:     &from,
			sigs:     dec.Signatures,
		},
		to:    &to,
		value: dec.Value,
	}, nil
}

// FeeDelegatedValueTransferParams configures a FeeDelegatedValueTransfer
// transaction.
type FeeDelegatedValueTransferParams struct {
	Nonce              string
	GasPrice           string
	Gas                string
	ChainID            string
	To                 string
	Value              string
	From               string
	FeePayer           string
	Signatures         []*keyring.SignatureData
	FeePayerSignatures []*keyring.SignatureData
}

// FeeDelegatedValueTransfer is a ValueTransfer whose gas is paid by a
// co-signing fee payer.
//
// Wire format: 0x09 ++ rlp([nonce, gasPrice, gas, to, value, from,
// txSignatures, feePayer, feePayerSignatures]).
type FeeDelegatedValueTransfer struct {
	feeDelegatedBase
	to    *common.Address
	value *big.Int
}

var _ FeeDelegatedTransaction = (*FeeDelegatedValueTransfer)(nil)

// NewFeeDelegatedValueTransfer creates a FeeDelegatedValueTransfer
// transaction, validating every given field.
func NewFeeDelegatedValueTransfer(params FeeDelegatedValueTransferParams) (*FeeDelegatedValueTransfer, error) {
	base, err := newFeeDelegatedBase(TxTypeFeeDelegatedValueTransfer, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures, params.FeePayer, params.FeePayerSignatures)
	if err != nil {
		return nil, err
	}
	tx := &FeeDelegatedValueTransfer{feeDelegatedBase: base}
	if err := tx.SetTo(params.To); err != nil {
		return nil, err
	}
	if err := tx.SetValue(params.Value); err != nil {
		return nil, err
	}
	return tx, nil
}

// To returns the recipient, or nil while unset.
func (t *FeeDelegatedValueTransfer) To() *common.Address { return t.to }

// Value returns the transferred amount, or nil while unset.
func (t *FeeDelegatedValueTransfer) Value() *big.Int { return t.value }

func (t *FeeDelegatedValueTransfer) SetTo(value string) error {
	parsed, err := parseAddress(value, "to")
	if err != nil {
		return err
	}
	t.to = parsed
	return nil
}

func (t *FeeDelegatedValueTransfer) SetValue(value string) error {
	parsed, err := parseQuantity(value, "value")
	if err != nil {
		return err
	}
	t.value = parsed
	return nil
}

func (t *FeeDelegatedValueTransfer) encodeFields() ([]interface{}, error) {
	if err := t.requireBaseFields(); err != nil {
		return nil, err
	}
	if t.to == nil {
		return nil, chainerrors.MissingField("to")
	}
	if t.value == nil {
		return nil, chainerrors.MissingField("value")
	}
	return []interface{}{t.nonce, t.gasPrice, t.gas, *t.to, t.value, *t.from}, nil
}

func (t *FeeDelegatedValueTransfer) RawTx() ([]byte, error)             { return encodeRawTx(t) }
func (t *FeeDelegatedValueTransfer) TxHash() (common.Hash, error)       { return txHash(t) }
func (t *FeeDelegatedValueTransfer) SenderTxHash() (common.Hash, error) { return senderTxHash(t) }
func (t *FeeDelegatedValueTransfer) SigRLP() ([]byte, error)            { return senderSigRLP(t) }
func (t *FeeDelegatedValueTransfer) FeePayerSigRLP() ([]byte, error)    { return feePayerSigRLP(t) }

func (t *FeeDelegatedValueTransfer) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *FeeDelegatedValueTransfer) Sign(key *keyring.PrivateKey) error {
	return signSender(t, key)
}

func (t *FeeDelegatedValueTransfer) SignAsFeePayer(key *keyring.PrivateKey) error {
	return signFeePayer(t, key)
}

func (t *FeeDelegatedValueTransfer) copyTx() Transaction {
	return &FeeDelegatedValueTransfer{
		feeDelegatedBase: t.copyFeeDelegatedBase(),
		to:               copyAddr(t.to),
		value:            copyBig(t.value),
	}
}

func (t *FeeDelegatedValueTransfer) equalFields(other Transaction) bool {
	o, ok := other.(*FeeDelegatedValueTransfer)
	return ok && t.equalFeeDelegatedBase(&o.feeDelegatedBase) && addrEqual(t.to, o.to) && bigEqual(t.value, o.value)
}

type feeDelegatedValueTransferRLP struct {
	Nonce              *big.Int
	GasPrice           *big.Int
	Gas                *big.Int
	To                 common.Address
	Value              *big.Int
	From               common.Address
	Signatures         []*keyring.SignatureData
	FeePayer           common.Address
	FeePayerSignatures []*keyring.SignatureData
}

func decodeFeeDelegatedValueTransfer(payload []byte) (*FeeDelegatedValueTransfer, error) {
	var dec feeDelegatedValueTransferRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeFeeDelegatedValueTransfer encoding", err)
	}
	to := dec.To
	from := dec.From
	feePayer := dec.FeePayer
	return &FeeDelegatedValueTransfer{
		feeDelegatedBase: feeDelegatedBase{
			txBase: txBase{
				txType:   TxTypeFeeDelegatedValueTransfer,
				nonce:    dec.Nonce,
				gasPrice: dec.GasPrice,
				gas:      dec.Gas,
				from:     &from,
				sigs:     dec.Signatures,
			},
			feePayer:     normalizeFeePayer(&feePayer),
			feePayerSigs: dec.FeePayerSignatures,
		},
		to:    &to,
		value: dec.Value,
	}, nil
}
