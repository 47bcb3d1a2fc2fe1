package transaction

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// SmartContractExecutionParams configures a SmartContractExecution
// transaction. Input is the 0x-prefixed call data; "0x" is a legitimate
// empty payload while "" leaves the field unset.
type SmartContractExecutionParams struct {
	Nonce      string
	GasPrice   string
	Gas        string
	ChainID    string
	To         string
	Value      string
	From       string
	Input      string
	Signatures []*keyring.SignatureData
}

// SmartContractExecution calls a deployed contract with the given call
// data, optionally transferring value.
//
// Wire format: 0x30 ++ rlp([nonce, gasPrice, gas, to, value, from, input,
// txSignatures]).
type SmartContractExecution struct {
	txBase
	to    *common.Address
	value *big.Int
	input []byte
}

var _ Transaction = (*SmartContractExecution)(nil)

// NewSmartContractExecution creates a SmartContractExecution transaction,
// validating every given field.
func NewSmartContractExecution(params SmartContractExecutionParams) (*SmartContractExecution, error) {
	base, err := newTxBase(TxTypeSmartContractExecution, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures)
	if err != nil {
		return nil, err
	}
	tx := &SmartContractExecution{txBase: base}
	if err := tx.SetTo(params.To); err != nil {
		return nil, err
	}
	if err := tx.SetValue(params.Value); err != nil {
		return nil, err
	}
	if err := tx.SetInput(params.Input); err != nil {
		return nil, err
	}
	return tx, nil
}

// To returns the contract address, or nil while unset.
func (t *SmartContractExecution) To() *common.Address { return t.to }

// Value returns the transferred amount, or nil while unset.
func (t *SmartContractExecution) Value() *big.Int { return t.value }

// Input returns the call data, or nil while unset.
func (t *SmartContractExecution) Input() []byte { return t.input }

func (t *SmartContractExecution) SetTo(value string) error {
	parsed, err := parseAddress(value, "to")
	if err != nil {
		return err
	}
	t.to = parsed
	return nil
}

func (t *SmartContractExecution) SetValue(value string) error {
	parsed, err := parseQuantity(value, "value")
	if err != nil {
		return err
	}
	t.value = parsed
	return nil
}

func (t *SmartContractExecution) SetInput(value string) error {
	parsed, err := parseBytes(value, "input")
	if err != nil {
		return err
	}
	t.input = parsed
	return nil
}

func (t *SmartContractExecution) encodeFields() ([]interface{}, error) {
	return smartContractExecutionFields(&t.txBase, t.to, t.value, t.input)
}

func smartContractExecutionFields(base *txBase, to *common.Address, value *big.Int, input []byte) ([]interface{}, error) {
	if err := base.requireBaseFields(); err != nil {
		return nil, err
	}
	if to == nil {
		return nil, chainerrors.MissingField("to")
	}
	if value == nil {
		return nil, chainerrors.MissingField("value")
	}
	if input == nil {
		return nil, chainerrors.MissingField("input")
	}
	return []interface{}{base.nonce, base.gasPrice, base.gas, *to, value, *base.from, input}, nil
}

func (t *SmartContractExecution) RawTx() ([]byte, error)             { return encodeRawTx(t) }
func (t *SmartContractExecution) TxHash() (common.Hash, error)       { return txHash(t) }
func (t *SmartContractExecution) SenderTxHash() (common.Hash, error) { return senderTxHash(t) }
func (t *SmartContractExecution) SigRLP() ([]byte, error)            { return senderSigRLP(t) }

func (t *SmartContractExecution) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *SmartContractExecution) Sign(key *keyring.PrivateKey) error { return signSender(t, key) }

func (t *SmartContractExecution) copyTx() Transaction {
	return &SmartContractExecution{
		txBase: t.copyBase(),
		to:     copyAddr(t.to),
		value:  copyBig(t.value),
		input:  bytes.Clone(t.input),
	}
}

func (t *SmartContractExecution) equalFields(other Transaction) bool {
	o, ok := other.(*SmartContractExecution)
	return ok && t.equalBase(&o.txBase) && addrEqual(t.to, o.to) &&
		bigEqual(t.value, o.value) && bytes.Equal(t.input, o.input)
}

type smartContractExecutionRLP struct {
	Nonce      *big.Int
	GasPrice   *big.Int
	Gas        *big.Int
	To         common.Address
	Value      *big.Int
	From       common.Address
	Input      []byte
	Signatures []*keyring.SignatureData
}

func decodeSmartContractExecution(payload []byte) (*SmartContractExecution, error) {
	var dec smartContractExecutionRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeSmartContractExecution encoding", err)
	}
	to := dec.To
	from := dec.From
	return &SmartContractExecution{
		txBase: txBase{
			txType:   TxTypeSmartContractExecution,
			nonce:    dec.Nonce,
			gasPrice: dec.GasPrice,
			gas:      dec.Gas,
			from:     &from,
			sigs:     dec.Signatures,
		},
		to:    &to,
		value: dec.Value,
		input: dec.Input,
	}, nil
}

// FeeDelegatedSmartContractExecutionParams configures a
// FeeDelegatedSmartContractExecution transaction.
type FeeDelegatedSmartContractExecutionParams struct {
	Nonce              string
	GasPrice           string
	Gas                string
	ChainID            string
	To                 string
	Value              string
	From               string
	Input              string
	FeePayer           string
	Signatures         []*keyring.SignatureData
	FeePayerSignatures []*keyring.SignatureData
}

// FeeDelegatedSmartContractExecution is a SmartContractExecution whose
// gas is paid by a co-signing fee payer.
//
// Wire format: 0x31 ++ rlp([nonce, gasPrice, gas, to, value, from, input,
// txSignatures, feePayer, feePayerSignatures]).
type FeeDelegatedSmartContractExecution struct {
	feeDelegatedBase
	to    *common.Address
	value *big.Int
	input []byte
}

var _ FeeDelegatedTransaction = (*FeeDelegatedSmartContractExecution)(nil)

// NewFeeDelegatedSmartContractExecution creates a
// FeeDelegatedSmartContractExecution transaction, validating every given
// field.
func NewFeeDelegatedSmartContractExecution(params FeeDelegatedSmartContractExecutionParams) (*FeeDelegatedSmartContractExecution, error) {
	base, err := newFeeDelegatedBase(TxTypeFeeDelegatedSmartContractExecution, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures, params.FeePayer, params.FeePayerSignatures)
	if err != nil {
		return nil, err
	}
	tx := &FeeDelegatedSmartContractExecution{feeDelegatedBase: base}
	if err := tx.SetTo(params.To); err != nil {
		return nil, err
	}
	if err := tx.SetValue(params.Value); err != nil {
		return nil, err
	}
	if err := tx.SetInput(params.Input); err != nil {
		return nil, err
	}
	return tx, nil
}

// To returns the contract address, or nil while unset.
func (t *FeeDelegatedSmartContractExecution) To() *common.Address { return t.to }

// Value returns the transferred amount, or nil while unset.
func (t *FeeDelegatedSmartContractExecution) Value() *big.Int { return t.value }

// Input returns the call data, or nil while unset.
func (t *FeeDelegatedSmartContractExecution) Input() []byte { return t.input }

func (t *FeeDelegatedSmartContractExecution) SetTo(value string) error {
	parsed, err := parseAddress(value, "to")
	if err != nil {
		return err
	}
	t.to = parsed
	return nil
}

func (t *FeeDelegatedSmartContractExecution) SetValue(value string) error {
	parsed, err := parseQuantity(value, "value")
	if err != nil {
		return err
	}
	t.value = parsed
	return nil
}

func (t *FeeDelegatedSmartContractExecution) SetInput(value string) error {
	parsed, err := parseBytes(value, "input")
	if err != nil {
		return err
	}
	t.input = parsed
	return nil
}

func (t *FeeDelegatedSmartContractExecution) encodeFields() ([]interface{}, error) {
	return smartContractExecutionFields(&t.txBase, t.to, t.value, t.input)
}

func (t *FeeDelegatedSmartContractExecution) RawTx() ([]byte, error)       { return encodeRawTx(t) }
func (t *FeeDelegatedSmartContractExecution) TxHash() (common.Hash, error) { return txHash(t) }
func (t *FeeDelegatedSmartContractExecution) SenderTxHash() (common.Hash, error) {
	return senderTxHash(t)
}
func (t *FeeDelegatedSmartContractExecution) SigRLP() ([]byte, error) { return senderSigRLP(t) }
func (t *FeeDelegatedSmartContractExecution) FeePayerSigRLP() ([]byte, error) {
	return feePayerSigRLP(t)
}

func (t *FeeDelegatedSmartContractExecution) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *FeeDelegatedSmartContractExecution) Sign(key *keyring.PrivateKey) error {
	return signSender(t, key)
}

func (t *FeeDelegatedSmartContractExecution) SignAsFeePayer(key *keyring.PrivateKey) error {
	return signFeePayer(t, key)
}

func (t *FeeDelegatedSmartContractExecution) copyTx() Transaction {
	return &FeeDelegatedSmartContractExecution{
		feeDelegatedBase: t.copyFeeDelegatedBase(),
		to:               copyAddr(t.to),
		value:            copyBig(t.value),
		input:            bytes.Clone(t.input),
	}
}

func (t *FeeDelegatedSmartContractExecution) equalFields(other Transaction) bool {
	o, ok := other.(*FeeDelegatedSmartContractExecution)
	return ok && t.equalFeeDelegatedBase(&o.feeDelegatedBase) && addrEqual(t.to, o.to) &&
		bigEqual(t.value, o.value) && bytes.Equal(t.input, o.input)
}

type feeDelegatedSmartContractExecutionRLP struct {
	Nonce              *big.Int
	GasPrice           *big.Int
	Gas                *big.Int
	To                 common.Address
	Value              *big.Int
	From               common.Address
	Input              []byte
	Signatures         []*keyring.SignatureData
	FeePayer           common.Address
	FeePayerSignatures []*keyring.SignatureData
}

func decodeFeeDelegatedSmartContractExecution(payload []byte) (*FeeDelegatedSmartContractExecution, error) {
	var dec feeDelegatedSmartContractExecutionRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeFeeDelegatedSmartContractExecution encoding", err)
	}
	to := dec.To
	from := dec.From
	feePayer := dec.FeePayer
	return &FeeDelegatedSmartContractExecution{
		feeDelegatedBase: feeDelegatedBase{
			txBase: txBase{
				txType:   TxTypeFeeDelegatedSmartContractExecution,
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
		input: dec.Input,
	}, nil
}
