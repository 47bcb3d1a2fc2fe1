package transaction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// CancelParams configures a Cancel transaction. Every field starts at the
// unset sentinel; numeric fields accept decimal or 0x-prefixed hex.
type CancelParams struct {
	Nonce      string
	GasPrice   string
	Gas        string
	ChainID    string
	From       string
	Signatures []*keyring.SignatureData
}

// Cancel invalidates a pending transaction with the same nonce.
//
// Wire format: 0x38 ++ rlp([nonce, gasPrice, gas, from, txSignatures]).
type Cancel struct {
	txBase
}

var _ Transaction = (*Cancel)(nil)

// NewCancel creates a Cancel transaction, validating every given field.
func NewCancel(params CancelParams) (*Cancel, error) {
	base, err := newTxBase(TxTypeCancel, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures)
	if err != nil {
		return nil, err
	}
	return &Cancel{txBase: base}, nil
}

func (t *Cancel) encodeFields() ([]interface{}, error) {
	if err := t.requireBaseFields(); err != nil {
		return nil, err
	}
	return []interface{}{t.nonce, t.gasPrice, t.gas, *t.from}, nil
}

func (t *Cancel) RawTx() ([]byte, error)             { return encodeRawTx(t) }
func (t *Cancel) TxHash() (common.Hash, error)       { return txHash(t) }
func (t *Cancel) SenderTxHash() (common.Hash, error) { return senderTxHash(t) }
func (t *Cancel) SigRLP() ([]byte, error)            { return senderSigRLP(t) }

func (t *Cancel) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *Cancel) Sign(key *keyring.PrivateKey) error { return signSender(t, key) }

func (t *Cancel) copyTx() Transaction {
	return &Cancel{txBase: t.copyBase()}
}

func (t *Cancel) equalFields(other Transaction) bool {
	o, ok := other.(*Cancel)
	return ok && t.equalBase(&o.txBase)
}

type cancelRLP struct {
	Nonce      *big.Int
	GasPrice   *big.Int
	Gas        *big.Int
	From       common.Address
	Signatures []*keyring.SignatureData
}

func decodeCancel(payload []byte) (*Cancel, error) {
	var dec cancelRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeCancel encoding", err)
	}
	from := dec.From
	return &Cancel{txBase: txBase{
		txType:   TxTypeCancel,
		nonce:    dec.Nonce,
		gasPrice: dec.GasPrice,
		gas:      dec.Gas,
		from:     &from,
		sigs:     dec.Signatures,
	}}, nil
}

// FeeDelegatedCancelParams configures a FeeDelegatedCancel transaction.
type FeeDelegatedCancelParams struct {
	Nonce              string
	GasPrice           string
	Gas                string
	ChainID            string
	From               string
	FeePayer           string
	Signatures         []*keyring.SignatureData
	FeePayerSignatures []*keyring.SignatureData
}

// FeeDelegatedCancel is a Cancel whose gas is paid by a co-signing fee
// payer.
//
// Wire format: 0x39 ++ rlp([nonce, gasPrice, gas, from, txSignatures,
// feePayer, feePayerSignatures]).
type FeeDelegatedCancel struct {
	feeDelegatedBase
}

var _ FeeDelegatedTransaction = (*FeeDelegatedCancel)(nil)

// NewFeeDelegatedCancel creates a FeeDelegatedCancel transaction,
// validating every given field.
func NewFeeDelegatedCancel(params FeeDelegatedCancelParams) (*FeeDelegatedCancel, error) {
	base, err := newFeeDelegatedBase(TxTypeFeeDelegatedCancel, params.Nonce, params.GasPrice, params.Gas, params.ChainID, params.From, params.Signatures, params.FeePayer, params.FeePayerSignatures)
	if err != nil {
		return nil, err
	}
	return &FeeDelegatedCancel{feeDelegatedBase: base}, nil
}

func (t *FeeDelegatedCancel) encodeFields() ([]interface{}, error) {
	if err := t.requireBaseFields(); err != nil {
		return nil, err
	}
	return []interface{}{t.nonce, t.gasPrice, t.gas, *t.from}, nil
}

func (t *FeeDelegatedCancel) RawTx() ([]byte, error)             { return encodeRawTx(t) }
func (t *FeeDelegatedCancel) TxHash() (common.Hash, error)       { return txHash(t) }
func (t *FeeDelegatedCancel) SenderTxHash() (common.Hash, error) { return senderTxHash(t) }
func (t *FeeDelegatedCancel) SigRLP() ([]byte, error)            { return senderSigRLP(t) }
func (t *FeeDelegatedCancel) FeePayerSigRLP() ([]byte, error)    { return feePayerSigRLP(t) }

func (t *FeeDelegatedCancel) CommonSigRLP(checkChainID bool) ([]byte, error) {
	return commonSigRLP(t, checkChainID)
}

func (t *FeeDelegatedCancel) Sign(key *keyring.PrivateKey) error { return signSender(t, key) }

func (t *FeeDelegatedCancel) SignAsFeePayer(key *keyring.PrivateKey) error {
	return signFeePayer(t, key)
}

func (t *FeeDelegatedCancel) copyTx() Transaction {
	return &FeeDelegatedCancel{feeDelegatedBase: t.copyFeeDelegatedBase()}
}

func (t *FeeDelegatedCancel) equalFields(other Transaction) bool {
	o, ok := other.(*FeeDelegatedCancel)
	return ok && t.equalFeeDelegatedBase(&o.feeDelegatedBase)
}

type feeDelegatedCancelRLP struct {
	Nonce              *big.Int
	GasPrice           *big.Int
	Gas                *big.Int
	From               common.Address
	Signatures         []*keyring.SignatureData
	FeePayer           common.Address
	FeePayerSignatures []*keyring.SignatureData
}

func decodeFeeDelegatedCancel(payload []byte) (*FeeDelegatedCancel, error) {
	var dec feeDelegatedCancelRLP
	if err := rlp.DecodeBytes(payload, &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid TxTypeFeeDelegatedCancel encoding", err)
	}
	from := dec.From
	feePayer := dec.FeePayer
	return &FeeDelegatedCancel{feeDelegatedBase: feeDelegatedBase{
		txBase: txBase{
			txType:   TxTypeFeeDelegatedCancel,
			nonce:    dec.Nonce,
			gasPrice: dec.GasPrice,
			gas:      dec.Gas,
			from:     &from,
			sigs:     dec.Signatures,
		},
		feePayer:     normalizeFeePayer(&feePayer),
		feePayerSigs: dec.FeePayerSignatures,
	}}, nil
}
