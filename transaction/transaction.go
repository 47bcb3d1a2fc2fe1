// Package transaction implements the typed transaction codec: canonical
// RLP wire encoding and decoding per transaction type, signing payloads,
// hash derivation, and the combiner that merges independently co-signed
// encodings of the same transaction.
package transaction

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// TxType tags a transaction variant on the wire. The tag fixes the
// transaction's field set and RLP field ordering.
type TxType byte

const (
	TxTypeValueTransfer                      TxType = 0x08
	TxTypeFeeDelegatedValueTransfer          TxType = 0x09
	TxTypeAccountUpdate                      TxType = 0x20
	TxTypeFeeDelegatedAccountUpdate          TxType = 0x21
	TxTypeSmartContractExecution             TxType = 0x30
	TxTypeFeeDelegatedSmartContractExecution TxType = 0x31
	TxTypeCancel                             TxType = 0x38
	TxTypeFeeDelegatedCancel                 TxType = 0x39
)

func (t TxType) String() string {
	switch t {
	case TxTypeValueTransfer:
		return "TxTypeValueTransfer"
	case TxTypeFeeDelegatedValueTransfer:
		return "TxTypeFeeDelegatedValueTransfer"
	case TxTypeAccountUpdate:
		return "TxTypeAccountUpdate"
	case TxTypeFeeDelegatedAccountUpdate:
		return "TxTypeFeeDelegatedAccountUpdate"
	case TxTypeSmartContractExecution:
		return "TxTypeSmartContractExecution"
	case TxTypeFeeDelegatedSmartContractExecution:
		return "TxTypeFeeDelegatedSmartContractExecution"
	case TxTypeCancel:
		return "TxTypeCancel"
	case TxTypeFeeDelegatedCancel:
		return "TxTypeFeeDelegatedCancel"
	default:
		return fmt.Sprintf("TxType(0x%02x)", byte(t))
	}
}

// Transaction is one typed transaction. The set of implementations is
// closed; every variant lives in this package and is reachable through
// Decode.
type Transaction interface {
	Type() TxType

	Nonce() *big.Int
	GasPrice() *big.Int
	Gas() *big.Int
	ChainID() *big.Int
	From() *common.Address
	Signatures() []*keyring.SignatureData

	SetNonce(value string) error
	SetGasPrice(value string) error
	SetGas(value string) error
	SetChainID(value string) error
	SetFrom(value string) error

	// AppendSignatures appends sender signatures, replacing a lone
	// unsigned placeholder if one is present.
	AppendSignatures(sigs ...*keyring.SignatureData)

	// RawTx returns the canonical wire encoding:
	// tag byte followed by the RLP field list.
	RawTx() ([]byte, error)
	// TxHash returns keccak256 over the canonical wire encoding.
	TxHash() (common.Hash, error)
	// SenderTxHash identifies the sender-authorized content of the
	// transaction independent of who pays its fee: it excludes the fee
	// payer and fee-payer signatures. For non-delegated types it equals
	// TxHash.
	SenderTxHash() (common.Hash, error)
	// CommonSigRLP returns the payload shared by sender and fee-payer
	// signing: rlp([tag, ...non-signature fields...]). checkChainID
	// additionally requires the chain id to be set.
	CommonSigRLP(checkChainID bool) ([]byte, error)
	// SigRLP returns the bytes whose keccak256 digest the sender signs:
	// rlp([CommonSigRLP, chainID, 0, 0]).
	SigRLP() ([]byte, error)
	// Sign signs the transaction as the sender, appending the resulting
	// chain-bound signature. An unset from address is adopted from the
	// key; a set one must match it.
	Sign(key *keyring.PrivateKey) error

	encodeFields() ([]interface{}, error)
	copyTx() Transaction
	equalFields(other Transaction) bool
	setNonceBig(value *big.Int)
	setGasPriceBig(value *big.Int)
	setChainIDBig(value *big.Int)
}

// FeeDelegatedTransaction is a transaction a second party co-signs to pay
// gas on behalf of the sender.
type FeeDelegatedTransaction interface {
	Transaction

	FeePayer() *common.Address
	FeePayerSignatures() []*keyring.SignatureData
	SetFeePayer(value string) error
	AppendFeePayerSignatures(sigs ...*keyring.SignatureData)

	// FeePayerSigRLP returns the bytes whose keccak256 digest the fee
	// payer signs: rlp([CommonSigRLP, feePayer, chainID, 0, 0]).
	FeePayerSigRLP() ([]byte, error)
	// SignAsFeePayer signs the transaction as the fee payer. An unset
	// fee payer address is adopted from the key; a set one must match it.
	SignAsFeePayer(key *keyring.PrivateKey) error

	setFeePayerAddr(addr *common.Address)
}

// Decode parses a canonical wire encoding, dispatching on the leading
// type tag. Unknown tags and malformed RLP fail with a CodeStructural
// error.
func Decode(raw []byte) (Transaction, error) {
	if len(raw) < 2 {
		return nil, chainerrors.New(chainerrors.CodeStructural, "transaction encoding too short")
	}

	switch TxType(raw[0]) {
	case TxTypeValueTransfer:
		return decodeValueTransfer(raw[1:])
	case TxTypeFeeDelegatedValueTransfer:
		return decodeFeeDelegatedValueTransfer(raw[1:])
	case TxTypeAccountUpdate:
		return decodeAccountUpdate(raw[1:])
	case TxTypeFeeDelegatedAccountUpdate:
		return decodeFeeDelegatedAccountUpdate(raw[1:])
	case TxTypeSmartContractExecution:
		return decodeSmartContractExecution(raw[1:])
	case TxTypeFeeDelegatedSmartContractExecution:
		return decodeFeeDelegatedSmartContractExecution(raw[1:])
	case TxTypeCancel:
		return decodeCancel(raw[1:])
	case TxTypeFeeDelegatedCancel:
		return decodeFeeDelegatedCancel(raw[1:])
	default:
		return nil, chainerrors.Newf(chainerrors.CodeStructural, "unknown transaction type tag 0x%02x", raw[0])
	}
}
