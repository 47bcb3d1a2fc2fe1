package transaction

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// encodableSigs prepares a signature list for the wire. Unsigned
// placeholders are dropped as soon as a real signature exists; a list
// holding only placeholders is encoded as-is so partially signed
// transactions keep their shape when exchanged.
func encodableSigs(sigs []*keyring.SignatureData) []*keyring.SignatureData {
	if keyring.IsEmptySig(sigs) {
		return sigs
	}
	out := make([]*keyring.SignatureData, 0, len(sigs))
	for _, sig := range sigs {
		if !sig.IsEmpty() {
			out = append(out, sig)
		}
	}
	return out
}

// feePayerOrZero encodes an unbound fee payer as the default zero
// address, which is how the wire format represents "not set".
func feePayerOrZero(tx FeeDelegatedTransaction) common.Address {
	if addr := tx.FeePayer(); addr != nil {
		return *addr
	}
	return common.Address{}
}

// encodeRawTx produces the canonical wire bytes:
// tag ++ rlp([...fields..., senderSigs[, feePayer, feePayerSigs]]).
func encodeRawTx(tx Transaction) ([]byte, error) {
	fields, err := tx.encodeFields()
	if err != nil {
		return nil, err
	}

	list := append(fields, encodableSigs(tx.Signatures()))
	if fd, ok := tx.(FeeDelegatedTransaction); ok {
		list = append(list, feePayerOrZero(fd), encodableSigs(fd.FeePayerSignatures()))
	}

	payload, err := rlp.EncodeToBytes(list)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode transaction", err)
	}
	return append([]byte{byte(tx.Type())}, payload...), nil
}

func txHash(tx Transaction) (common.Hash, error) {
	raw, err := tx.RawTx()
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(crypto.Keccak256(raw)), nil
}

// senderTxHash hashes tag ++ rlp([...fields..., senderSigs]), leaving out
// the fee payer and its signatures so the hash stays stable across
// different fee payers signing the same sender-authorized action.
func senderTxHash(tx Transaction) (common.Hash, error) {
	if _, ok := tx.(FeeDelegatedTransaction); !ok {
		return txHash(tx)
	}

	fields, err := tx.encodeFields()
	if err != nil {
		return common.Hash{}, err
	}
	list := append(fields, encodableSigs(tx.Signatures()))

	payload, err := rlp.EncodeToBytes(list)
	if err != nil {
		return common.Hash{}, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode transaction", err)
	}
	raw := append([]byte{byte(tx.Type())}, payload...)
	return common.BytesToHash(crypto.Keccak256(raw)), nil
}

// commonSigRLP builds rlp([tag, ...non-signature fields...]), the payload
// both signing modes share. It deliberately omits the signature lists and
// the fee payer so the same step composes for delegated and non-delegated
// variants.
func commonSigRLP(tx Transaction, checkChainID bool) ([]byte, error) {
	if checkChainID && tx.ChainID() == nil {
		return nil, chainerrors.MissingField("chainId")
	}

	fields, err := tx.encodeFields()
	if err != nil {
		return nil, err
	}
	list := append([]interface{}{byte(tx.Type())}, fields...)

	payload, err := rlp.EncodeToBytes(list)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode signing payload", err)
	}
	return payload, nil
}

func senderSigRLP(tx Transaction) ([]byte, error) {
	inner, err := tx.CommonSigRLP(true)
	if err != nil {
		return nil, err
	}

	payload, err := rlp.EncodeToBytes([]interface{}{inner, tx.ChainID(), uint(0), uint(0)})
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode signing payload", err)
	}
	return payload, nil
}

func feePayerSigRLP(tx FeeDelegatedTransaction) ([]byte, error) {
	if tx.FeePayer() == nil {
		return nil, chainerrors.MissingField("feePayer")
	}
	inner, err := tx.CommonSigRLP(true)
	if err != nil {
		return nil, err
	}

	payload, err := rlp.EncodeToBytes([]interface{}{inner, *tx.FeePayer(), tx.ChainID(), uint(0), uint(0)})
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode signing payload", err)
	}
	return payload, nil
}

func signSender(tx Transaction, key *keyring.PrivateKey) error {
	address := key.Address()
	if tx.From() == nil {
		if err := tx.SetFrom(address.Hex()); err != nil {
			return err
		}
	} else if *tx.From() != address {
		return chainerrors.New(chainerrors.CodeInvalidArgument, "the from address of the transaction does not match the signing key")
	}

	payload, err := tx.SigRLP()
	if err != nil {
		return err
	}
	sig, err := key.Sign(crypto.Keccak256(payload), tx.ChainID())
	if err != nil {
		return err
	}

	tx.AppendSignatures(sig)
	return nil
}

func signFeePayer(tx FeeDelegatedTransaction, key *keyring.PrivateKey) error {
	address := key.Address()
	if tx.FeePayer() == nil {
		if err := tx.SetFeePayer(address.Hex()); err != nil {
			return err
		}
	} else if *tx.FeePayer() != address {
		return chainerrors.New(chainerrors.CodeInvalidArgument, "the fee payer address of the transaction does not match the signing key")
	}

	payload, err := tx.FeePayerSigRLP()
	if err != nil {
		return err
	}
	sig, err := key.Sign(crypto.Keccak256(payload), tx.ChainID())
	if err != nil {
		return err
	}

	tx.AppendFeePayerSignatures(sig)
	return nil
}
