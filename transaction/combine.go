package transaction

import (
	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// Combine merges independently signed encodings of the same transaction
// into one. It is pure: base is never mutated, the merged transaction and
// its wire encoding are returned.
//
// While any of nonce, gasPrice or the fee payer is still unset on the
// target, candidate values are adopted (the fee payer only if the
// candidate's is itself bound); adopting a fee payer ends the filling
// phase. After filling, every non-signature field of a candidate must
// equal the target's — only signatures may differ between merged inputs.
// Signature lists are appended in candidate order without deduplication;
// callers are responsible for not re-submitting the same signature.
func Combine(base Transaction, rawTxs [][]byte) (Transaction, []byte, error) {
	merged := base.copyTx()
	mergedFD, isFeeDelegated := merged.(FeeDelegatedTransaction)

	filling := merged.Nonce() == nil || merged.GasPrice() == nil ||
		(isFeeDelegated && mergedFD.FeePayer() == nil)

	for _, raw := range rawTxs {
		candidate, err := Decode(raw)
		if err != nil {
			return nil, nil, err
		}
		if candidate.Type() != merged.Type() {
			return nil, nil, chainerrors.Newf(chainerrors.CodeIncompatibleType,
				"cannot combine %s into %s: transactions containing different information cannot be combined",
				candidate.Type(), merged.Type())
		}

		if filling {
			if merged.Nonce() == nil && candidate.Nonce() != nil {
				merged.setNonceBig(candidate.Nonce())
			}
			if merged.GasPrice() == nil && candidate.GasPrice() != nil {
				merged.setGasPriceBig(candidate.GasPrice())
			}
			if isFeeDelegated {
				candidateFD := candidate.(FeeDelegatedTransaction)
				if mergedFD.FeePayer() == nil && candidateFD.FeePayer() != nil {
					mergedFD.setFeePayerAddr(candidateFD.FeePayer())
					filling = false
				}
			}
		}

		if !merged.equalFields(candidate) {
			return nil, nil, chainerrors.New(chainerrors.CodeIncompatibleFields,
				"transactions containing different information cannot be combined")
		}

		merged.AppendSignatures(realSignatures(candidate.Signatures())...)
		if isFeeDelegated {
			candidateFD := candidate.(FeeDelegatedTransaction)
			mergedFD.AppendFeePayerSignatures(realSignatures(candidateFD.FeePayerSignatures())...)
		}
	}

	raw, err := merged.RawTx()
	if err != nil {
		return nil, nil, err
	}
	return merged, raw, nil
}

// realSignatures drops unsigned placeholders so merging never accumulates
// them.
func realSignatures(sigs []*keyring.SignatureData) []*keyring.SignatureData {
	out := make([]*keyring.SignatureData, 0, len(sigs))
	for _, sig := range sigs {
		if !sig.IsEmpty() {
			out = append(out, sig)
		}
	}
	return out
}
