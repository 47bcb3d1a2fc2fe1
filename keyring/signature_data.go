package keyring

import (
	"fmt"
	"math/big"
)

// SignatureData holds one ECDSA signature triplet. It RLP-encodes as a
// three element list [v, r, s] of minimal big-endian scalars.
//
// Two encodings of V coexist. The chain-bound form folds the chain id in
// (v = chainID*2 + 35 + recoveryID) so a signature cannot be replayed on
// another network. The raw form keeps the bare recovery id (0 or 1) and is
// used where chain binding is not wanted.
type SignatureData struct {
	V *big.Int
	R *big.Int
	S *big.Int
}

// NewSignatureData creates a SignatureData from the given scalars. The
// inputs are copied.
func NewSignatureData(v, r, s *big.Int) *SignatureData {
	return &SignatureData{
		V: new(big.Int).Set(v),
		R: new(big.Int).Set(r),
		S: new(big.Int).Set(s),
	}
}

// EmptySignature returns the placeholder signature (v=1, r=0, s=0) carried
// by a transaction before it is signed. It is recognized during merge and
// fill logic and excluded from fully signed encodings.
func EmptySignature() *SignatureData {
	return &SignatureData{
		V: big.NewInt(1),
		R: new(big.Int),
		S: new(big.Int),
	}
}

// IsEmpty reports whether sig is the unsigned placeholder.
func (sig *SignatureData) IsEmpty() bool {
	if sig == nil || sig.V == nil || sig.R == nil || sig.S == nil {
		return false
	}
	return sig.V.Int64() == 1 && sig.R.Sign() == 0 && sig.S.Sign() == 0
}

// WithChainID returns a copy of sig with its recovery id folded into the
// chain-bound form (EIP-155). sig.V must hold a raw recovery id (0 or 1);
// a legacy 27/28 bias is normalized first.
func (sig *SignatureData) WithChainID(chainID *big.Int) *SignatureData {
	recovery := new(big.Int).Set(sig.V)
	if recovery.Cmp(big.NewInt(27)) >= 0 {
		recovery.Sub(recovery, big.NewInt(27))
	}

	v := new(big.Int).Mul(chainID, big.NewInt(2))
	v.Add(v, big.NewInt(35))
	v.Add(v, recovery)

	return &SignatureData{
		V: v,
		R: new(big.Int).Set(sig.R),
		S: new(big.Int).Set(sig.S),
	}
}

// Equal reports value equality of two signatures.
func (sig *SignatureData) Equal(other *SignatureData) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.V.Cmp(other.V) == 0 && sig.R.Cmp(other.R) == 0 && sig.S.Cmp(other.S) == 0
}

// Copy returns a deep copy of sig.
func (sig *SignatureData) Copy() *SignatureData {
	return NewSignatureData(sig.V, sig.R, sig.S)
}

func (sig *SignatureData) String() string {
	return fmt.Sprintf("SignatureData{V: %#x, R: %#x, S: %#x}", sig.V, sig.R, sig.S)
}

// CopySignatures deep-copies a signature list.
func CopySignatures(sigs []*SignatureData) []*SignatureData {
	if sigs == nil {
		return nil
	}
	out := make([]*SignatureData, 0, len(sigs))
	for _, sig := range sigs {
		out = append(out, sig.Copy())
	}
	return out
}

// IsEmptySig reports whether the list carries no real signature, i.e. it is
// empty or holds only unsigned placeholders.
func IsEmptySig(sigs []*SignatureData) bool {
	for _, sig := range sigs {
		if !sig.IsEmpty() {
			return false
		}
	}
	return true
}
