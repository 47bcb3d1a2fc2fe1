package accountkey

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/chainerrors"
)

// maxWeightedKeys caps the number of keys one weighted multisig account
// may hold.
const maxWeightedKeys = 10

// WeightedPublicKey is one member key of a weighted multisig account.
type WeightedPublicKey struct {
	Weight uint
	Key    *Public
}

// WeightedMultiSig authorizes an account when the weights of the member
// keys that signed sum to at least Threshold.
type WeightedMultiSig struct {
	threshold uint
	keys      []WeightedPublicKey
}

// NewWeightedMultiSig creates a weighted multisig key. The threshold and
// every weight must be at least 1, and the member count must be between 1
// and 10.
func NewWeightedMultiSig(threshold uint, keys []WeightedPublicKey) (*WeightedMultiSig, error) {
	if threshold < 1 {
		return nil, chainerrors.New(chainerrors.CodeInvalidArgument, "multisig threshold must be at least 1")
	}
	if len(keys) == 0 || len(keys) > maxWeightedKeys {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "multisig must hold between 1 and %d keys, got %d", maxWeightedKeys, len(keys))
	}
	for _, wk := range keys {
		if wk.Weight < 1 {
			return nil, chainerrors.New(chainerrors.CodeInvalidArgument, "multisig key weight must be at least 1")
		}
		if wk.Key == nil {
			return nil, chainerrors.New(chainerrors.CodeInvalidArgument, "multisig key must not be nil")
		}
	}

	return &WeightedMultiSig{
		threshold: threshold,
		keys:      append([]WeightedPublicKey(nil), keys...),
	}, nil
}

func (k *WeightedMultiSig) Tag() byte { return TagWeightedMultiSig }

// Threshold returns the weight sum required to authorize the account.
func (k *WeightedMultiSig) Threshold() uint { return k.threshold }

// Keys returns the member keys.
func (k *WeightedMultiSig) Keys() []WeightedPublicKey {
	return append([]WeightedPublicKey(nil), k.keys...)
}

type weightedKeyRLP struct {
	Weight uint
	Pubkey []byte
}

type weightedMultiSigRLP struct {
	Threshold uint
	Keys      []weightedKeyRLP
}

func (k *WeightedMultiSig) RLP() ([]byte, error) {
	enc := weightedMultiSigRLP{Threshold: k.threshold}
	for _, wk := range k.keys {
		enc.Keys = append(enc.Keys, weightedKeyRLP{
			Weight: wk.Weight,
			Pubkey: wk.Key.CompressedPubkey(),
		})
	}

	encoded, err := rlp.EncodeToBytes(&enc)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode multisig account key", err)
	}
	return append([]byte{TagWeightedMultiSig}, encoded...), nil
}

func (k *WeightedMultiSig) accountKey() {}

func decodeWeightedMultiSig(encoded []byte) (*WeightedMultiSig, error) {
	var dec weightedMultiSigRLP
	if err := rlp.DecodeBytes(encoded[1:], &dec); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid multisig account key encoding", err)
	}

	keys := make([]WeightedPublicKey, 0, len(dec.Keys))
	for _, wk := range dec.Keys {
		pub, err := NewPublic(wk.Pubkey)
		if err != nil {
			return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid multisig member key", err)
		}
		keys = append(keys, WeightedPublicKey{Weight: wk.Weight, Key: pub})
	}

	key, err := NewWeightedMultiSig(dec.Threshold, keys)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid multisig account key encoding", err)
	}
	return key, nil
}
