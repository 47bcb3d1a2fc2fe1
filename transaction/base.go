package transaction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github/chapool/go-txcore/chainerrors"
	"github/chapool/go-txcore/keyring"
)

// txBase carries the fields every transaction type shares. A nil pointer
// is the unset state, distinct from a set zero value.
type txBase struct {
	txType   TxType
	nonce    *big.Int
	gasPrice *big.Int
	gas      *big.Int
	chainID  *big.Int
	from     *common.Address
	sigs     []*keyring.SignatureData
}

func newTxBase(txType TxType, nonce, gasPrice, gas, chainID, from string, sigs []*keyring.SignatureData) (txBase, error) {
	base := txBase{txType: txType}
	if err := base.SetNonce(nonce); err != nil {
		return txBase{}, err
	}
	if err := base.SetGasPrice(gasPrice); err != nil {
		return txBase{}, err
	}
	if err := base.SetGas(gas); err != nil {
		return txBase{}, err
	}
	if err := base.SetChainID(chainID); err != nil {
		return txBase{}, err
	}
	if err := base.SetFrom(from); err != nil {
		return txBase{}, err
	}
	base.sigs = keyring.CopySignatures(sigs)
	return base, nil
}

func (t *txBase) Type() TxType          { return t.txType }
func (t *txBase) Nonce() *big.Int       { return t.nonce }
func (t *txBase) GasPrice() *big.Int    { return t.gasPrice }
func (t *txBase) Gas() *big.Int         { return t.gas }
func (t *txBase) ChainID() *big.Int     { return t.chainID }
func (t *txBase) From() *common.Address { return t.from }

func (t *txBase) Signatures() []*keyring.SignatureData {
	return t.sigs
}

// Setters accept decimal magnitudes or 0x-prefixed hex; "" and "0x" unset
// the field. Malformed input fails without modifying the stored value.

func (t *txBase) SetNonce(value string) error {
	parsed, err := parseQuantity(value, "nonce")
	if err != nil {
		return err
	}
	t.nonce = parsed
	return nil
}

func (t *txBase) SetGasPrice(value string) error {
	parsed, err := parseQuantity(value, "gasPrice")
	if err != nil {
		return err
	}
	t.gasPrice = parsed
	return nil
}

func (t *txBase) SetGas(value string) error {
	parsed, err := parseQuantity(value, "gas")
	if err != nil {
		return err
	}
	t.gas = parsed
	return nil
}

func (t *txBase) SetChainID(value string) error {
	parsed, err := parseQuantity(value, "chainId")
	if err != nil {
		return err
	}
	t.chainID = parsed
	return nil
}

func (t *txBase) SetFrom(value string) error {
	parsed, err := parseAddress(value, "from")
	if err != nil {
		return err
	}
	t.from = parsed
	return nil
}

func (t *txBase) AppendSignatures(sigs ...*keyring.SignatureData) {
	incoming := make([]*keyring.SignatureData, 0, len(sigs))
	for _, sig := range sigs {
		if sig != nil {
			incoming = append(incoming, sig.Copy())
		}
	}
	if len(incoming) == 0 {
		return
	}
	if len(t.sigs) == 1 && t.sigs[0].IsEmpty() {
		t.sigs = nil
	}
	t.sigs = append(t.sigs, incoming...)
}

// requireBaseFields checks the shared pre-signature fields are all set,
// naming the first missing one.
func (t *txBase) requireBaseFields() error {
	if t.nonce == nil {
		return chainerrors.MissingField("nonce")
	}
	if t.gasPrice == nil {
		return chainerrors.MissingField("gasPrice")
	}
	if t.gas == nil {
		return chainerrors.MissingField("gas")
	}
	if t.from == nil {
		return chainerrors.MissingField("from")
	}
	return nil
}

func (t *txBase) setNonceBig(value *big.Int)       { t.nonce = copyBig(value) }
func (t *txBase) setGasPriceBig(value *big.Int)    { t.gasPrice = copyBig(value) }
func (t *txBase) setChainIDBig(value *big.Int)     { t.chainID = copyBig(value) }
func (t *txBase) setFromAddr(addr *common.Address) { t.from = copyAddr(addr) }

func (t *txBase) copyBase() txBase {
	return txBase{
		txType:   t.txType,
		nonce:    copyBig(t.nonce),
		gasPrice: copyBig(t.gasPrice),
		gas:      copyBig(t.gas),
		chainID:  copyBig(t.chainID),
		from:     copyAddr(t.from),
		sigs:     keyring.CopySignatures(t.sigs),
	}
}

// equalBase compares the shared non-signature fields. The chain id is
// deliberately excluded: it is not part of the wire encoding, so decoded
// combine candidates never carry one.
func (t *txBase) equalBase(other *txBase) bool {
	return t.txType == other.txType &&
		bigEqual(t.nonce, other.nonce) &&
		bigEqual(t.gasPrice, other.gasPrice) &&
		bigEqual(t.gas, other.gas) &&
		addrEqual(t.from, other.from)
}

// feeDelegatedBase extends txBase with the fee payer identity and its
// signature list. A nil fee payer and the default zero address both mean
// "not yet bound to a fee payer".
type feeDelegatedBase struct {
	txBase
	feePayer     *common.Address
	feePayerSigs []*keyring.SignatureData
}

func newFeeDelegatedBase(txType TxType, nonce, gasPrice, gas, chainID, from string, sigs []*keyring.SignatureData, feePayer string, feePayerSigs []*keyring.SignatureData) (feeDelegatedBase, error) {
	base, err := newTxBase(txType, nonce, gasPrice, gas, chainID, from, sigs)
	if err != nil {
		return feeDelegatedBase{}, err
	}
	fd := feeDelegatedBase{txBase: base}
	if err := fd.SetFeePayer(feePayer); err != nil {
		return feeDelegatedBase{}, err
	}
	fd.feePayerSigs = keyring.CopySignatures(feePayerSigs)
	return fd, nil
}

func (t *feeDelegatedBase) FeePayer() *common.Address { return t.feePayer }

func (t *feeDelegatedBase) FeePayerSignatures() []*keyring.SignatureData {
	return t.feePayerSigs
}

func (t *feeDelegatedBase) SetFeePayer(value string) error {
	parsed, err := parseAddress(value, "feePayer")
	if err != nil {
		return err
	}
	t.feePayer = normalizeFeePayer(parsed)
	return nil
}

func (t *feeDelegatedBase) AppendFeePayerSignatures(sigs ...*keyring.SignatureData) {
	incoming := make([]*keyring.SignatureData, 0, len(sigs))
	for _, sig := range sigs {
		if sig != nil {
			incoming = append(incoming, sig.Copy())
		}
	}
	if len(incoming) == 0 {
		return
	}
	if len(t.feePayerSigs) == 1 && t.feePayerSigs[0].IsEmpty() {
		t.feePayerSigs = nil
	}
	t.feePayerSigs = append(t.feePayerSigs, incoming...)
}

func (t *feeDelegatedBase) setFeePayerAddr(addr *common.Address) {
	t.feePayer = copyAddr(addr)
}

func (t *feeDelegatedBase) copyFeeDelegatedBase() feeDelegatedBase {
	return feeDelegatedBase{
		txBase:       t.txBase.copyBase(),
		feePayer:     copyAddr(t.feePayer),
		feePayerSigs: keyring.CopySignatures(t.feePayerSigs),
	}
}

func (t *feeDelegatedBase) equalFeeDelegatedBase(other *feeDelegatedBase) bool {
	return t.equalBase(&other.txBase) && addrEqual(t.feePayer, other.feePayer)
}
