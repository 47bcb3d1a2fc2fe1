package transaction

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github/chapool/go-txcore/chainerrors"
)

// parseQuantity parses a numeric field value given as a decimal magnitude
// or a 0x-prefixed hex string. The empty string and the bare "0x" sentinel
// mean "unset" and return nil, which is distinct from the value zero.
func parseQuantity(value, field string) (*big.Int, error) {
	v := strings.TrimSpace(value)
	if v == "" || v == "0x" {
		return nil, nil
	}

	var (
		parsed *big.Int
		ok     bool
	)
	if strings.HasPrefix(v, "0x") {
		parsed, ok = new(big.Int).SetString(v[2:], 16)
	} else {
		parsed, ok = new(big.Int).SetString(v, 10)
	}
	if !ok || parsed.Sign() < 0 {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "invalid %s: %q", field, value)
	}
	return parsed, nil
}

// parseAddress parses an address field value. The empty string and the
// "0x" sentinel mean "unset" and return nil.
func parseAddress(value, field string) (*common.Address, error) {
	v := strings.TrimSpace(value)
	if v == "" || v == "0x" {
		return nil, nil
	}
	if !common.IsHexAddress(v) {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "invalid %s: %q", field, value)
	}
	addr := common.HexToAddress(v)
	return &addr, nil
}

// normalizeFeePayer maps the default zero address to the unset state: the
// wire format writes an unbound fee payer as twenty zero bytes.
func normalizeFeePayer(addr *common.Address) *common.Address {
	if addr == nil || *addr == (common.Address{}) {
		return nil
	}
	return addr
}

// parseBytes parses a byte-string field value given as 0x-prefixed hex.
// The empty string means "unset"; "0x" is a legitimate empty byte string.
func parseBytes(value, field string) ([]byte, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, nil
	}
	if v == "0x" {
		return []byte{}, nil
	}
	raw, err := hexutil.Decode(v)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "invalid "+field, err)
	}
	return raw, nil
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}

func addrEqual(a, b *common.Address) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func copyAddr(addr *common.Address) *common.Address {
	if addr == nil {
		return nil
	}
	cp := *addr
	return &cp
}
