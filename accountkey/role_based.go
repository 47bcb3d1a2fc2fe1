package accountkey

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github/chapool/go-txcore/chainerrors"
)

// Roles a role-based account key assigns, in wire order.
const (
	RoleTransaction = iota
	RoleAccountUpdate
	RoleFeePayer
	roleCount
)

// Nil is the placeholder for a role left unchanged inside a role-based
// key update. It is not a valid standalone account key and encodes as the
// single byte 0x80.
type Nil struct{}

// NewNil creates a Nil role placeholder.
func NewNil() *Nil { return &Nil{} }

func (k *Nil) Tag() byte { return TagNil }

func (k *Nil) RLP() ([]byte, error) {
	return []byte{TagNil}, nil
}

func (k *Nil) accountKey() {}

func decodeNil(encoded []byte) (*Nil, error) {
	if len(encoded) != 1 {
		return nil, chainerrors.New(chainerrors.CodeStructural, "invalid nil account key encoding")
	}
	return NewNil(), nil
}

// RoleBased assigns separate keys to the transaction, account-update and
// fee-payer roles. Trailing roles may be omitted; Nil leaves a role as it
// was.
type RoleBased struct {
	roles []AccountKey
}

// NewRoleBased creates a role-based key from up to three role keys in
// wire order. Role-based keys may not nest.
func NewRoleBased(roles []AccountKey) (*RoleBased, error) {
	if len(roles) == 0 || len(roles) > roleCount {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "role-based key must hold between 1 and %d roles, got %d", roleCount, len(roles))
	}
	for _, role := range roles {
		if role == nil {
			return nil, chainerrors.New(chainerrors.CodeInvalidArgument, "role key must not be nil, use the Nil account key")
		}
		if _, nested := role.(*RoleBased); nested {
			return nil, chainerrors.New(chainerrors.CodeInvalidArgument, "role-based keys cannot be nested")
		}
	}

	return &RoleBased{roles: append([]AccountKey(nil), roles...)}, nil
}

func (k *RoleBased) Tag() byte { return TagRoleBased }

// Roles returns the role keys in wire order.
func (k *RoleBased) Roles() []AccountKey {
	return append([]AccountKey(nil), k.roles...)
}

func (k *RoleBased) RLP() ([]byte, error) {
	encodedRoles := make([][]byte, 0, len(k.roles))
	for _, role := range k.roles {
		encodedRole, err := role.RLP()
		if err != nil {
			return nil, err
		}
		encodedRoles = append(encodedRoles, encodedRole)
	}

	encoded, err := rlp.EncodeToBytes(encodedRoles)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "failed to encode role-based account key", err)
	}
	return append([]byte{TagRoleBased}, encoded...), nil
}

func (k *RoleBased) accountKey() {}

func decodeRoleBased(encoded []byte) (*RoleBased, error) {
	var encodedRoles [][]byte
	if err := rlp.DecodeBytes(encoded[1:], &encodedRoles); err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid role-based account key encoding", err)
	}

	roles := make([]AccountKey, 0, len(encodedRoles))
	for _, encodedRole := range encodedRoles {
		role, err := Decode(encodedRole)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	key, err := NewRoleBased(roles)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeStructural, "invalid role-based account key encoding", err)
	}
	return key, nil
}
