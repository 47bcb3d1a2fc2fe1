package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"

	"github/chapool/go-txcore/chainerrors"
)

const (
	keystoreVersion = 3
	keystoreCipher  = "aes-128-ctr"
	keystoreKDF     = "scrypt"

	scryptDKLen = 32
	scryptN     = 262144 // 2^18
	scryptR     = 8
	scryptP     = 1
)

// Keystore is an Ethereum keystore v3 document holding an encrypted
// private key. Persisting it is up to the caller; this package only
// produces and consumes the in-memory form.
type Keystore struct {
	Version int        `json:"version"`
	ID      string     `json:"id"`
	Address string     `json:"address"`
	Crypto  CryptoJSON `json:"crypto"`
}

// CryptoJSON is the crypto section of a keystore v3 document.
type CryptoJSON struct {
	Cipher       string `json:"cipher"`
	Ciphertext   string `json:"ciphertext"`
	CipherParams struct {
		IV string `json:"iv"`
	} `json:"cipherparams"`
	KDF       string `json:"kdf"`
	KDFParams struct {
		DKLen int    `json:"dklen"`
		Salt  string `json:"salt"`
		N     int    `json:"n"`
		R     int    `json:"r"`
		P     int    `json:"p"`
	} `json:"kdfparams"`
	MAC string `json:"mac"`
}

// Encrypt encrypts key into a keystore v3 document: scrypt-derived key,
// AES-128-CTR cipher, keccak256 MAC over derivedKey[16:32] || ciphertext.
func Encrypt(key *PrivateKey, password string) (*Keystore, error) {
	salt, err := randomBytes(32)
	if err != nil {
		return nil, err
	}
	iv, err := randomBytes(aes.BlockSize)
	if err != nil {
		return nil, err
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptDKLen)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "failed to derive encryption key", err)
	}

	ciphertext, err := xorAES128CTR(derivedKey[:16], iv, key.Bytes())
	if err != nil {
		return nil, err
	}
	mac := crypto.Keccak256(derivedKey[16:32], ciphertext)

	doc := &Keystore{
		Version: keystoreVersion,
		ID:      uuid.New().String(),
		Address: strings.ToLower(key.Address().Hex()),
	}
	doc.Crypto.Cipher = keystoreCipher
	doc.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	doc.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	doc.Crypto.KDF = keystoreKDF
	doc.Crypto.KDFParams.DKLen = scryptDKLen
	doc.Crypto.KDFParams.Salt = hex.EncodeToString(salt)
	doc.Crypto.KDFParams.N = scryptN
	doc.Crypto.KDFParams.R = scryptR
	doc.Crypto.KDFParams.P = scryptP
	doc.Crypto.MAC = hex.EncodeToString(mac)

	return doc, nil
}

// Decrypt verifies the MAC of a keystore v3 document and recovers its
// private key. A wrong password surfaces as a MAC mismatch.
func Decrypt(doc *Keystore, password string) (*PrivateKey, error) {
	if doc.Version != keystoreVersion {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "unsupported keystore version %d", doc.Version)
	}
	if doc.Crypto.KDF != keystoreKDF {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "unsupported KDF %q", doc.Crypto.KDF)
	}
	if doc.Crypto.Cipher != keystoreCipher {
		return nil, chainerrors.Newf(chainerrors.CodeInvalidArgument, "unsupported cipher %q", doc.Crypto.Cipher)
	}

	salt, err := hex.DecodeString(doc.Crypto.KDFParams.Salt)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "failed to decode salt", err)
	}
	iv, err := hex.DecodeString(doc.Crypto.CipherParams.IV)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "failed to decode IV", err)
	}
	ciphertext, err := hex.DecodeString(doc.Crypto.Ciphertext)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "failed to decode ciphertext", err)
	}
	expectedMAC, err := hex.DecodeString(doc.Crypto.MAC)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "failed to decode MAC", err)
	}

	params := doc.Crypto.KDFParams
	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "failed to derive encryption key", err)
	}

	mac := crypto.Keccak256(derivedKey[16:32], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return nil, chainerrors.New(chainerrors.CodeInvalidArgument, "invalid password: MAC mismatch")
	}

	plaintext, err := xorAES128CTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return nil, err
	}

	return NewPrivateKeyFromBytes(plaintext)
}

// xorAES128CTR runs AES-128-CTR over data; CTR mode makes encryption and
// decryption the same operation.
func xorAES128CTR(key, iv, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, chainerrors.Wrap(chainerrors.CodeInvalidArgument, "failed to create cipher", err)
	}

	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, data)

	return out, nil
}
