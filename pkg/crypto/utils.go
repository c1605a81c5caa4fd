package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gtank/cryptopasta"
)

const (
	tagEncryption = "wallet-export-encryption"
	tagSignature  = "wallet-export-signature"
)

// Seal encrypts the plaintext with a key derived from the passphrase, base64 encodes the result
// and attaches an HMAC signature on the end, separated by a '.'.
func Seal(plaintext []byte, passphrase string) (string, error) {
	key, sig, err := keys(passphrase)
	if err != nil {
		return "", err
	}
	return Encrypt(plaintext, key, sig)
}

// Open is the inverse of Seal.
func Open(encoded, passphrase string) ([]byte, error) {
	key, sig, err := keys(passphrase)
	if err != nil {
		return nil, err
	}
	return Decrypt(encoded, key, sig)
}

// keys derives distinct encryption & signing keys from one passphrase.
func keys(passphrase string) (*[32]byte, *[32]byte, error) {
	if passphrase == "" {
		return nil, nil, fmt.Errorf("passphrase required for encryption/signing operation")
	}
	key, err := toKey(cryptopasta.Hash(tagEncryption, []byte(passphrase)))
	if err != nil {
		return nil, nil, err
	}
	sig, err := toKey(cryptopasta.Hash(tagSignature, []byte(passphrase)))
	if err != nil {
		return nil, nil, err
	}
	return key, sig, nil
}

// Decrypt checks the HMAC and decrypts the encoded data, if possible.
func Decrypt(encoded string, key, sig *[32]byte) ([]byte, error) {
	// split into cyphertext & signature
	bits := strings.SplitN(encoded, ".", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("decryption failed, encoded string invalid")
	}

	cypher, err := base64.RawURLEncoding.DecodeString(bits[0])
	if err != nil {
		return nil, err
	}

	signature, err := base64.RawURLEncoding.DecodeString(bits[1])
	if err != nil {
		return nil, err
	}

	if !cryptopasta.CheckHMAC(cypher, signature, sig) {
		return nil, fmt.Errorf("signature validation failed")
	}

	return cryptopasta.Decrypt(cypher, key)
}

// Encrypt encrypts & base64 encodes the result into a string.
// It also attaches a HMAC signature on the end.
func Encrypt(plaintext []byte, key, sig *[32]byte) (string, error) {
	// encrypt & generate signature
	cyphertext, err := cryptopasta.Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}

	signature := cryptopasta.GenerateHMAC(cyphertext, sig)

	// smoosh together and we're done
	return fmt.Sprintf(
		"%s.%s",
		base64.RawURLEncoding.EncodeToString(cyphertext),
		base64.RawURLEncoding.EncodeToString(signature),
	), nil
}

// toKey transforms a slice of at least len 32 into *[32]byte, as needed by
// cryptopasta library.
func toKey(b []byte) (*[32]byte, error) {
	if len(b) < 32 {
		return nil, fmt.Errorf("key too short for encryption/signing operation, want at least 32 bytes")
	}
	data := &[32]byte{}
	copy(data[:], b)
	return data, nil
}
