// Package cryptox seals small secrets, such as a wallet key, under a
// passphrase: argon2id derives the key and AES-GCM encrypts.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// ErrDecrypt covers both a wrong passphrase and tampered data.
var ErrDecrypt = errors.New("cannot decrypt: wrong passphrase or corrupted data")

// Sealed is the stored form of an encrypted secret.
type Sealed struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// DeriveKey stretches passphrase into a 32 byte AES key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with key under a fresh random nonce.
func Encrypt(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, ErrDecrypt
	}
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// Seal encrypts secret under passphrase with a new salt.
func Seal(secret, passphrase []byte) (*Sealed, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}

	key := DeriveKey(passphrase, salt)
	defer clear(key)

	ct, nonce, err := Encrypt(secret, key)
	if err != nil {
		return nil, err
	}
	return &Sealed{Salt: salt, Nonce: nonce, Ciphertext: ct}, nil
}

// Open reverses Seal.
func Open(s *Sealed, passphrase []byte) ([]byte, error) {
	key := DeriveKey(passphrase, s.Salt)
	defer clear(key)
	return Decrypt(s.Ciphertext, s.Nonce, key)
}
