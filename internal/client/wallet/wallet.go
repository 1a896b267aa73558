// Package wallet holds the secp256k1 key that proves address ownership at
// login.
package wallet

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/cryptox"
	"github.com/dmitrijs2005/gophboard/internal/ethmsg"
	"github.com/ethereum/go-ethereum/crypto"
)

// LoginMessage is the text every login signs. A nonce line is appended so
// no two signatures are alike.
const LoginMessage = "Login authentication message"

var (
	ErrKeyExists          = errors.New("key file already exists")
	ErrPassphraseRequired = errors.New("key file is encrypted")
)

type Wallet struct {
	key *ecdsa.PrivateKey
}

func Generate() (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &Wallet{key: key}, nil
}

// FromHex parses a hex private key, with or without a 0x prefix.
func FromHex(s string) (*Wallet, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, fmt.Errorf("parse key: %w", err)
	}
	return &Wallet{key: key}, nil
}

// Load reads a hex private key from path. A file written by SaveEncrypted
// yields ErrPassphraseRequired.
func Load(path string) (*Wallet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if isSealed(b) {
		return nil, ErrPassphraseRequired
	}
	return FromHex(string(b))
}

// LoadEncrypted reads a key file written by SaveEncrypted. Plain key files
// are accepted too.
func LoadEncrypted(path string, passphrase []byte) (*Wallet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if !isSealed(b) {
		return FromHex(string(b))
	}

	var sealed cryptox.Sealed
	if err := json.Unmarshal(b, &sealed); err != nil {
		return nil, fmt.Errorf("parse key file: %w", err)
	}
	secret, err := cryptox.Open(&sealed, passphrase)
	if err != nil {
		return nil, err
	}
	defer clear(secret)
	return FromHex(string(secret))
}

func isSealed(b []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(b), []byte("{"))
}

// Save writes the key to path with owner-only permissions. An existing file
// is never overwritten.
func (w *Wallet) Save(path string) error {
	return writeNew(path, []byte(w.Hex()+"\n"))
}

// SaveEncrypted is Save with the key sealed under passphrase.
func (w *Wallet) SaveEncrypted(path string, passphrase []byte) error {
	secret := []byte(w.Hex())
	defer clear(secret)

	sealed, err := cryptox.Seal(secret, passphrase)
	if err != nil {
		return fmt.Errorf("seal key: %w", err)
	}
	b, err := json.Marshal(sealed)
	if err != nil {
		return err
	}
	return writeNew(path, append(b, '\n'))
}

func writeNew(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create key dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrKeyExists, path)
		}
		return fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	return f.Sync()
}

// Address is the EIP-55 checksum address of the key.
func (w *Wallet) Address() string {
	return ethmsg.AddressOf(w.key)
}

// Hex returns the private key without 0x prefix.
func (w *Wallet) Hex() string {
	return fmt.Sprintf("%x", crypto.FromECDSA(w.key))
}

func (w *Wallet) Sign(message string) (string, error) {
	return ethmsg.Sign(w.key, []byte(message))
}

// SignLogin builds a fresh login message and signs it.
func (w *Wallet) SignLogin() (message, signature string, err error) {
	nonce, err := common.MakeRandHexString(16)
	if err != nil {
		return "", "", fmt.Errorf("nonce: %w", err)
	}
	message = LoginMessage + "\nnonce: " + nonce
	signature, err = w.Sign(message)
	if err != nil {
		return "", "", err
	}
	return message, signature, nil
}
