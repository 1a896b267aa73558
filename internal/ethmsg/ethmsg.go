// Package ethmsg implements EIP-191 "personal_sign" messages: hashing,
// signing with a secp256k1 key and recovering the signer address.
package ethmsg

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

const signatureLength = 65

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Hash returns keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg).
func Hash(msg []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	fmt.Fprintf(h, "\x19Ethereum Signed Message:\n%d", len(msg))
	h.Write(msg)
	return h.Sum(nil)
}

// NormalizeAddress validates a hex address and returns its EIP-55 checksum
// form.
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// Sign produces a 0x-prefixed 65-byte signature with a wallet-style
// recovery id (27 or 28).
func Sign(key *ecdsa.PrivateKey, msg []byte) (string, error) {
	sig, err := crypto.Sign(Hash(msg), key)
	if err != nil {
		return "", err
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// Recover returns the checksum address that produced signature over msg.
// Recovery ids 0/1 and 27/28 are both accepted.
func Recover(msg []byte, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(sig) != signatureLength {
		return "", fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return "", fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, sig[64])
	}

	pub, err := crypto.SigToPub(Hash(msg), sig)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// AddressOf returns the checksum address controlled by key.
func AddressOf(key *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}
