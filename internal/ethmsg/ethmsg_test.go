package ethmsg

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_MatchesGoEthereumTextHash(t *testing.T) {
	msg := []byte("sign in to gophboard")
	assert.Equal(t, accounts.TextHash(msg), Hash(msg))
}

func TestSignRecover_RoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	msg := []byte("hello board")
	sig, err := Sign(key, msg)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(sig, "0x"))

	raw, err := hex.DecodeString(sig[2:])
	require.NoError(t, err)
	require.Len(t, raw, 65)
	assert.Contains(t, []byte{27, 28}, raw[64])

	addr, err := Recover(msg, sig)
	require.NoError(t, err)
	assert.Equal(t, AddressOf(key), addr)
}

func TestRecover_AcceptsRawRecoveryID(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	msg := []byte("raw v")
	raw, err := crypto.Sign(Hash(msg), key)
	require.NoError(t, err)

	addr, err := Recover(msg, "0x"+hex.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, AddressOf(key), addr)
}

func TestRecover_DifferentMessageGivesDifferentAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := Sign(key, []byte("original"))
	require.NoError(t, err)

	addr, err := Recover([]byte("tampered"), sig)
	if err == nil {
		assert.NotEqual(t, AddressOf(key), addr)
	}
}

func TestRecover_Malformed(t *testing.T) {
	tests := []string{
		"",
		"not-hex",
		"0x1234",
		"0x" + strings.Repeat("00", 64) + "05",
	}
	for _, sig := range tests {
		_, err := Recover([]byte("m"), sig)
		assert.ErrorIs(t, err, ErrInvalidSignature, "signature %q", sig)
	}
}

func TestNormalizeAddress(t *testing.T) {
	got, err := NormalizeAddress(" 0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed ")
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", got)

	_, err = NormalizeAddress("0x123")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
