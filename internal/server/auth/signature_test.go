package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/ethmsg"
	"github.com/ethereum/go-ethereum/crypto"
)

func TestVerifySignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	other, _ := crypto.GenerateKey()

	addr := ethmsg.AddressOf(key)
	msg := "Sign in to gophboard\nnonce: 1234"
	sig, err := ethmsg.Sign(key, []byte(msg))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	t.Run("lowercase address accepted", func(t *testing.T) {
		got, err := VerifySignature(strings.ToLower(addr), msg, sig)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != addr {
			t.Fatalf("got %q want %q", got, addr)
		}
	})

	t.Run("foreign signer", func(t *testing.T) {
		_, err := VerifySignature(ethmsg.AddressOf(other), msg, sig)
		if !errors.Is(err, common.ErrAddressMismatch) {
			t.Fatalf("expected ErrAddressMismatch, got %v", err)
		}
	})

	t.Run("tampered message", func(t *testing.T) {
		_, err := VerifySignature(addr, msg+"!", sig)
		if !errors.Is(err, common.ErrAddressMismatch) {
			t.Fatalf("expected ErrAddressMismatch, got %v", err)
		}
	})

	t.Run("garbage signature", func(t *testing.T) {
		_, err := VerifySignature(addr, msg, "0x1234")
		if !errors.Is(err, common.ErrAddressMismatch) {
			t.Fatalf("expected ErrAddressMismatch, got %v", err)
		}
	})

	t.Run("bad address", func(t *testing.T) {
		_, err := VerifySignature("nope", msg, sig)
		if !errors.Is(err, common.ErrInvalidBody) {
			t.Fatalf("expected ErrInvalidBody, got %v", err)
		}
	})
}
