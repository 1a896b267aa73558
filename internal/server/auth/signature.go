package auth

import (
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/ethmsg"
)

// VerifySignature checks that signature over message was produced by the key
// behind address and returns the address in checksum form. Malformed
// signatures and foreign signers both report common.ErrAddressMismatch.
func VerifySignature(address, message, signature string) (string, error) {
	claimed, err := ethmsg.NormalizeAddress(address)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidBody, err)
	}

	signer, err := ethmsg.Recover([]byte(message), signature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrAddressMismatch, err)
	}

	if signer != claimed {
		return "", common.ErrAddressMismatch
	}
	return claimed, nil
}
