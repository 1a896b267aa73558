package wire

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

// Validate checks the request shape. Every Validate method reports failures
// wrapping common.ErrInvalidBody.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Address) == "" || r.Message == "" || r.SignedMessage == "" {
		return invalid("address, message and signedMessage are required")
	}
	return nil
}

func (r *CreateRequest) Validate() error {
	if !r.Category.Valid() {
		return invalid("unknown category %q", r.Category)
	}
	return nil
}

func (r *UpdateRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("id is required")
	}
	if !r.Category.Valid() {
		return invalid("unknown category %q", r.Category)
	}
	if r.Position < 0 {
		return invalid("position must not be negative")
	}
	return nil
}

func (r *DeleteRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("id is required")
	}
	if !r.Category.Valid() {
		return invalid("unknown category %q", r.Category)
	}
	return nil
}

func (r *DeletedRequest) Validate() error {
	if r.Offset < 0 {
		return invalid("offset must not be negative")
	}
	return nil
}

func (r *RestoreRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("id is required")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidBody, fmt.Sprintf(format, args...))
}
