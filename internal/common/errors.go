// Package common defines shared constants and sentinel errors used across
// client and server layers of gophboard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Credential errors.
	ErrUnauthorized    = errors.New("unauthorised")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrAddressMismatch = errors.New("address mismatched")

	// Request validation errors.
	ErrInvalidBody = errors.New("invalid body")

	// Board errors.
	ErrItemNotFound      = errors.New("item not found")
	ErrItemOrderNotFound = errors.New("item order not found")
)
