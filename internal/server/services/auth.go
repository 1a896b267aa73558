// Package services contains server-side business logic. This file implements
// AuthService, which exchanges a wallet signature for a JWT and reissues
// still-valid tokens.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/server/auth"
	"github.com/dmitrijs2005/gophboard/internal/server/config"
)

type AuthService struct {
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	log                   logging.Logger
}

func NewAuthService(cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		log:                   log.With("module", "auth"),
	}
}

// Login checks that signature over message recovers to address and issues a
// token whose address claim is the checksum form of address.
func (s *AuthService) Login(ctx context.Context, address, message, signature string) (string, error) {
	owner, err := auth.VerifySignature(address, message, signature)
	if err != nil {
		if errors.Is(err, common.ErrAddressMismatch) {
			s.log.Warn(ctx, "signature rejected", "address", address, "error", err)
		}
		return "", err
	}
	return s.issue(ctx, owner)
}

// Refresh reissues a token for an address that already presented a valid one.
func (s *AuthService) Refresh(ctx context.Context, address string) (string, error) {
	if address == "" {
		return "", common.ErrUnauthorized
	}
	return s.issue(ctx, address)
}

// Authenticate resolves a bearer token to its owner address.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	return auth.GetAddressFromToken(token, s.jwtSecret)
}

func (s *AuthService) issue(ctx context.Context, address string) (string, error) {
	token, err := auth.GenerateToken(address, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		s.log.Error(ctx, "token signing failed", "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}
