// Package auth issues and verifies bearer credentials and checks wallet
// signatures.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the owner address alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
}

func GenerateToken(address string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Address: address,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAddressFromToken validates tokenString and returns its address claim.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// validation yields common.ErrInvalidToken.
func GetAddressFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Address == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Address, nil
}
