// Package auth issues and verifies the signed bearer tokens that identify
// users between requests.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yourplaces/backend/internal/common"
)

// Claims carries the registered JWT claims plus the identity payload the
// rest of the server works with.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Email  string
}

// GenerateToken signs a {userID, email} payload with HS256 and the given
// validity window.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns its
// claims. Any failure (malformed, expired, tampered) yields
// common.ErrInvalidToken so callers cannot tell the cases apart.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
