package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medapp/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the standard registered claims plus the
// subject's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken issues an HS256 token for email that expires after
// validityDuration.
func GenerateToken(email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies tokenString and returns the email it was
// issued for. Every failure matches common.ErrInvalidToken; an expired token
// also matches common.ErrTokenExpired.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Email == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Email, nil
}
