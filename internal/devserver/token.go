package devserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "codechat-devserver"

var errTokenInvalid = errors.New("token is expired or invalid")

// tokenService issues and validates the dev server's HS256 access tokens.
// The subject claim carries the user's email.
type tokenService struct {
	signKey []byte
	ttl     time.Duration
}

func newTokenService(secret string, ttl time.Duration) *tokenService {
	return &tokenService{signKey: []byte(secret), ttl: ttl}
}

func (t *tokenService) issue(email string) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}
	return signed, nil
}

// parse validates the signature, issuer, and expiry, and returns the
// subject email. Any failure is normalised to errTokenInvalid so callers do
// not need to inspect low-level JWT errors.
func (t *tokenService) parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return t.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", errTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errTokenInvalid
	}
	return claims.Subject, nil
}
