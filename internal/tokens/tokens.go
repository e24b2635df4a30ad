package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "dish-service"

var ErrInvalidToken = errors.New("invalid admin token")

// AdminClaims is the payload of the admin session cookie. ID (jti) is the session id.
type AdminClaims struct {
	jwt.RegisteredClaims
}

// GenerateAdminToken signs a token naming the session sessionID for subject.
func GenerateAdminToken(secret []byte, subject, sessionID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := AdminClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAdminToken verifies signature, issuer and expiry.
func ParseAdminToken(secret []byte, raw string) (*AdminClaims, error) {
	var claims AdminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidToken)
	}
	return &claims, nil
}
