// Package token verifies opaque access tokens carried in the "at" cookie.
// Tokens are minted and refreshed by the external auth service; this side
// only checks the signature and extracts the identity.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mlc-apps/finance-backend/internal/observability/metrics"
)

var ErrInvalidToken = errors.New("token is not valid")

type Identity struct {
	ID string
}

type Verifier interface {
	Verify(tokenString string) (Identity, error)
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(tokenString string) (Identity, error) {
	identity, err := v.verify(tokenString)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return Identity{}, err
	}
	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return identity, nil
}

func (v *JWTVerifier) verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrInvalidToken
	}

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{ID: sub}, nil
}
