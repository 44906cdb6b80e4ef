package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/verdantleaf/storefront/pkg/errors"
)

// TokenClaims is display-only metadata decoded from a bearer token. The
// client never verifies signatures and never acts on expiry; a 401 from the
// backend is the sole trigger for a forced logout.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// PeekClaims decodes a JWT without verifying it.
func PeekClaims(token string) (*TokenClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "decode token")
	}

	claims := &TokenClaims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	return claims, nil
}
