package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification error kinds. The HTTP layer collapses all of them into
// one generic 401; the distinction exists for logs and tests only.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature mismatch")
	ErrTokenExpired      = errors.New("token expired")
)

// TokenIssuer implements ports.TokenIssuer with HS256 and a server-held
// secret. Verification is a pure function of (token, clock, secret); it does
// no storage lookups.
type TokenIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
}

// NewTokenIssuer creates an issuer. now may be nil to use wall-clock time;
// tests inject a fake clock.
func NewTokenIssuer(secret []byte, issuer string, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: secret, issuer: issuer, now: now}
}

// Issue signs a token whose subject is the user's immutable ID. The expiry
// is absolute: issue time plus ttl, so ttl=0 produces a token that is
// already expired at any later verification.
func (t *TokenIssuer) Issue(userID string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and checks the token, returning the subject user ID.
// Failures are classified as ErrTokenMalformed, ErrTokenBadSignature or
// ErrTokenExpired.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenBadSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	// exp == now is already past the validity window
	if exp := claims.ExpiresAt; exp != nil && !t.now().Before(exp.Time) {
		return "", ErrTokenExpired
	}
	return claims.Subject, nil
}
