// Package token issues and validates the service's self-contained
// session tokens: compact HS256 JWTs carrying sub, iat and exp.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kakao-auth-service/internal/auth"
)

// MinKeyBytes is the smallest accepted signing key: 256 bits.
const MinKeyBytes = 32

// Claims are the validated contents of a session token.
type Claims struct {
	Subject   int64 // local user id
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and validates session tokens with a process-wide
// symmetric key. It holds no mutable state after construction and is
// safe for concurrent use.
type Codec struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option configures the Codec.
type Option func(*Codec)

// WithNow overrides the wall clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec creates a Codec. The secret must be at least 256 bits and
// both lifetimes positive, otherwise the service must not start.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) < MinKeyBytes {
		return nil, fmt.Errorf("token: signing key must be at least %d bytes", MinKeyBytes)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, fmt.Errorf("token: lifetimes must be positive")
	}

	c := &Codec{
		key:        []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Issue builds a signed token for the given subject expiring after
// lifetime. Access and refresh tokens differ only by lifetime.
func (c *Codec) Issue(subject int64, lifetime time.Duration) (string, error) {
	now := c.now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subject, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// IssueAccess issues a short-lived access token.
func (c *Codec) IssueAccess(subject int64) (string, error) {
	return c.Issue(subject, c.accessTTL)
}

// IssueRefresh issues a long-lived refresh token.
func (c *Codec) IssueRefresh(subject int64) (string, error) {
	return c.Issue(subject, c.refreshTTL)
}

// AccessTTL returns the configured access-token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Validate parses and verifies a token string. Any structural problem,
// signature mismatch or expiry reduces to auth.ErrInvalidToken; a token
// issued in the future is deliberately not rejected.
func (c *Codec) Validate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	var registered jwt.RegisteredClaims
	parsed, err := parser.ParseWithClaims(tokenString, &registered, func(t *jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, auth.ErrInvalidToken
	}

	subject, err := strconv.ParseInt(registered.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric subject", auth.ErrInvalidToken)
	}

	claims := &Claims{Subject: subject}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
