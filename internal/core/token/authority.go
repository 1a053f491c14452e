// Package token implements the stateless token authority: HS256-signed
// identity tokens with a process-wide revocation set consulted on every
// authenticated request.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// Claims embeds the registered claim set and adds the numeric user identifier.
// The jti (RegisteredClaims.ID) is the revocation key.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// RevocationStore is the process-wide set of invalidated token identifiers.
// Membership only needs the jti, never the full token. Implementations must
// tolerate concurrent Add and Contains.
type RevocationStore interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// Authority issues and validates signed identity tokens. Issuance is
// stateless; revocation is recorded in the RevocationStore until the token
// would have expired anyway.
type Authority struct {
	secret   []byte
	tokenTTL time.Duration
	revoked  RevocationStore
}

func NewAuthority(secret string, tokenTTL time.Duration, revoked RevocationStore) *Authority {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Authority{secret: []byte(secret), tokenTTL: tokenTTL, revoked: revoked}
}

// Issue creates a signed token embedding the user id and a fresh jti.
func (a *Authority) Issue(userID int64) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
		UserID: userID,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.secret)
}

// Authenticate validates a raw token and returns its claims. Checks run in
// order — signature, expiry, revocation — and short-circuit at the first
// failure. A revocation-store read error is surfaced rather than ignored so
// a revoked token can never slip through a degraded store.
func (a *Authority) Authenticate(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := a.revoked.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	return claims, nil
}

// Revoke adds the token identifier to the revocation set. Idempotent:
// revoking an already revoked jti is a no-op. The entry is kept only until
// expiresAt, after which natural expiry takes over.
func (a *Authority) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return domain.ErrInvalidToken
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return a.revoked.Add(ctx, jti, ttl)
}

// TTL returns the configured token lifetime.
func (a *Authority) TTL() time.Duration {
	return a.tokenTTL
}

// IsAuthError reports whether err belongs to the authentication failure
// class (as opposed to a store failure).
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrTokenRevoked)
}
