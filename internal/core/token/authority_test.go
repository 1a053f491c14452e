package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

type failingStore struct {
	err error
}

func (s *failingStore) Add(context.Context, string, time.Duration) error { return s.err }

func (s *failingStore) Contains(context.Context, string) (bool, error) { return false, s.err }

func TestAuthority_IssueAuthenticate_Roundtrip(t *testing.T) {
	a := NewAuthority("secret", time.Hour, NewMemoryRevocationStore())

	raw, err := a.Issue(42)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := a.Authenticate(context.Background(), raw)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
	if claims.ID == "" {
		t.Fatalf("expected a non-empty jti")
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected an expiry claim")
	}
}

func TestAuthority_Issue_UniqueJTI(t *testing.T) {
	a := NewAuthority("secret", time.Hour, NewMemoryRevocationStore())

	first, _ := a.Issue(1)
	second, _ := a.Issue(1)

	c1, err := a.Authenticate(context.Background(), first)
	if err != nil {
		t.Fatalf("Authenticate(first): %v", err)
	}
	c2, err := a.Authenticate(context.Background(), second)
	if err != nil {
		t.Fatalf("Authenticate(second): %v", err)
	}
	if c1.ID == c2.ID {
		t.Fatalf("expected distinct jti values, both were %q", c1.ID)
	}
}

func TestAuthority_Authenticate_WrongSecret(t *testing.T) {
	issuer := NewAuthority("secret-a", time.Hour, NewMemoryRevocationStore())
	verifier := NewAuthority("secret-b", time.Hour, NewMemoryRevocationStore())

	raw, _ := issuer.Issue(7)
	if _, err := verifier.Authenticate(context.Background(), raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthority_Authenticate_Expired(t *testing.T) {
	a := NewAuthority("secret", time.Hour, NewMemoryRevocationStore())

	past := time.Now().UTC().Add(-time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired-jti",
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
		UserID: 1,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := a.Authenticate(context.Background(), raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthority_Authenticate_MissingJTI(t *testing.T) {
	a := NewAuthority("secret", time.Hour, NewMemoryRevocationStore())

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: 1,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := a.Authenticate(context.Background(), raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthority_Revoke(t *testing.T) {
	a := NewAuthority("secret", time.Hour, NewMemoryRevocationStore())
	ctx := context.Background()

	raw, _ := a.Issue(5)
	claims, err := a.Authenticate(ctx, raw)
	if err != nil {
		t.Fatalf("Authenticate before revoke: %v", err)
	}

	if err := a.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if _, err := a.Authenticate(ctx, raw); !errors.Is(err, domain.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}

	// Revoking the same jti again is a no-op.
	if err := a.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		t.Fatalf("second Revoke returned error: %v", err)
	}
}

func TestAuthority_Revoke_ExpiredIsNoop(t *testing.T) {
	store := NewMemoryRevocationStore()
	a := NewAuthority("secret", time.Hour, store)
	ctx := context.Background()

	if err := a.Revoke(ctx, "stale-jti", time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("Revoke of expired token returned error: %v", err)
	}
	revoked, err := store.Contains(ctx, "stale-jti")
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if revoked {
		t.Fatalf("expired token should not enter the revocation set")
	}
}

func TestAuthority_Revoke_EmptyJTI(t *testing.T) {
	a := NewAuthority("secret", time.Hour, NewMemoryRevocationStore())
	if err := a.Revoke(context.Background(), "", time.Now().Add(time.Hour)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthority_Authenticate_StoreFailureFailsClosed(t *testing.T) {
	storeErr := errors.New("store down")
	a := NewAuthority("secret", time.Hour, &failingStore{err: storeErr})

	raw, _ := a.Issue(9)
	_, err := a.Authenticate(context.Background(), raw)
	if err == nil {
		t.Fatalf("expected error when revocation store is unavailable")
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if IsAuthError(err) {
		t.Fatalf("store failure must not look like an auth failure")
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(domain.ErrInvalidToken) || !IsAuthError(domain.ErrTokenRevoked) {
		t.Fatalf("expected token errors to be classed as auth errors")
	}
	if IsAuthError(errors.New("boom")) {
		t.Fatalf("arbitrary errors are not auth errors")
	}
}
