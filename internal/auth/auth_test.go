package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/gym-service/internal/cache"
	"github.com/SAP-F-2025/gym-service/internal/models"
)

var testPrincipal = models.Principal{
	ID:            "u1",
	Name:          "Ann",
	Email:         "ann@x.com",
	Role:          models.RoleTrainer,
	AccountNumber: "000000000001",
}

func TestJWTManagerRoundTrip(t *testing.T) {
	m, err := NewJWTManager("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	issued, err := m.GenerateToken(testPrincipal)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if issued.Claims.ID == "" {
		t.Fatal("token id must be set")
	}

	claims, err := m.ValidateToken(issued.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if got := claims.Principal(); got != testPrincipal {
		t.Errorf("Principal() = %+v, want %+v", got, testPrincipal)
	}
}

func TestJWTManagerRejects(t *testing.T) {
	m, _ := NewJWTManager("secret", time.Hour)
	other, _ := NewJWTManager("other-secret", time.Hour)

	foreign, _ := other.GenerateToken(testPrincipal)

	expiredManager, _ := NewJWTManager("secret", time.Minute)
	expiredManager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := expiredManager.GenerateToken(testPrincipal)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	})
	noneToken, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"wrong secret": foreign.Token,
		"expired":      expired.Token,
		"alg none":     noneToken,
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)
	hash, err := h.Hash("Abcd1234")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Compare(hash, "Abcd1234") {
		t.Error("expected match")
	}
	if h.Compare(hash, "Abcd12345") {
		t.Error("expected mismatch")
	}
}

func TestAuthenticatorRevocation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	tokens, _ := NewJWTManager("secret", time.Hour)
	store := NewRevocationStore(cache.NewCacheManager(client).Sessions)
	authn := NewAuthenticator(tokens, store)
	ctx := context.Background()

	issued, err := authn.Issue(testPrincipal)
	if err != nil {
		t.Fatal(err)
	}

	principal, claims, err := authn.Authenticate(ctx, issued.Token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if principal.ID != "u1" {
		t.Fatalf("principal id = %q", principal.ID)
	}

	if err := authn.Revoke(ctx, claims); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if ttl := mr.TTL("session:revoked:" + claims.ID); ttl <= 0 || ttl > time.Hour {
		t.Errorf("revocation ttl = %v, want within token lifetime", ttl)
	}

	if _, _, err := authn.Authenticate(ctx, issued.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token must be rejected, got %v", err)
	}
}

func TestAuthenticatorWithoutRedis(t *testing.T) {
	tokens, _ := NewJWTManager("secret", time.Hour)
	authn := NewAuthenticator(tokens, NewRevocationStore(cache.NewCacheManager(nil).Sessions))
	ctx := context.Background()

	issued, _ := authn.Issue(testPrincipal)
	_, claims, err := authn.Authenticate(ctx, issued.Token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if err := authn.Revoke(ctx, claims); err != nil {
		t.Fatalf("Revoke() without redis should be a no-op, got %v", err)
	}
}
