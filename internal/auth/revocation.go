package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/cache"
	"github.com/SAP-F-2025/gym-service/internal/models"
)

// RevocationStore remembers logged-out token ids until they would have expired
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisRevocationStore struct {
	helper *cache.CacheHelper
	now    func() time.Time
}

// NewRevocationStore stores revocations through the session cache helper.
// Without redis, revocation is a no-op and every token stays valid until expiry.
func NewRevocationStore(helper *cache.CacheHelper) RevocationStore {
	return &redisRevocationStore{helper: helper, now: time.Now}
}

func (s *redisRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 || !s.helper.Available() {
		return nil
	}
	if err := s.helper.SetString(ctx, tokenID, "1", ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !s.helper.Available() {
		return false, nil
	}
	return s.helper.Exists(ctx, tokenID)
}

// Authenticator turns a raw session token into a principal
type Authenticator struct {
	tokens      *JWTManager
	revocations RevocationStore
}

func NewAuthenticator(tokens *JWTManager, revocations RevocationStore) *Authenticator {
	return &Authenticator{tokens: tokens, revocations: revocations}
}

// Issue creates a session token for the principal
func (a *Authenticator) Issue(p models.Principal) (*IssuedToken, error) {
	return a.tokens.GenerateToken(p)
}

// Authenticate validates the token and checks it has not been revoked
func (a *Authenticator) Authenticate(ctx context.Context, token string) (models.Principal, *Claims, error) {
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return models.Principal{}, nil, err
	}

	revoked, err := a.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return models.Principal{}, nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return models.Principal{}, nil, ErrInvalidToken
	}

	return claims.Principal(), claims, nil
}

// Revoke invalidates the session identified by the claims
func (a *Authenticator) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return a.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (a *Authenticator) TTL() time.Duration {
	return a.tokens.TTL()
}
