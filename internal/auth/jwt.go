package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the principal inside a signed session token
type Claims struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          models.UserRole `json:"role"`
	AccountNumber string          `json:"accountNumber"`
	jwt.RegisteredClaims
}

// Principal rebuilds the typed identity from the claims
func (c *Claims) Principal() models.Principal {
	return models.Principal{
		ID:            c.Subject,
		Name:          c.Name,
		Email:         c.Email,
		Role:          c.Role,
		AccountNumber: c.AccountNumber,
	}
}

// IssuedToken is a signed token plus the claims it was built from
type IssuedToken struct {
	Token     string
	Claims    *Claims
	ExpiresAt time.Time
}

// JWTManager handles session token creation and validation (HS256)
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a token manager; secret must not be empty
func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// GenerateToken signs a token for the principal with a unique id
func (m *JWTManager) GenerateToken(p models.Principal) (*IssuedToken, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		Name:          p.Name,
		Email:         p.Email,
		Role:          p.Role,
		AccountNumber: p.AccountNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{Token: signed, Claims: claims, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and verifies a token, rejecting non-HS256 algorithms
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}
