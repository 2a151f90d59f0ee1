package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/gym-service/internal/auth"
	"github.com/SAP-F-2025/gym-service/internal/cache"
	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories/memory"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

type testEnv struct {
	repo   *memory.Repository
	logger *slog.Logger
	valid  *validator.Validator
	authn  *auth.Authenticator
	hasher auth.PasswordHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	revocations := auth.NewRevocationStore(cache.NewCacheManager(nil).Sessions)

	return &testEnv{
		repo:   memory.NewRepository(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		valid:  validator.New(),
		authn:  auth.NewAuthenticator(tokens, revocations),
		hasher: auth.NewBcryptHasher(bcrypt.MinCost),
	}
}

func (e *testEnv) accounts() *accountService {
	return NewAccountService(e.repo, e.authn, e.hasher, e.logger, e.valid, "http://gym.test/").(*accountService)
}

// seedUser inserts a user directly and returns its principal
func (e *testEnv) seedUser(t *testing.T, name string, role models.UserRole) models.Principal {
	t.Helper()

	count, _ := e.repo.User().Count(context.Background())
	user := &models.User{
		Name:          name,
		Email:         name + "@gym.test",
		Role:          role,
		AccountNumber: models.FormatAccountNumber(count + 1),
		Status:        models.UserStatusActive,
		CreatedAt:     time.Now().UTC().Add(time.Duration(count) * time.Second),
	}
	if err := e.repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return user.Principal()
}

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

func intPtr(v int) *int { return &v }
