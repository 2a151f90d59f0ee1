package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/gym-service/internal/auth"
	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

// accountNumberAttempts bounds retries when two registrations race for a number
const accountNumberAttempts = 3

type accountService struct {
	repo          repositories.Repository
	authenticator *auth.Authenticator
	hasher        auth.PasswordHasher
	logger        *slog.Logger
	validator     *validator.Validator
	appBaseURL    string

	now           func() time.Time
	newResetToken func() string
}

func NewAccountService(repo repositories.Repository, authenticator *auth.Authenticator, hasher auth.PasswordHasher,
	logger *slog.Logger, validator *validator.Validator, appBaseURL string) AccountService {
	return &accountService{
		repo:          repo,
		authenticator: authenticator,
		hasher:        hasher,
		logger:        logger,
		validator:     validator,
		appBaseURL:    strings.TrimRight(appBaseURL, "/"),
		now:           func() time.Time { return time.Now().UTC() },
		newResetToken: newResetToken,
	}
}

// newResetToken is two UUIDs without dashes: 64 hex characters
func newResetToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ===== REGISTRATION =====

func (s *accountService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	logger := utils.WithContext(ctx, s.logger)

	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = string(models.RoleUser)
	}

	if errs := s.validator.GetBusinessValidator().ValidateRegistration(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, NewConflictError(msgUserExists)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := s.newUser(req, hash)
	if admin, err := s.repo.User().FirstByRole(ctx, models.RoleAdmin); err == nil {
		user.AdminID = admin.ID
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		count, err := s.repo.User().Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
		user.ID = ""
		user.AccountNumber = models.FormatAccountNumber(count + 1 + int64(attempt))

		err = s.repo.User().Create(ctx, user)
		if err == nil {
			logger.Info("User registered", "user_id", user.ID, "role", user.Role, "account_number", user.AccountNumber)
			return user, nil
		}
		if !repositories.IsDuplicateError(err) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		// A duplicate on email means someone else registered it first
		if taken, checkErr := s.repo.User().ExistsByEmail(ctx, req.Email); checkErr == nil && taken {
			return nil, NewConflictError(msgUserExists)
		}
		logger.Warn("Account number collision, retrying", "account_number", user.AccountNumber)
	}

	return nil, fmt.Errorf("failed to allocate account number after %d attempts", accountNumberAttempts)
}

func (s *accountService) newUser(req *RegisterRequest, hash string) *models.User {
	now := s.now()
	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hash,
		Role:           models.UserRole(req.Role),
		Age:            req.Age,
		Weight:         req.Weight,
		Height:         req.Height,
		Gender:         models.Gender(req.Gender),
		Goal:           models.FitnessGoal(req.Goal),
		Level:          models.FitnessLevel(req.Level),
		Status:         models.UserStatusActive,
		IsActive:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if user.Role == models.RoleUser {
		if user.Goal == "" {
			user.Goal = models.GoalGetFitter
		}
		if user.Level == "" {
			user.Level = models.LevelBeginner
		}
	}

	return user
}

// ===== SESSIONS =====

func (s *accountService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	user, err := s.repo.User().GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.hasher.Compare(user.HashedPassword, req.Password) {
		utils.WithContext(ctx, s.logger).Info("Rejected login", "user_id", user.ID)
		return nil, NewUnauthorizedError(msgInvalidCredentials)
	}

	principal := user.Principal()
	issued, err := s.authenticator.Issue(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		ID:            principal.ID,
		Name:          principal.Name,
		Email:         principal.Email,
		Role:          principal.Role,
		AccountNumber: principal.AccountNumber,
		IsAdmin:       principal.IsAdmin(),
		Token:         issued.Token,
		ExpiresAt:     issued.ExpiresAt,
	}, nil
}

func (s *accountService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.authenticator.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ===== PASSWORD RESET =====

func (s *accountService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return validationFailed(errs)
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		return notFoundOr(err, msgUserNotFound, "failed to load user")
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     s.newResetToken(),
		CreatedAt: s.now(),
	}
	if err := s.repo.PasswordResetToken().Create(ctx, token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := s.appBaseURL + "/password-reset?token=" + url.QueryEscape(token.Token)
	utils.WithContext(ctx, s.logger).Info("Password reset link issued", "user_id", user.ID, "link", link)
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if errs := s.validator.GetBusinessValidator().ValidatePasswordReset(req); len(errs) > 0 {
		return validationFailed(errs)
	}

	now := s.now()
	token, err := s.repo.PasswordResetToken().FindUsable(ctx, req.Token, now.Add(-models.PasswordResetTTL))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewValidationError(msgInvalidResetToken, nil)
		}
		return fmt.Errorf("failed to load reset token: %w", err)
	}

	claimed, err := s.repo.PasswordResetToken().Consume(ctx, token.ID, now)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !claimed {
		return NewValidationError(msgInvalidResetToken, nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.User().UpdatePassword(ctx, token.UserID, hash); err != nil {
		return notFoundOr(err, msgUserNotFound, "failed to update password")
	}

	utils.WithContext(ctx, s.logger).Info("Password reset completed", "user_id", token.UserID)
	return nil
}
