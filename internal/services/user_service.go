package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== DIRECTORY =====

func (s *userService) List(ctx context.Context, caller models.Principal) ([]*models.User, error) {
	return s.list(ctx, caller, repositories.UserFilters{})
}

func (s *userService) Students(ctx context.Context, caller models.Principal) ([]*models.User, error) {
	return s.list(ctx, caller, repositories.UserFilters{Roles: []models.UserRole{models.RoleUser}})
}

func (s *userService) Trainers(ctx context.Context, caller models.Principal) ([]*models.User, error) {
	return s.list(ctx, caller, repositories.UserFilters{Roles: []models.UserRole{models.RoleTrainer}})
}

func (s *userService) list(ctx context.Context, _ models.Principal, filters repositories.UserFilters) ([]*models.User, error) {
	users, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, _ models.Principal, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound, "failed to get user")
	}
	return user, nil
}

// ===== MUTATIONS =====

func (s *userService) Update(ctx context.Context, caller models.Principal, id string, req *UserUpdateRequest) (*models.User, error) {
	if !caller.CanActOn(id, models.CapManageUsers) {
		return nil, NewPermissionError(caller, "users", "update")
	}
	// Membership fields belong to the administrator
	if !caller.Can(models.CapManageUsers) && (req.TrainerID != nil || req.Status != nil || req.IsActive != nil) {
		return nil, NewPermissionError(caller, "users", "update_membership")
	}

	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	if req.TrainerID != nil && *req.TrainerID != "" {
		if err := s.requireTrainer(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	update := toUserUpdate(req)
	if update.IsEmpty() {
		return s.GetByID(ctx, caller, id)
	}

	user, err := s.repo.User().Update(ctx, id, update)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound, "failed to update user")
	}

	utils.WithContext(ctx, s.logger).Info("User updated", "user_id", id, "updated_by", caller.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, caller models.Principal, id string) error {
	if err := requireCapability(caller, models.CapDeleteUsers, "users", "delete"); err != nil {
		return err
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return notFoundOr(err, msgUserNotFound, "failed to delete user")
	}

	utils.WithContext(ctx, s.logger).Info("User deleted", "user_id", id, "deleted_by", caller.ID)
	return nil
}

// ===== SELF SERVICE =====

func (s *userService) Profile(ctx context.Context, caller models.Principal) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, caller.ID)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound, "failed to load profile")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, caller models.Principal, req *ProfileUpdateRequest) (*models.User, error) {
	return s.Update(ctx, caller, caller.ID, &UserUpdateRequest{
		Name:   req.Name,
		Age:    req.Age,
		Weight: req.Weight,
		Height: req.Height,
		Goal:   req.Goal,
		Level:  req.Level,
		Image:  req.Image,
	})
}

func (s *userService) requireTrainer(ctx context.Context, trainerID string) error {
	trainer, err := s.repo.User().GetByID(ctx, trainerID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewValidationError("Trainer not found", map[string]string{"trainerId": trainerID})
		}
		return fmt.Errorf("failed to load trainer: %w", err)
	}
	if trainer.Role != models.RoleTrainer {
		return NewValidationError("Assigned user is not a trainer", map[string]string{"trainerId": trainerID})
	}
	return nil
}

func toUserUpdate(req *UserUpdateRequest) *models.UserUpdate {
	update := &models.UserUpdate{
		Name:      req.Name,
		Age:       req.Age,
		Weight:    req.Weight,
		Height:    req.Height,
		Image:     req.Image,
		TrainerID: req.TrainerID,
		IsActive:  req.IsActive,
	}
	if req.Gender != nil {
		gender := models.Gender(*req.Gender)
		update.Gender = &gender
	}
	if req.Goal != nil {
		goal := models.FitnessGoal(*req.Goal)
		update.Goal = &goal
	}
	if req.Level != nil {
		level := models.FitnessLevel(*req.Level)
		update.Level = &level
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		update.Status = &status
	}
	return update
}
