package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

type catalogService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewCatalogService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CatalogService {
	return &catalogService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func normalizeFilters(filters models.CatalogFilters) models.CatalogFilters {
	return models.CatalogFilters{
		Category: strings.TrimSpace(filters.Category),
		Kind:     strings.TrimSpace(filters.Kind),
		Search:   strings.TrimSpace(filters.Search),
	}
}

// ===== DIET FOODS =====

func (s *catalogService) ListDietFoods(ctx context.Context, filters models.CatalogFilters) ([]*models.DietFood, error) {
	foods, err := s.repo.DietFood().List(ctx, normalizeFilters(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to list diet foods: %w", err)
	}
	return foods, nil
}

func (s *catalogService) GetDietFood(ctx context.Context, id string) (*models.DietFood, error) {
	food, err := s.repo.DietFood().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgDietFoodNotFound, "failed to get diet food")
	}
	return food, nil
}

func (s *catalogService) CreateDietFood(ctx context.Context, caller models.Principal, req *DietFoodRequest) (*models.DietFood, error) {
	if err := requireCapability(caller, models.CapManageCatalog, "diet_foods", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	food := newDietFood(req)
	now := s.now()
	food.CreatedBy = caller.ID
	food.CreatedAt = now
	food.UpdatedAt = now

	if err := s.repo.DietFood().Create(ctx, food); err != nil {
		return nil, fmt.Errorf("failed to create diet food: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Diet food created", "food_id", food.ID, "created_by", caller.ID)
	return food, nil
}

func (s *catalogService) UpdateDietFood(ctx context.Context, caller models.Principal, id string, req *DietFoodRequest) (*models.DietFood, error) {
	if err := requireCapability(caller, models.CapManageCatalog, "diet_foods", "update"); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	existing, err := s.repo.DietFood().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgDietFoodNotFound, "failed to get diet food")
	}

	food := newDietFood(req)
	food.ID = existing.ID
	food.CreatedBy = existing.CreatedBy
	food.CreatedAt = existing.CreatedAt
	food.UpdatedAt = s.now()

	if err := s.repo.DietFood().Update(ctx, food); err != nil {
		return nil, notFoundOr(err, msgDietFoodNotFound, "failed to update diet food")
	}

	utils.WithContext(ctx, s.logger).Info("Diet food updated", "food_id", id, "updated_by", caller.ID)
	return food, nil
}

func (s *catalogService) DeleteDietFood(ctx context.Context, caller models.Principal, id string) error {
	if err := requireCapability(caller, models.CapManageCatalog, "diet_foods", "delete"); err != nil {
		return err
	}
	if err := s.repo.DietFood().Delete(ctx, id); err != nil {
		return notFoundOr(err, msgDietFoodNotFound, "failed to delete diet food")
	}

	utils.WithContext(ctx, s.logger).Info("Diet food deleted", "food_id", id, "deleted_by", caller.ID)
	return nil
}

func newDietFood(req *DietFoodRequest) *models.DietFood {
	food := &models.DietFood{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Category:       strings.TrimSpace(req.Category),
		DietType:       strings.TrimSpace(req.DietType),
		Calories:       req.Calories,
		Protein:        req.Protein,
		Carbs:          req.Carbs,
		Fat:            req.Fat,
		Fiber:          req.Fiber,
		Sugar:          req.Sugar,
		Sodium:         req.Sodium,
		ServingSize:    strings.TrimSpace(req.ServingSize),
		Ingredients:    nonNil(req.Ingredients),
		Instructions:   nonNil(req.Instructions),
		ImageURL:       req.ImageURL,
		NutritionFacts: req.NutritionFacts,
	}
	if food.DietType == "" {
		food.DietType = models.DefaultDietType
	}
	if food.ServingSize == "" {
		food.ServingSize = models.DefaultServingSize
	}
	return food
}

// ===== EXERCISES =====

func (s *catalogService) ListExercises(ctx context.Context, filters models.CatalogFilters) ([]*models.Exercise, error) {
	exercises, err := s.repo.Exercise().List(ctx, normalizeFilters(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

func (s *catalogService) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	exercise, err := s.repo.Exercise().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgExerciseNotFound, "failed to get exercise")
	}
	return exercise, nil
}

func (s *catalogService) CreateExercise(ctx context.Context, caller models.Principal, req *ExerciseRequest) (*models.Exercise, error) {
	if err := requireCapability(caller, models.CapManageCatalog, "exercises", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	exercise := newExercise(req)
	now := s.now()
	exercise.CreatedBy = caller.ID
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if err := s.repo.Exercise().Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Exercise created", "exercise_id", exercise.ID, "created_by", caller.ID)
	return exercise, nil
}

func (s *catalogService) UpdateExercise(ctx context.Context, caller models.Principal, id string, req *ExerciseRequest) (*models.Exercise, error) {
	if err := requireCapability(caller, models.CapManageCatalog, "exercises", "update"); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	existing, err := s.repo.Exercise().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgExerciseNotFound, "failed to get exercise")
	}

	exercise := newExercise(req)
	exercise.ID = existing.ID
	exercise.CreatedBy = existing.CreatedBy
	exercise.CreatedAt = existing.CreatedAt
	exercise.UpdatedAt = s.now()

	if err := s.repo.Exercise().Update(ctx, exercise); err != nil {
		return nil, notFoundOr(err, msgExerciseNotFound, "failed to update exercise")
	}

	utils.WithContext(ctx, s.logger).Info("Exercise updated", "exercise_id", id, "updated_by", caller.ID)
	return exercise, nil
}

func (s *catalogService) DeleteExercise(ctx context.Context, caller models.Principal, id string) error {
	if err := requireCapability(caller, models.CapManageCatalog, "exercises", "delete"); err != nil {
		return err
	}
	if err := s.repo.Exercise().Delete(ctx, id); err != nil {
		return notFoundOr(err, msgExerciseNotFound, "failed to delete exercise")
	}

	utils.WithContext(ctx, s.logger).Info("Exercise deleted", "exercise_id", id, "deleted_by", caller.ID)
	return nil
}

func newExercise(req *ExerciseRequest) *models.Exercise {
	exercise := &models.Exercise{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Category:       strings.TrimSpace(req.Category),
		Difficulty:     models.Difficulty(req.Difficulty),
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Instructions:   nonNil(req.Instructions),
		Equipment:      nonNil(req.Equipment),
		MuscleGroups:   nonNil(req.MuscleGroups),
		VideoURL:       req.VideoURL,
		ImageURL:       req.ImageURL,
	}
	if exercise.Difficulty == "" {
		exercise.Difficulty = models.DifficultyBeginner
	}
	return exercise
}

// nonNil keeps empty lists serialized as [] rather than null
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
