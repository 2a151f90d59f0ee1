package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// applyCatalogFilters narrows a catalog query; kindColumn is diet_type or difficulty
func applyCatalogFilters(query *gorm.DB, filters models.CatalogFilters, kindColumn string) *gorm.DB {
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Kind != "" {
		query = query.Where(kindColumn+" = ?", filters.Kind)
	}
	if filters.Search != "" {
		pattern := containsPattern(filters.Search)
		query = query.Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}
	return query.Order("created_at DESC")
}

func countIDs(ctx context.Context, db *gorm.DB, model interface{}, ids []string) (int64, error) {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := db.WithContext(ctx).Model(model).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// ===== DIET FOODS =====

type dietFoodPostgreSQL struct {
	db *gorm.DB
}

func NewDietFoodPostgreSQL(db *gorm.DB) repositories.DietFoodRepository {
	return &dietFoodPostgreSQL{db: db}
}

func (r *dietFoodPostgreSQL) Create(ctx context.Context, food *models.DietFood) error {
	if food.ID == "" {
		food.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return handleDBError(err, "create diet food")
	}
	return nil
}

func (r *dietFoodPostgreSQL) GetByID(ctx context.Context, id string) (*models.DietFood, error) {
	var food models.DietFood
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&food).Error; err != nil {
		return nil, handleDBError(err, "get diet food by id")
	}
	return &food, nil
}

func (r *dietFoodPostgreSQL) List(ctx context.Context, filters models.CatalogFilters) ([]*models.DietFood, error) {
	foods := make([]*models.DietFood, 0)
	query := applyCatalogFilters(r.db.WithContext(ctx), filters, "diet_type")
	if err := query.Find(&foods).Error; err != nil {
		return nil, handleDBError(err, "list diet foods")
	}
	return foods, nil
}

func (r *dietFoodPostgreSQL) Update(ctx context.Context, food *models.DietFood) error {
	result := r.db.WithContext(ctx).Model(food).Select("*").Updates(food)
	return requireAffected(result, "update diet food")
}

func (r *dietFoodPostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DietFood{})
	return requireAffected(result, "delete diet food")
}

func (r *dietFoodPostgreSQL) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	count, err := countIDs(ctx, r.db, &models.DietFood{}, ids)
	return count, handleDBError(err, "count diet foods")
}

// ===== EXERCISES =====

type exercisePostgreSQL struct {
	db *gorm.DB
}

func NewExercisePostgreSQL(db *gorm.DB) repositories.ExerciseRepository {
	return &exercisePostgreSQL{db: db}
}

func (r *exercisePostgreSQL) Create(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return handleDBError(err, "create exercise")
	}
	return nil
}

func (r *exercisePostgreSQL) GetByID(ctx context.Context, id string) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&exercise).Error; err != nil {
		return nil, handleDBError(err, "get exercise by id")
	}
	return &exercise, nil
}

func (r *exercisePostgreSQL) List(ctx context.Context, filters models.CatalogFilters) ([]*models.Exercise, error) {
	exercises := make([]*models.Exercise, 0)
	query := applyCatalogFilters(r.db.WithContext(ctx), filters, "difficulty")
	if err := query.Find(&exercises).Error; err != nil {
		return nil, handleDBError(err, "list exercises")
	}
	return exercises, nil
}

func (r *exercisePostgreSQL) Update(ctx context.Context, exercise *models.Exercise) error {
	result := r.db.WithContext(ctx).Model(exercise).Select("*").Updates(exercise)
	return requireAffected(result, "update exercise")
}

func (r *exercisePostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Exercise{})
	return requireAffected(result, "delete exercise")
}

func (r *exercisePostgreSQL) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	count, err := countIDs(ctx, r.db, &models.Exercise{}, ids)
	return count, handleDBError(err, "count exercises")
}
