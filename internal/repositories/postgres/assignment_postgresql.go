package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

func applyAssignmentFilters(query *gorm.DB, filters repositories.AssignmentFilters) *gorm.DB {
	if filters.StudentID != "" {
		query = query.Where("student_id = ?", filters.StudentID)
	}
	return query.Order("created_at DESC")
}

// ===== DIET ASSIGNMENTS =====

type dietAssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewDietAssignmentPostgreSQL(db *gorm.DB) repositories.DietAssignmentRepository {
	return &dietAssignmentPostgreSQL{db: db}
}

func (r *dietAssignmentPostgreSQL) Create(ctx context.Context, assignment *models.DietAssignment) error {
	if assignment.ID == "" {
		assignment.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return handleDBError(err, "create diet assignment")
	}
	return nil
}

func (r *dietAssignmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.DietAssignment, error) {
	var assignment models.DietAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, handleDBError(err, "get diet assignment by id")
	}
	return &assignment, nil
}

func (r *dietAssignmentPostgreSQL) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.DietAssignment, error) {
	assignments := make([]*models.DietAssignment, 0)
	if err := applyAssignmentFilters(r.db.WithContext(ctx), filters).Find(&assignments).Error; err != nil {
		return nil, handleDBError(err, "list diet assignments")
	}
	return assignments, nil
}

func (r *dietAssignmentPostgreSQL) Update(ctx context.Context, assignment *models.DietAssignment) error {
	result := r.db.WithContext(ctx).Model(assignment).Select("*").Updates(assignment)
	return requireAffected(result, "update diet assignment")
}

func (r *dietAssignmentPostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DietAssignment{})
	return requireAffected(result, "delete diet assignment")
}

// ===== EXERCISE ASSIGNMENTS =====

type exerciseAssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewExerciseAssignmentPostgreSQL(db *gorm.DB) repositories.ExerciseAssignmentRepository {
	return &exerciseAssignmentPostgreSQL{db: db}
}

func (r *exerciseAssignmentPostgreSQL) Create(ctx context.Context, assignment *models.ExerciseAssignment) error {
	if assignment.ID == "" {
		assignment.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return handleDBError(err, "create exercise assignment")
	}
	return nil
}

func (r *exerciseAssignmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.ExerciseAssignment, error) {
	var assignment models.ExerciseAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, handleDBError(err, "get exercise assignment by id")
	}
	return &assignment, nil
}

func (r *exerciseAssignmentPostgreSQL) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.ExerciseAssignment, error) {
	assignments := make([]*models.ExerciseAssignment, 0)
	if err := applyAssignmentFilters(r.db.WithContext(ctx), filters).Find(&assignments).Error; err != nil {
		return nil, handleDBError(err, "list exercise assignments")
	}
	return assignments, nil
}

func (r *exerciseAssignmentPostgreSQL) Update(ctx context.Context, assignment *models.ExerciseAssignment) error {
	result := r.db.WithContext(ctx).Model(assignment).Select("*").Updates(assignment)
	return requireAffected(result, "update exercise assignment")
}

func (r *exerciseAssignmentPostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ExerciseAssignment{})
	return requireAffected(result, "delete exercise assignment")
}
