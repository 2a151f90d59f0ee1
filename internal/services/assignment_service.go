package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

type assignmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewAssignmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AssignmentService {
	return &assignmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ===== SHARED CHECKS =====

func (s *assignmentService) canRead(caller models.Principal, studentID string) error {
	if studentID == "" {
		return requireCapability(caller, models.CapAssignPlans, "assignments", "list")
	}
	if !caller.CanActOn(studentID, models.CapAssignPlans) {
		return NewPermissionError(caller, "assignments", "list")
	}
	return nil
}

// requireStudent loads the user and checks it is a member
func (s *assignmentService) requireStudent(ctx context.Context, studentID string) error {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		return notFoundOr(err, msgStudentNotFound, "failed to load student")
	}
	if student.Role != models.RoleUser {
		return NewNotFoundError(msgStudentNotFound)
	}
	return nil
}

// requireAll fails unless every distinct id is present in the catalog
func requireAll(ids []string, count func([]string) (int64, error), message, field string) error {
	distinct := slices.Clone(ids)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	found, err := count(distinct)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", field, err)
	}
	if found != int64(len(distinct)) {
		return NewValidationError(message, map[string]interface{}{field: ids})
	}
	return nil
}

func parseWindow(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse(models.DateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("fromDate must be in YYYY-MM-DD format", nil)
	}
	toDate, err := time.Parse(models.DateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, NewValidationError("toDate must be in YYYY-MM-DD format", nil)
	}
	return fromDate, toDate, nil
}

// ===== DIET ASSIGNMENTS =====

func (s *assignmentService) ListDiet(ctx context.Context, caller models.Principal, studentID string) ([]*models.DietAssignment, error) {
	if err := s.canRead(caller, studentID); err != nil {
		return nil, err
	}
	assignments, err := s.repo.DietAssignment().List(ctx, repositories.AssignmentFilters{StudentID: studentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list diet assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) CreateDiet(ctx context.Context, caller models.Principal, req *DietAssignmentRequest) (*models.DietAssignment, error) {
	if err := requireCapability(caller, models.CapAssignPlans, "diet_assignments", "create"); err != nil {
		return nil, err
	}

	assignment, err := s.buildDiet(ctx, caller, req)
	if err != nil {
		return nil, err
	}
	now := s.now()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	if err := s.repo.DietAssignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create diet assignment: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Diet assigned",
		"assignment_id", assignment.ID, "student_id", assignment.StudentID, "foods", len(assignment.Foods), "assigned_by", caller.ID)
	return assignment, nil
}

func (s *assignmentService) UpdateDiet(ctx context.Context, caller models.Principal, id string, req *DietAssignmentRequest) (*models.DietAssignment, error) {
	if err := requireCapability(caller, models.CapAssignPlans, "diet_assignments", "update"); err != nil {
		return nil, err
	}

	existing, err := s.repo.DietAssignment().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgAssignmentNotFound, "failed to get diet assignment")
	}

	assignment, err := s.buildDiet(ctx, caller, req)
	if err != nil {
		return nil, err
	}
	assignment.ID = existing.ID
	assignment.CreatedAt = existing.CreatedAt
	assignment.UpdatedAt = s.now()

	if err := s.repo.DietAssignment().Update(ctx, assignment); err != nil {
		return nil, notFoundOr(err, msgAssignmentNotFound, "failed to update diet assignment")
	}

	utils.WithContext(ctx, s.logger).Info("Diet assignment updated", "assignment_id", id, "updated_by", caller.ID)
	return assignment, nil
}

func (s *assignmentService) DeleteDiet(ctx context.Context, caller models.Principal, id string) error {
	if err := requireCapability(caller, models.CapAssignPlans, "diet_assignments", "delete"); err != nil {
		return err
	}
	if err := s.repo.DietAssignment().Delete(ctx, id); err != nil {
		return notFoundOr(err, msgAssignmentNotFound, "failed to delete diet assignment")
	}

	utils.WithContext(ctx, s.logger).Info("Diet assignment deleted", "assignment_id", id, "deleted_by", caller.ID)
	return nil
}

func (s *assignmentService) buildDiet(ctx context.Context, caller models.Principal, req *DietAssignmentRequest) (*models.DietAssignment, error) {
	if errs := s.validator.GetBusinessValidator().ValidateDietAssignment(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	fromDate, toDate, err := parseWindow(req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	assignment := &models.DietAssignment{
		StudentID:  req.StudentID,
		Foods:      req.Foods,
		FromDate:   fromDate,
		ToDate:     toDate,
		Notes:      req.Notes,
		AssignedBy: caller.ID,
	}

	count := func(ids []string) (int64, error) { return s.repo.DietFood().CountByIDs(ctx, ids) }
	if err := requireAll(assignment.FoodIDs(), count, "One or more diet foods not found", "foods"); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ===== EXERCISE ASSIGNMENTS =====

func (s *assignmentService) ListExercise(ctx context.Context, caller models.Principal, studentID string) ([]*models.ExerciseAssignment, error) {
	if err := s.canRead(caller, studentID); err != nil {
		return nil, err
	}
	assignments, err := s.repo.ExerciseAssignment().List(ctx, repositories.AssignmentFilters{StudentID: studentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) CreateExercise(ctx context.Context, caller models.Principal, req *ExerciseAssignmentRequest) (*models.ExerciseAssignment, error) {
	if err := requireCapability(caller, models.CapAssignPlans, "exercise_assignments", "create"); err != nil {
		return nil, err
	}

	assignment, err := s.buildExercise(ctx, caller, req)
	if err != nil {
		return nil, err
	}
	now := s.now()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	if err := s.repo.ExerciseAssignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create exercise assignment: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Exercises assigned",
		"assignment_id", assignment.ID, "student_id", assignment.StudentID, "exercises", len(assignment.Exercises), "assigned_by", caller.ID)
	return assignment, nil
}

func (s *assignmentService) UpdateExercise(ctx context.Context, caller models.Principal, id string, req *ExerciseAssignmentRequest) (*models.ExerciseAssignment, error) {
	if err := requireCapability(caller, models.CapAssignPlans, "exercise_assignments", "update"); err != nil {
		return nil, err
	}

	existing, err := s.repo.ExerciseAssignment().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgAssignmentNotFound, "failed to get exercise assignment")
	}

	assignment, err := s.buildExercise(ctx, caller, req)
	if err != nil {
		return nil, err
	}
	assignment.ID = existing.ID
	assignment.CreatedAt = existing.CreatedAt
	assignment.UpdatedAt = s.now()

	if err := s.repo.ExerciseAssignment().Update(ctx, assignment); err != nil {
		return nil, notFoundOr(err, msgAssignmentNotFound, "failed to update exercise assignment")
	}

	utils.WithContext(ctx, s.logger).Info("Exercise assignment updated", "assignment_id", id, "updated_by", caller.ID)
	return assignment, nil
}

func (s *assignmentService) DeleteExercise(ctx context.Context, caller models.Principal, id string) error {
	if err := requireCapability(caller, models.CapAssignPlans, "exercise_assignments", "delete"); err != nil {
		return err
	}
	if err := s.repo.ExerciseAssignment().Delete(ctx, id); err != nil {
		return notFoundOr(err, msgAssignmentNotFound, "failed to delete exercise assignment")
	}

	utils.WithContext(ctx, s.logger).Info("Exercise assignment deleted", "assignment_id", id, "deleted_by", caller.ID)
	return nil
}

func (s *assignmentService) buildExercise(ctx context.Context, caller models.Principal, req *ExerciseAssignmentRequest) (*models.ExerciseAssignment, error) {
	if errs := s.validator.GetBusinessValidator().ValidateExerciseAssignment(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	fromDate, toDate, err := parseWindow(req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	assignment := &models.ExerciseAssignment{
		StudentID:  req.StudentID,
		Exercises:  req.Exercises,
		FromDate:   fromDate,
		ToDate:     toDate,
		Notes:      req.Notes,
		AssignedBy: caller.ID,
	}

	count := func(ids []string) (int64, error) { return s.repo.Exercise().CountByIDs(ctx, ids) }
	if err := requireAll(assignment.ExerciseIDs(), count, "One or more exercises not found", "exercises"); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ===== SELF SERVICE =====

func (s *assignmentService) CurrentDiet(ctx context.Context, caller models.Principal) (*models.DietAssignment, error) {
	assignments, err := s.repo.DietAssignment().List(ctx, repositories.AssignmentFilters{StudentID: caller.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list diet assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil, NewNotFoundError("No diet assigned")
	}
	return assignments[0], nil
}

func (s *assignmentService) MyExercises(ctx context.Context, caller models.Principal) ([]*models.ExerciseAssignment, error) {
	assignments, err := s.repo.ExerciseAssignment().List(ctx, repositories.AssignmentFilters{StudentID: caller.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise assignments: %w", err)
	}
	return assignments, nil
}
