package memory

import (
	"context"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// ===== DIET ASSIGNMENTS =====

type dietAssignmentStore struct{ r *Repository }

func (s dietAssignmentStore) Create(_ context.Context, assignment *models.DietAssignment) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if assignment.ID == "" {
		assignment.ID = newID()
	}
	if _, ok := s.r.dietAssignments[assignment.ID]; ok {
		return duplicate("create diet assignment")
	}
	s.r.dietAssignments[assignment.ID] = *assignment
	return nil
}

func (s dietAssignmentStore) GetByID(_ context.Context, id string) (*models.DietAssignment, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	assignment, ok := s.r.dietAssignments[id]
	if !ok {
		return nil, notFound("get diet assignment")
	}
	return &assignment, nil
}

func (s dietAssignmentStore) List(_ context.Context, filters repositories.AssignmentFilters) ([]*models.DietAssignment, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	out := make([]*models.DietAssignment, 0)
	for _, assignment := range s.r.dietAssignments {
		if filters.StudentID != "" && assignment.StudentID != filters.StudentID {
			continue
		}
		a := assignment
		out = append(out, &a)
	}
	byNewest(out, func(a *models.DietAssignment) time.Time { return a.CreatedAt }, func(a *models.DietAssignment) string { return a.ID })
	return out, nil
}

func (s dietAssignmentStore) Update(_ context.Context, assignment *models.DietAssignment) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.dietAssignments[assignment.ID]; !ok {
		return notFound("update diet assignment")
	}
	s.r.dietAssignments[assignment.ID] = *assignment
	return nil
}

func (s dietAssignmentStore) Delete(_ context.Context, id string) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.dietAssignments[id]; !ok {
		return notFound("delete diet assignment")
	}
	delete(s.r.dietAssignments, id)
	return nil
}

// ===== EXERCISE ASSIGNMENTS =====

type exerciseAssignmentStore struct{ r *Repository }

func (s exerciseAssignmentStore) Create(_ context.Context, assignment *models.ExerciseAssignment) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if assignment.ID == "" {
		assignment.ID = newID()
	}
	if _, ok := s.r.exerciseAssignments[assignment.ID]; ok {
		return duplicate("create exercise assignment")
	}
	s.r.exerciseAssignments[assignment.ID] = *assignment
	return nil
}

func (s exerciseAssignmentStore) GetByID(_ context.Context, id string) (*models.ExerciseAssignment, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	assignment, ok := s.r.exerciseAssignments[id]
	if !ok {
		return nil, notFound("get exercise assignment")
	}
	return &assignment, nil
}

func (s exerciseAssignmentStore) List(_ context.Context, filters repositories.AssignmentFilters) ([]*models.ExerciseAssignment, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	out := make([]*models.ExerciseAssignment, 0)
	for _, assignment := range s.r.exerciseAssignments {
		if filters.StudentID != "" && assignment.StudentID != filters.StudentID {
			continue
		}
		a := assignment
		out = append(out, &a)
	}
	byNewest(out, func(a *models.ExerciseAssignment) time.Time { return a.CreatedAt }, func(a *models.ExerciseAssignment) string { return a.ID })
	return out, nil
}

func (s exerciseAssignmentStore) Update(_ context.Context, assignment *models.ExerciseAssignment) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.exerciseAssignments[assignment.ID]; !ok {
		return notFound("update exercise assignment")
	}
	s.r.exerciseAssignments[assignment.ID] = *assignment
	return nil
}

func (s exerciseAssignmentStore) Delete(_ context.Context, id string) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.exerciseAssignments[id]; !ok {
		return notFound("delete exercise assignment")
	}
	delete(s.r.exerciseAssignments, id)
	return nil
}
