package memory

import (
	"context"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

func matchesCatalog(filters models.CatalogFilters, category, kind, name, description string) bool {
	if filters.Category != "" && category != filters.Category {
		return false
	}
	if filters.Kind != "" && kind != filters.Kind {
		return false
	}
	if filters.Search != "" &&
		!containsFold(name, filters.Search) &&
		!containsFold(description, filters.Search) &&
		!containsFold(category, filters.Search) {
		return false
	}
	return true
}

// ===== DIET FOODS =====

type dietFoodStore struct{ r *Repository }

func (s dietFoodStore) Create(_ context.Context, food *models.DietFood) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if food.ID == "" {
		food.ID = newID()
	}
	if _, ok := s.r.dietFoods[food.ID]; ok {
		return duplicate("create diet food")
	}
	s.r.dietFoods[food.ID] = *food
	return nil
}

func (s dietFoodStore) GetByID(_ context.Context, id string) (*models.DietFood, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	food, ok := s.r.dietFoods[id]
	if !ok {
		return nil, notFound("get diet food")
	}
	return &food, nil
}

func (s dietFoodStore) List(_ context.Context, filters models.CatalogFilters) ([]*models.DietFood, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	foods := make([]*models.DietFood, 0)
	for _, food := range s.r.dietFoods {
		if matchesCatalog(filters, food.Category, food.DietType, food.Name, food.Description) {
			f := food
			foods = append(foods, &f)
		}
	}
	byNewest(foods, func(f *models.DietFood) time.Time { return f.CreatedAt }, func(f *models.DietFood) string { return f.ID })
	return foods, nil
}

func (s dietFoodStore) Update(_ context.Context, food *models.DietFood) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.dietFoods[food.ID]; !ok {
		return notFound("update diet food")
	}
	s.r.dietFoods[food.ID] = *food
	return nil
}

func (s dietFoodStore) Delete(_ context.Context, id string) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.dietFoods[id]; !ok {
		return notFound("delete diet food")
	}
	delete(s.r.dietFoods, id)
	return nil
}

func (s dietFoodStore) CountByIDs(_ context.Context, ids []string) (int64, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	var count int64
	for _, id := range uniqueStrings(ids) {
		if _, ok := s.r.dietFoods[id]; ok {
			count++
		}
	}
	return count, nil
}

// ===== EXERCISES =====

type exerciseStore struct{ r *Repository }

func (s exerciseStore) Create(_ context.Context, exercise *models.Exercise) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if exercise.ID == "" {
		exercise.ID = newID()
	}
	if _, ok := s.r.exercises[exercise.ID]; ok {
		return duplicate("create exercise")
	}
	s.r.exercises[exercise.ID] = *exercise
	return nil
}

func (s exerciseStore) GetByID(_ context.Context, id string) (*models.Exercise, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	exercise, ok := s.r.exercises[id]
	if !ok {
		return nil, notFound("get exercise")
	}
	return &exercise, nil
}

func (s exerciseStore) List(_ context.Context, filters models.CatalogFilters) ([]*models.Exercise, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	exercises := make([]*models.Exercise, 0)
	for _, exercise := range s.r.exercises {
		if matchesCatalog(filters, exercise.Category, string(exercise.Difficulty), exercise.Name, exercise.Description) {
			e := exercise
			exercises = append(exercises, &e)
		}
	}
	byNewest(exercises, func(e *models.Exercise) time.Time { return e.CreatedAt }, func(e *models.Exercise) string { return e.ID })
	return exercises, nil
}

func (s exerciseStore) Update(_ context.Context, exercise *models.Exercise) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.exercises[exercise.ID]; !ok {
		return notFound("update exercise")
	}
	s.r.exercises[exercise.ID] = *exercise
	return nil
}

func (s exerciseStore) Delete(_ context.Context, id string) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.exercises[id]; !ok {
		return notFound("delete exercise")
	}
	delete(s.r.exercises, id)
	return nil
}

func (s exerciseStore) CountByIDs(_ context.Context, ids []string) (int64, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	var count int64
	for _, id := range uniqueStrings(ids) {
		if _, ok := s.r.exercises[id]; ok {
			count++
		}
	}
	return count, nil
}
