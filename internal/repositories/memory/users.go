package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type userStore struct{ r *Repository }

func (s userStore) Create(_ context.Context, user *models.User) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, existing := range s.r.users {
		if existing.Email == user.Email ||
			(user.AccountNumber != "" && existing.AccountNumber == user.AccountNumber) {
			return duplicate("create user")
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	if _, ok := s.r.users[user.ID]; ok {
		return duplicate("create user")
	}
	s.r.users[user.ID] = *user
	return nil
}

func (s userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	user, ok := s.r.users[id]
	if !ok {
		return nil, notFound("get user")
	}
	return &user, nil
}

func (s userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range s.r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, notFound("get user by email")
}

func (s userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if repositories.IsNotFoundError(err) {
		return false, nil
	}
	return err == nil, err
}

func (s userStore) Count(context.Context) (int64, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()
	return int64(len(s.r.users)), nil
}

func (s userStore) FirstByRole(_ context.Context, role models.UserRole) (*models.User, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	var first *models.User
	for _, user := range s.r.users {
		if user.Role != role {
			continue
		}
		if first == nil || user.CreatedAt.Before(first.CreatedAt) {
			u := user
			first = &u
		}
	}
	if first == nil {
		return nil, notFound("get first user by role")
	}
	return first, nil
}

func (s userStore) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	users := make([]*models.User, 0)
	for _, user := range s.r.users {
		if len(filters.Roles) > 0 && !slices.Contains(filters.Roles, user.Role) {
			continue
		}
		if filters.Status != "" && user.Status != filters.Status {
			continue
		}
		u := user
		u.HashedPassword = ""
		users = append(users, &u)
	}
	byNewest(users, func(u *models.User) time.Time { return u.CreatedAt }, func(u *models.User) string { return u.ID })
	return users, nil
}

func (s userStore) Update(_ context.Context, id string, update *models.UserUpdate) (*models.User, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	user, ok := s.r.users[id]
	if !ok {
		return nil, notFound("update user")
	}
	update.Apply(&user)
	user.UpdatedAt = s.r.now()
	s.r.users[id] = user
	return &user, nil
}

func (s userStore) UpdatePassword(_ context.Context, id string, hashedPassword string) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	user, ok := s.r.users[id]
	if !ok {
		return notFound("update password")
	}
	user.HashedPassword = hashedPassword
	user.UpdatedAt = s.r.now()
	s.r.users[id] = user
	return nil
}

func (s userStore) Delete(_ context.Context, id string) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if _, ok := s.r.users[id]; !ok {
		return notFound("delete user")
	}
	delete(s.r.users, id)
	return nil
}
