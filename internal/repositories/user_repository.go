package repositories

import (
	"context"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

// UserFilters defines filters for user queries
type UserFilters struct {
	Roles  []models.UserRole
	Status models.UserStatus
}

// UserRepository owns the users collection
type UserRepository interface {
	// Create inserts a user; returns ErrDuplicate on email/account number clash
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// FirstByRole returns the earliest created user with the role
	FirstByRole(ctx context.Context, role models.UserRole) (*models.User, error)

	// List returns users newest first
	List(ctx context.Context, filters UserFilters) ([]*models.User, error)

	Update(ctx context.Context, id string, update *models.UserUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error
	Delete(ctx context.Context, id string) error
}
