package repositories

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// IsNotFoundError reports whether err wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err wraps ErrDuplicate
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// Repository aggregates every collection the service touches
type Repository interface {
	User() UserRepository
	Attendance() AttendanceRepository
	Fee() FeeRepository
	DietFood() DietFoodRepository
	Exercise() ExerciseRepository
	DietAssignment() DietAssignmentRepository
	ExerciseAssignment() ExerciseAssignmentRepository
	Notification() NotificationRepository
	PasswordResetToken() PasswordResetTokenRepository

	// Health check
	Ping(ctx context.Context) error

	// Close releases backend resources the repository owns
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize prepares indexes or schema
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
