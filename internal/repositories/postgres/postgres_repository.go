package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db *gorm.DB

	// Repository instances
	user               repositories.UserRepository
	attendance         repositories.AttendanceRepository
	fee                repositories.FeeRepository
	dietFood           repositories.DietFoodRepository
	exercise           repositories.ExerciseRepository
	dietAssignment     repositories.DietAssignmentRepository
	exerciseAssignment repositories.ExerciseAssignmentRepository
	notification       repositories.NotificationRepository
	passwordResetToken repositories.PasswordResetTokenRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB *gorm.DB
}

// NewPostgreSQLRepository creates a new repository with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) *PostgreSQLRepository {
	return &PostgreSQLRepository{
		db:                 config.DB,
		user:               NewUserPostgreSQL(config.DB),
		attendance:         NewAttendancePostgreSQL(config.DB),
		fee:                NewFeePostgreSQL(config.DB),
		dietFood:           NewDietFoodPostgreSQL(config.DB),
		exercise:           NewExercisePostgreSQL(config.DB),
		dietAssignment:     NewDietAssignmentPostgreSQL(config.DB),
		exerciseAssignment: NewExerciseAssignmentPostgreSQL(config.DB),
		notification:       NewNotificationPostgreSQL(config.DB),
		passwordResetToken: NewPasswordResetTokenPostgreSQL(config.DB),
	}
}

// User returns the user repository
func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

// Attendance returns the attendance repository
func (r *PostgreSQLRepository) Attendance() repositories.AttendanceRepository {
	return r.attendance
}

// Fee returns the fee repository
func (r *PostgreSQLRepository) Fee() repositories.FeeRepository {
	return r.fee
}

// DietFood returns the diet catalog repository
func (r *PostgreSQLRepository) DietFood() repositories.DietFoodRepository {
	return r.dietFood
}

// Exercise returns the exercise catalog repository
func (r *PostgreSQLRepository) Exercise() repositories.ExerciseRepository {
	return r.exercise
}

// DietAssignment returns the diet assignment repository
func (r *PostgreSQLRepository) DietAssignment() repositories.DietAssignmentRepository {
	return r.dietAssignment
}

// ExerciseAssignment returns the exercise assignment repository
func (r *PostgreSQLRepository) ExerciseAssignment() repositories.ExerciseAssignmentRepository {
	return r.exerciseAssignment
}

// Notification returns the notification repository
func (r *PostgreSQLRepository) Notification() repositories.NotificationRepository {
	return r.notification
}

// PasswordResetToken returns the reset token repository
func (r *PostgreSQLRepository) PasswordResetToken() repositories.PasswordResetTokenRepository {
	return r.passwordResetToken
}

// Migrate creates or updates every table
func (r *PostgreSQLRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.AttendanceRecord{},
		&models.Fee{},
		&models.DietFood{},
		&models.Exercise{},
		&models.DietAssignment{},
		&models.ExerciseAssignment{},
		&models.Notification{},
		&models.PasswordResetToken{},
	)
}

// Ping checks the health of the database connection
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close closes the database connection
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   *PostgreSQLRepository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize checks the connection and migrates the schema
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	if err := rm.repo.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
