package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// MongoRepository implements the main Repository interface over one database
type MongoRepository struct {
	client *mongo.Client
	db     *mongo.Database

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
	Client   *mongo.Client
	Database string
}

// NewMongoRepository wires every collection repository to the database
func NewMongoRepository(config RepositoryConfig) *MongoRepository {
	db := config.Client.Database(config.Database)

	return &MongoRepository{
		client:             config.Client,
		db:                 db,
		user:               NewUserMongo(db),
		attendance:         NewAttendanceMongo(db),
		fee:                NewFeeMongo(db),
		dietFood:           NewDietFoodMongo(db),
		exercise:           NewExerciseMongo(db),
		dietAssignment:     NewDietAssignmentMongo(db),
		exerciseAssignment: NewExerciseAssignmentMongo(db),
		notification:       NewNotificationMongo(db),
		passwordResetToken: NewPasswordResetTokenMongo(db),
	}
}

func (r *MongoRepository) User() repositories.UserRepository             { return r.user }
func (r *MongoRepository) Attendance() repositories.AttendanceRepository { return r.attendance }
func (r *MongoRepository) Fee() repositories.FeeRepository               { return r.fee }
func (r *MongoRepository) DietFood() repositories.DietFoodRepository     { return r.dietFood }
func (r *MongoRepository) Exercise() repositories.ExerciseRepository     { return r.exercise }
func (r *MongoRepository) DietAssignment() repositories.DietAssignmentRepository {
	return r.dietAssignment
}
func (r *MongoRepository) ExerciseAssignment() repositories.ExerciseAssignmentRepository {
	return r.exerciseAssignment
}
func (r *MongoRepository) Notification() repositories.NotificationRepository {
	return r.notification
}
func (r *MongoRepository) PasswordResetToken() repositories.PasswordResetTokenRepository {
	return r.passwordResetToken
}

// Ping checks connectivity against the primary
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close is a no-op; the client belongs to the RepositoryManager
func (r *MongoRepository) Close() error {
	return nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		models.CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "accountNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		models.CollectionAttendance: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		models.CollectionFees: {
			{Keys: bson.D{{Key: "studentId", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		models.CollectionNotifications: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		models.CollectionPasswordResetTokens: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		models.CollectionDietAssignments: {
			{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		models.CollectionExerciseAssignments: {
			{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, idx := range indexes {
		if _, err := r.db.Collection(collection).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

// RepositoryManager owns the client lifecycle for the MongoDB backend
type RepositoryManager struct {
	config RepositoryConfig
	repo   *MongoRepository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{config: config}
}

// Initialize builds the repository and ensures indexes exist
func (m *RepositoryManager) Initialize() error {
	if m.config.Client == nil {
		return fmt.Errorf("mongo client is required")
	}

	m.repo = NewMongoRepository(m.config)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return m.repo.EnsureIndexes(ctx)
}

func (m *RepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *RepositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

// Shutdown disconnects the client
func (m *RepositoryManager) Shutdown(ctx context.Context) error {
	if m.config.Client == nil {
		return nil
	}
	return m.config.Client.Disconnect(ctx)
}
