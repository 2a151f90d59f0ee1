package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type AttendanceFilters struct {
	UserID   string
	FromDate string // inclusive, YYYY-MM-DD
	Limit    int
}

type FeeFilters struct {
	StudentID string
}

type AssignmentFilters struct {
	StudentID string
}

// ===== REPOSITORY INTERFACES =====

// AttendanceRepository stores one record per (userId, date)
type AttendanceRepository interface {
	// Upsert writes the record keyed by (UserID, Date). The stored createdAt and
	// id survive updates; every other field is replaced (last write wins).
	Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error)
	BulkUpsert(ctx context.Context, records []*models.AttendanceRecord) (models.BulkUpsertResult, error)

	ListByUser(ctx context.Context, filters AttendanceFilters) ([]*models.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error)
}

type FeeRepository interface {
	Create(ctx context.Context, fee *models.Fee) error
	GetByID(ctx context.Context, id string) (*models.Fee, error)

	// ListWithStudents joins each fee with its student's identity, newest first
	ListWithStudents(ctx context.Context, filters FeeFilters) ([]*models.FeeWithStudent, error)
	Totals(ctx context.Context, filters FeeFilters) (models.FeeTotals, error)

	// MarkPaid moves an unpaid fee to paid; changed is false when it was already paid
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (changed bool, err error)
}

type DietFoodRepository interface {
	Create(ctx context.Context, food *models.DietFood) error
	GetByID(ctx context.Context, id string) (*models.DietFood, error)
	List(ctx context.Context, filters models.CatalogFilters) ([]*models.DietFood, error)
	Update(ctx context.Context, food *models.DietFood) error
	Delete(ctx context.Context, id string) error
	CountByIDs(ctx context.Context, ids []string) (int64, error)
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	GetByID(ctx context.Context, id string) (*models.Exercise, error)
	List(ctx context.Context, filters models.CatalogFilters) ([]*models.Exercise, error)
	Update(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, id string) error
	CountByIDs(ctx context.Context, ids []string) (int64, error)
}

type DietAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.DietAssignment) error
	GetByID(ctx context.Context, id string) (*models.DietAssignment, error)
	List(ctx context.Context, filters AssignmentFilters) ([]*models.DietAssignment, error)
	Update(ctx context.Context, assignment *models.DietAssignment) error
	Delete(ctx context.Context, id string) error
}

type ExerciseAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.ExerciseAssignment) error
	GetByID(ctx context.Context, id string) (*models.ExerciseAssignment, error)
	List(ctx context.Context, filters AssignmentFilters) ([]*models.ExerciseAssignment, error)
	Update(ctx context.Context, assignment *models.ExerciseAssignment) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error

	// ListForRecipient matches userId OR userEmail, newest first
	ListForRecipient(ctx context.Context, userID, email string) ([]*models.Notification, error)

	// MarkRead sets read once for a notification owned by the recipient.
	// Returns ErrNotFound when no such notification is addressed to them.
	MarkRead(ctx context.Context, id string, recipient models.Principal, at time.Time) error
}

type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// FindUsable returns an unconsumed token created after notBefore
	FindUsable(ctx context.Context, token string, notBefore time.Time) (*models.PasswordResetToken, error)

	// Consume sets resetAt only if still unset; false means someone else won
	Consume(ctx context.Context, id string, at time.Time) (bool, error)
}
