// Package memory is a process-local Repository used by tests and local runs
// without a database. It enforces the same uniqueness rules as the real
// backends.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// Repository implements repositories.Repository over guarded maps
type Repository struct {
	mu  sync.RWMutex
	now func() time.Time

	users               map[string]models.User
	attendance          map[string]models.AttendanceRecord
	fees                map[string]models.Fee
	dietFoods           map[string]models.DietFood
	exercises           map[string]models.Exercise
	dietAssignments     map[string]models.DietAssignment
	exerciseAssignments map[string]models.ExerciseAssignment
	notifications       map[string]models.Notification
	resetTokens         map[string]models.PasswordResetToken
}

func NewRepository() *Repository {
	return &Repository{
		now:                 func() time.Time { return time.Now().UTC() },
		users:               map[string]models.User{},
		attendance:          map[string]models.AttendanceRecord{},
		fees:                map[string]models.Fee{},
		dietFoods:           map[string]models.DietFood{},
		exercises:           map[string]models.Exercise{},
		dietAssignments:     map[string]models.DietAssignment{},
		exerciseAssignments: map[string]models.ExerciseAssignment{},
		notifications:       map[string]models.Notification{},
		resetTokens:         map[string]models.PasswordResetToken{},
	}
}

func (r *Repository) User() repositories.UserRepository             { return userStore{r} }
func (r *Repository) Attendance() repositories.AttendanceRepository { return attendanceStore{r} }
func (r *Repository) Fee() repositories.FeeRepository               { return feeStore{r} }
func (r *Repository) DietFood() repositories.DietFoodRepository     { return dietFoodStore{r} }
func (r *Repository) Exercise() repositories.ExerciseRepository     { return exerciseStore{r} }
func (r *Repository) DietAssignment() repositories.DietAssignmentRepository {
	return dietAssignmentStore{r}
}
func (r *Repository) ExerciseAssignment() repositories.ExerciseAssignmentRepository {
	return exerciseAssignmentStore{r}
}
func (r *Repository) Notification() repositories.NotificationRepository { return notificationStore{r} }
func (r *Repository) PasswordResetToken() repositories.PasswordResetTokenRepository {
	return resetTokenStore{r}
}

func (r *Repository) Ping(context.Context) error { return nil }
func (r *Repository) Close() error               { return nil }

// Manager adapts Repository to repositories.RepositoryManager
type Manager struct {
	repo *Repository
}

func NewManager() *Manager {
	return &Manager{repo: NewRepository()}
}

func (m *Manager) Initialize() error                      { return nil }
func (m *Manager) GetRepository() repositories.Repository { return m.repo }
func (m *Manager) HealthCheck(ctx context.Context) error  { return m.repo.Ping(ctx) }
func (m *Manager) Shutdown(context.Context) error         { return m.repo.Close() }

func newID() string { return uuid.NewString() }

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func duplicate(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrDuplicate)
}

// byNewest sorts by CreatedAt descending, ties broken by id
func byNewest[T any](items []*T, createdAt func(*T) time.Time, id func(*T) string) {
	slices.SortStableFunc(items, func(a, b *T) int {
		if c := createdAt(b).Compare(createdAt(a)); c != 0 {
			return c
		}
		return strings.Compare(id(a), id(b))
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
