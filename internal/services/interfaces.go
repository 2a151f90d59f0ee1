package services

import (
	"context"
	"io"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/auth"
	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type ForgotPasswordRequest = validator.ForgotPasswordRequest
type ResetPasswordRequest = validator.ResetPasswordRequest
type UserUpdateRequest = validator.UserUpdateRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type AttendanceRequest = validator.AttendanceRequest
type BulkAttendanceRequest = validator.BulkAttendanceRequest
type FeeCreateRequest = validator.FeeCreateRequest
type DietFoodRequest = validator.DietFoodRequest
type ExerciseRequest = validator.ExerciseRequest
type DietAssignmentRequest = validator.DietAssignmentRequest
type ExerciseAssignmentRequest = validator.ExerciseAssignmentRequest
type NotificationCreateRequest = validator.NotificationCreateRequest

// LoginResponse is the verified identity plus its session token
type LoginResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          models.UserRole `json:"role"`
	AccountNumber string          `json:"accountNumber"`
	IsAdmin       bool            `json:"isAdmin"`
	Token         string          `json:"token"`
	ExpiresAt     time.Time       `json:"expiresAt"`
}

// FeeView is a fee as shown to clients, with the derived overdue flag
type FeeView struct {
	*models.FeeWithStudent
	DisplayStatus models.FeeStatus `json:"displayStatus"`
}

type FeeListResponse struct {
	Fees   []*FeeView       `json:"fees"`
	Totals models.FeeTotals `json:"totals"`
}

// ===== SERVICE INTERFACES =====

type AccountService interface {
	// Register creates an account; admins use the same path to create users
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error

	// ForgotPassword issues a single-use reset token for the email
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type UserService interface {
	List(ctx context.Context, caller models.Principal) ([]*models.User, error)
	Students(ctx context.Context, caller models.Principal) ([]*models.User, error)
	Trainers(ctx context.Context, caller models.Principal) ([]*models.User, error)
	GetByID(ctx context.Context, caller models.Principal, id string) (*models.User, error)
	Update(ctx context.Context, caller models.Principal, id string, req *UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, caller models.Principal, id string) error

	Profile(ctx context.Context, caller models.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, caller models.Principal, req *ProfileUpdateRequest) (*models.User, error)
}

type AttendanceService interface {
	// History returns a user's most recent records, optionally from a date onward
	History(ctx context.Context, caller models.Principal, userID, fromDate string) ([]*models.AttendanceRecord, error)

	// Roster returns one row per active member or trainer for the date
	Roster(ctx context.Context, caller models.Principal, date string) ([]models.AttendanceRosterEntry, error)

	Record(ctx context.Context, caller models.Principal, req *AttendanceRequest) (*models.AttendanceRecord, error)
	RecordBulk(ctx context.Context, caller models.Principal, req *BulkAttendanceRequest) (models.BulkUpsertResult, error)
}

type FeeService interface {
	List(ctx context.Context, caller models.Principal, studentID string) (*FeeListResponse, error)
	Create(ctx context.Context, caller models.Principal, req *FeeCreateRequest) (*models.Fee, error)
	MarkPaid(ctx context.Context, caller models.Principal, id string) (*models.Fee, error)

	// Export writes every fee as an xlsx workbook
	Export(ctx context.Context, caller models.Principal, w io.Writer) error
}

type CatalogService interface {
	ListDietFoods(ctx context.Context, filters models.CatalogFilters) ([]*models.DietFood, error)
	GetDietFood(ctx context.Context, id string) (*models.DietFood, error)
	CreateDietFood(ctx context.Context, caller models.Principal, req *DietFoodRequest) (*models.DietFood, error)
	UpdateDietFood(ctx context.Context, caller models.Principal, id string, req *DietFoodRequest) (*models.DietFood, error)
	DeleteDietFood(ctx context.Context, caller models.Principal, id string) error

	ListExercises(ctx context.Context, filters models.CatalogFilters) ([]*models.Exercise, error)
	GetExercise(ctx context.Context, id string) (*models.Exercise, error)
	CreateExercise(ctx context.Context, caller models.Principal, req *ExerciseRequest) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, caller models.Principal, id string, req *ExerciseRequest) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, caller models.Principal, id string) error
}

type AssignmentService interface {
	ListDiet(ctx context.Context, caller models.Principal, studentID string) ([]*models.DietAssignment, error)
	CreateDiet(ctx context.Context, caller models.Principal, req *DietAssignmentRequest) (*models.DietAssignment, error)
	UpdateDiet(ctx context.Context, caller models.Principal, id string, req *DietAssignmentRequest) (*models.DietAssignment, error)
	DeleteDiet(ctx context.Context, caller models.Principal, id string) error

	ListExercise(ctx context.Context, caller models.Principal, studentID string) ([]*models.ExerciseAssignment, error)
	CreateExercise(ctx context.Context, caller models.Principal, req *ExerciseAssignmentRequest) (*models.ExerciseAssignment, error)
	UpdateExercise(ctx context.Context, caller models.Principal, id string, req *ExerciseAssignmentRequest) (*models.ExerciseAssignment, error)
	DeleteExercise(ctx context.Context, caller models.Principal, id string) error

	// CurrentDiet is the caller's latest diet assignment
	CurrentDiet(ctx context.Context, caller models.Principal) (*models.DietAssignment, error)
	MyExercises(ctx context.Context, caller models.Principal) ([]*models.ExerciseAssignment, error)
}

type NotificationService interface {
	ListMine(ctx context.Context, caller models.Principal) ([]*models.Notification, error)
	Create(ctx context.Context, caller models.Principal, req *NotificationCreateRequest) (*models.Notification, error)
	MarkRead(ctx context.Context, caller models.Principal, id string) error
}

// ServiceManager manages all services and their dependencies
type ServiceManager interface {
	// Core service getters
	Account() AccountService
	User() UserService
	Attendance() AttendanceService
	Fee() FeeService
	Catalog() CatalogService
	Assignment() AssignmentService
	Notification() NotificationService

	// Authenticator validates session tokens for middleware
	Authenticator() *auth.Authenticator

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
