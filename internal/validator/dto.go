package validator

import "github.com/SAP-F-2025/gym-service/internal/models"

// ===== ACCOUNT =====

// RegisterRequest represents the request structure for creating an account
type RegisterRequest struct {
	Name     string   `json:"name" form:"name" validate:"required,min=1,max=100"`
	Email    string   `json:"email" form:"email" validate:"required,gym_email"`
	Password string   `json:"password" form:"password" validate:"required,password_length,password_strength"`
	Role     string   `json:"role" form:"role" validate:"omitempty,gym_role"`
	Age      *int     `json:"age" form:"age" validate:"omitempty,min=1,max=120"`
	Gender   string   `json:"gender" form:"gender" validate:"omitempty,oneof=male female"`
	Goal     string   `json:"goal" form:"goal" validate:"omitempty,oneof=lose_weight gain_muscle get_fitter maintain"`
	Level    string   `json:"level" form:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Weight   *float64 `json:"weight" form:"weight" validate:"omitempty,gt=0"`
	Height   *float64 `json:"height" form:"height" validate:"omitempty,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,gym_email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,password_length,password_strength"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// ===== USERS =====

// UserUpdateRequest is the full directory update. Credential, email, role and
// account number have no field here and cannot be changed.
type UserUpdateRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Age       *int     `json:"age" validate:"omitempty,min=1,max=120"`
	Weight    *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height    *float64 `json:"height" validate:"omitempty,gt=0"`
	Gender    *string  `json:"gender" validate:"omitempty,oneof=male female"`
	Goal      *string  `json:"goal" validate:"omitempty,oneof=lose_weight gain_muscle get_fitter maintain"`
	Level     *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Image     *string  `json:"image" validate:"omitempty,max=500"`
	TrainerID *string  `json:"trainerId"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active inactive"`
	IsActive  *bool    `json:"isActive"`
}

// ProfileUpdateRequest is the self-service subset of UserUpdateRequest
type ProfileUpdateRequest struct {
	Name   *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Age    *int     `json:"age" validate:"omitempty,min=1,max=120"`
	Weight *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height *float64 `json:"height" validate:"omitempty,gt=0"`
	Goal   *string  `json:"goal" validate:"omitempty,oneof=lose_weight gain_muscle get_fitter maintain"`
	Level  *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Image  *string  `json:"image" validate:"omitempty,max=500"`
}

// ===== ATTENDANCE =====

type AttendanceRequest struct {
	UserID   string `json:"userId" form:"userId" validate:"required"`
	Date     string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	CheckIn  string `json:"checkIn" form:"checkIn" validate:"omitempty,clock"`
	CheckOut string `json:"checkOut" form:"checkOut" validate:"omitempty,clock"`
	Status   string `json:"status" form:"status" validate:"required,oneof=present absent late"`
	Notes    string `json:"notes" form:"notes" validate:"omitempty,max=500"`
}

type BulkAttendanceRequest struct {
	Records []AttendanceRequest `json:"attendanceRecords" validate:"required,min=1,max=500,dive"`
}

// ===== FEES =====

type FeeCreateRequest struct {
	StudentID   string  `json:"studentId" form:"studentId" validate:"required"`
	Amount      float64 `json:"amount" form:"amount" validate:"required,gt=0"`
	Description string  `json:"description" form:"description" validate:"omitempty,max=255"`
	DueDate     string  `json:"dueDate" form:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// ===== CATALOG =====

type DietFoodRequest struct {
	Name           string                 `json:"name" validate:"required,max=200"`
	Description    string                 `json:"description" validate:"required,max=2000"`
	Category       string                 `json:"category" validate:"required,max=100"`
	DietType       string                 `json:"dietType" validate:"omitempty,max=50"`
	Calories       float64                `json:"calories" validate:"gte=0"`
	Protein        float64                `json:"protein" validate:"gte=0"`
	Carbs          float64                `json:"carbs" validate:"gte=0"`
	Fat            float64                `json:"fat" validate:"gte=0"`
	Fiber          float64                `json:"fiber" validate:"gte=0"`
	Sugar          float64                `json:"sugar" validate:"gte=0"`
	Sodium         float64                `json:"sodium" validate:"gte=0"`
	ServingSize    string                 `json:"servingSize" validate:"omitempty,max=100"`
	Ingredients    []string               `json:"ingredients" validate:"omitempty,max=100,dive,max=200"`
	Instructions   []string               `json:"instructions" validate:"omitempty,max=100,dive,max=1000"`
	ImageURL       string                 `json:"imageUrl" validate:"omitempty,url"`
	NutritionFacts map[string]interface{} `json:"nutritionFacts"`
}

type ExerciseRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required,max=2000"`
	Category       string   `json:"category" validate:"required,max=100"`
	Difficulty     string   `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration       int      `json:"duration" validate:"gte=0"`
	CaloriesBurned float64  `json:"caloriesBurned" validate:"gte=0"`
	Instructions   []string `json:"instructions" validate:"omitempty,max=100,dive,max=1000"`
	Equipment      []string `json:"equipment" validate:"omitempty,max=50,dive,max=200"`
	MuscleGroups   []string `json:"muscleGroups" validate:"omitempty,max=50,dive,max=100"`
	VideoURL       string   `json:"videoUrl" validate:"omitempty,url"`
	ImageURL       string   `json:"imageUrl" validate:"omitempty,url"`
}

// ===== ASSIGNMENTS =====

type DietAssignmentRequest struct {
	StudentID string                      `json:"studentId" validate:"required"`
	Foods     []models.DietAssignmentItem `json:"foods" validate:"required,min=1,max=100,dive"`
	FromDate  string                      `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate    string                      `json:"toDate" validate:"required,datetime=2006-01-02"`
	Notes     string                      `json:"notes" validate:"omitempty,max=2000"`
}

type ExerciseAssignmentRequest struct {
	StudentID string                          `json:"studentId" validate:"required"`
	Exercises []models.ExerciseAssignmentItem `json:"exercises" validate:"required,min=1,max=100,dive"`
	FromDate  string                          `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate    string                          `json:"toDate" validate:"required,datetime=2006-01-02"`
	Notes     string                          `json:"notes" validate:"omitempty,max=2000"`
}

// ===== NOTIFICATIONS =====

type NotificationCreateRequest struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail" validate:"omitempty,email"`
	Text      string `json:"notificationText" validate:"required,max=2000"`
	Type      string `json:"type" validate:"omitempty,oneof=general fee"`
	PathName  string `json:"pathName" validate:"omitempty,startswith=/,max=255"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notificationId" form:"notificationId" validate:"required"`
}
