package models

import (
	"fmt"
	"time"
)

type UserRole string
type Role = UserRole

const (
	RoleAdmin   UserRole = "admin"
	RoleTrainer UserRole = "trainer"
	RoleUser    UserRole = "user"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleUser:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type FitnessGoal string

const (
	GoalLoseWeight FitnessGoal = "lose_weight"
	GoalGainMuscle FitnessGoal = "gain_muscle"
	GoalGetFitter  FitnessGoal = "get_fitter"
	GoalMaintain   FitnessGoal = "maintain"
)

type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// AccountNumberWidth is the zero-padded width of display account numbers
const AccountNumberWidth = 12

type User struct {
	ID             string   `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	Name           string   `json:"name" bson:"name" gorm:"not null;size:100"`
	Email          string   `json:"email" bson:"email" gorm:"uniqueIndex;not null;size:255"`
	HashedPassword string   `json:"-" bson:"hashedPassword" gorm:"not null"`
	Role           UserRole `json:"role" bson:"role" gorm:"size:20;index"`
	AccountNumber  string   `json:"accountNumber" bson:"accountNumber" gorm:"uniqueIndex;size:12"`

	// Profile
	Age    *int         `json:"age,omitempty" bson:"age,omitempty"`
	Weight *float64     `json:"weight,omitempty" bson:"weight,omitempty"`
	Height *float64     `json:"height,omitempty" bson:"height,omitempty"`
	Gender Gender       `json:"gender,omitempty" bson:"gender,omitempty" gorm:"size:10"`
	Goal   FitnessGoal  `json:"goal,omitempty" bson:"goal,omitempty" gorm:"size:20"`
	Level  FitnessLevel `json:"level,omitempty" bson:"level,omitempty" gorm:"size:20"`
	Image  string       `json:"image,omitempty" bson:"image,omitempty" gorm:"size:500"`

	// Relationships
	AdminID   string `json:"adminId,omitempty" bson:"adminId,omitempty" gorm:"size:64"`
	TrainerID string `json:"trainerId,omitempty" bson:"trainerId,omitempty" gorm:"size:64;index"`

	// Status
	Status   UserStatus `json:"status" bson:"status" gorm:"size:20;default:active"`
	IsActive bool       `json:"isActive" bson:"isActive"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (User) TableName() string {
	return CollectionUsers
}

// Principal returns the authenticated identity derived from this user
func (u *User) Principal() Principal {
	return Principal{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		AccountNumber: u.AccountNumber,
	}
}

// FormatAccountNumber renders a sequence number as a zero-padded account number
func FormatAccountNumber(seq int64) string {
	return fmt.Sprintf("%0*d", AccountNumberWidth, seq)
}

// UserUpdate holds the mutable profile fields; nil means unchanged
type UserUpdate struct {
	Name      *string
	Age       *int
	Weight    *float64
	Height    *float64
	Gender    *Gender
	Goal      *FitnessGoal
	Level     *FitnessLevel
	Image     *string
	TrainerID *string
	Status    *UserStatus
	IsActive  *bool
}

// IsEmpty reports whether the update changes nothing
func (u *UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Age == nil && u.Weight == nil && u.Height == nil &&
		u.Gender == nil && u.Goal == nil && u.Level == nil && u.Image == nil &&
		u.TrainerID == nil && u.Status == nil && u.IsActive == nil
}

// Apply copies the set fields onto a user
func (u *UserUpdate) Apply(user *User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Age != nil {
		user.Age = u.Age
	}
	if u.Weight != nil {
		user.Weight = u.Weight
	}
	if u.Height != nil {
		user.Height = u.Height
	}
	if u.Gender != nil {
		user.Gender = *u.Gender
	}
	if u.Goal != nil {
		user.Goal = *u.Goal
	}
	if u.Level != nil {
		user.Level = *u.Level
	}
	if u.Image != nil {
		user.Image = *u.Image
	}
	if u.TrainerID != nil {
		user.TrainerID = *u.TrainerID
	}
	if u.Status != nil {
		user.Status = *u.Status
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
}
