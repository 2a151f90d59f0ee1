package models

import "time"

type FeeStatus string

const (
	FeePaid    FeeStatus = "paid"
	FeeUnpaid  FeeStatus = "unpaid"
	FeeOverdue FeeStatus = "overdue"
)

const (
	DefaultFeeDescription = "Monthly fee"
	DefaultFeeDueIn       = 30 * 24 * time.Hour
)

type Fee struct {
	ID          string     `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	StudentID   string     `json:"studentId" bson:"studentId" gorm:"not null;size:64;index"`
	Amount      float64    `json:"amount" bson:"amount" gorm:"not null"`
	Description string     `json:"description" bson:"description" gorm:"size:255"`
	DueDate     time.Time  `json:"dueDate" bson:"dueDate"`
	Status      FeeStatus  `json:"status" bson:"status" gorm:"size:10;not null;index"`
	PaidAt      *time.Time `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty" bson:"createdBy,omitempty" gorm:"size:64"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (Fee) TableName() string {
	return CollectionFees
}

// EffectiveStatus derives the display status; overdue is never persisted
func (f *Fee) EffectiveStatus(now time.Time) FeeStatus {
	if f.Status == FeeUnpaid && now.After(f.DueDate) {
		return FeeOverdue
	}
	return f.Status
}

// StudentSummary is the credential-free identity joined onto fees
type StudentSummary struct {
	ID            string `json:"id" bson:"_id"`
	Name          string `json:"name" bson:"name"`
	Email         string `json:"email" bson:"email"`
	AccountNumber string `json:"accountNumber" bson:"accountNumber"`
}

type FeeWithStudent struct {
	Fee     `bson:",inline"`
	Student *StudentSummary `json:"student,omitempty" bson:"student,omitempty"`
}

// FeeTotals partitions fee amounts by status
type FeeTotals struct {
	Total  float64 `json:"total" bson:"total"`
	Income float64 `json:"income" bson:"income"`
	Unpaid float64 `json:"unpaid" bson:"unpaid"`
}
