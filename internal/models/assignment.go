package models

import "time"

type DietAssignmentItem struct {
	FoodID       string `json:"foodId" bson:"foodId" validate:"required"`
	FoodName     string `json:"foodName" bson:"foodName"`
	Breakfast    bool   `json:"breakfast" bson:"breakfast"`
	MorningSnack bool   `json:"morningSnack" bson:"morningSnack"`
	Lunch        bool   `json:"lunch" bson:"lunch"`
	EveningSnack bool   `json:"eveningSnack" bson:"eveningSnack"`
	Dinner       bool   `json:"dinner" bson:"dinner"`
	Quantity     string `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Notes        string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type DietAssignment struct {
	ID         string               `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	StudentID  string               `json:"studentId" bson:"studentId" gorm:"not null;size:64;index"`
	Foods      []DietAssignmentItem `json:"foods" bson:"foods" gorm:"serializer:json"`
	FromDate   time.Time            `json:"fromDate" bson:"fromDate"`
	ToDate     time.Time            `json:"toDate" bson:"toDate"`
	Notes      string               `json:"notes,omitempty" bson:"notes,omitempty" gorm:"type:text"`
	AssignedBy string               `json:"assignedBy" bson:"assignedBy" gorm:"size:64"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (DietAssignment) TableName() string {
	return CollectionDietAssignments
}

// FoodIDs lists the referenced catalog ids
func (a *DietAssignment) FoodIDs() []string {
	ids := make([]string, 0, len(a.Foods))
	for _, item := range a.Foods {
		ids = append(ids, item.FoodID)
	}
	return ids
}

type ExerciseAssignmentItem struct {
	ExerciseID   string  `json:"exerciseId" bson:"exerciseId" validate:"required"`
	ExerciseName string  `json:"exerciseName" bson:"exerciseName"`
	Sets         int     `json:"sets" bson:"sets" validate:"gte=0"`
	Reps         int     `json:"reps" bson:"reps" validate:"gte=0"`
	Weight       float64 `json:"weight" bson:"weight" validate:"gte=0"`
	RestTime     int     `json:"restTime" bson:"restTime" validate:"gte=0"` // seconds
	Notes        string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

type ExerciseAssignment struct {
	ID         string                   `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	StudentID  string                   `json:"studentId" bson:"studentId" gorm:"not null;size:64;index"`
	Exercises  []ExerciseAssignmentItem `json:"exercises" bson:"exercises" gorm:"serializer:json"`
	FromDate   time.Time                `json:"fromDate" bson:"fromDate"`
	ToDate     time.Time                `json:"toDate" bson:"toDate"`
	Notes      string                   `json:"notes,omitempty" bson:"notes,omitempty" gorm:"type:text"`
	AssignedBy string                   `json:"assignedBy" bson:"assignedBy" gorm:"size:64"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (ExerciseAssignment) TableName() string {
	return CollectionExerciseAssignments
}

func (a *ExerciseAssignment) ExerciseIDs() []string {
	ids := make([]string, 0, len(a.Exercises))
	for _, item := range a.Exercises {
		ids = append(ids, item.ExerciseID)
	}
	return ids
}
