package models

import (
	"time"

	"gorm.io/datatypes"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

const (
	DefaultDietType    = "general"
	DefaultServingSize = "1 serving"
)

type DietFood struct {
	ID          string `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	Name        string `json:"name" bson:"name" gorm:"not null;size:200;index"`
	Description string `json:"description" bson:"description" gorm:"type:text"`
	Category    string `json:"category" bson:"category" gorm:"size:100;index"`
	DietType    string `json:"dietType" bson:"dietType" gorm:"size:50;index"`

	// Nutrition per serving
	Calories float64 `json:"calories" bson:"calories"`
	Protein  float64 `json:"protein" bson:"protein"`
	Carbs    float64 `json:"carbs" bson:"carbs"`
	Fat      float64 `json:"fat" bson:"fat"`
	Fiber    float64 `json:"fiber" bson:"fiber"`
	Sugar    float64 `json:"sugar" bson:"sugar"`
	Sodium   float64 `json:"sodium" bson:"sodium"`

	ServingSize    string            `json:"servingSize" bson:"servingSize" gorm:"size:100"`
	Ingredients    []string          `json:"ingredients" bson:"ingredients" gorm:"serializer:json"`
	Instructions   []string          `json:"instructions" bson:"instructions" gorm:"serializer:json"`
	ImageURL       string            `json:"imageUrl" bson:"imageUrl" gorm:"size:500"`
	NutritionFacts datatypes.JSONMap `json:"nutritionFacts,omitempty" bson:"nutritionFacts,omitempty"`

	CreatedBy string    `json:"createdBy,omitempty" bson:"createdBy,omitempty" gorm:"size:64"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (DietFood) TableName() string {
	return CollectionDietFoods
}

type Exercise struct {
	ID             string     `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	Name           string     `json:"name" bson:"name" gorm:"not null;size:200;index"`
	Description    string     `json:"description" bson:"description" gorm:"type:text"`
	Category       string     `json:"category" bson:"category" gorm:"size:100;index"`
	Difficulty     Difficulty `json:"difficulty" bson:"difficulty" gorm:"size:20;index"`
	Duration       int        `json:"duration" bson:"duration"` // minutes
	CaloriesBurned float64    `json:"caloriesBurned" bson:"caloriesBurned"`
	Instructions   []string   `json:"instructions" bson:"instructions" gorm:"serializer:json"`
	Equipment      []string   `json:"equipment" bson:"equipment" gorm:"serializer:json"`
	MuscleGroups   []string   `json:"muscleGroups" bson:"muscleGroups" gorm:"serializer:json"`
	VideoURL       string     `json:"videoUrl" bson:"videoUrl" gorm:"size:500"`
	ImageURL       string     `json:"imageUrl" bson:"imageUrl" gorm:"size:500"`

	CreatedBy string    `json:"createdBy,omitempty" bson:"createdBy,omitempty" gorm:"size:64"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (Exercise) TableName() string {
	return CollectionExercises
}

// CatalogFilters narrows catalog listings. Kind is dietType for foods and
// difficulty for exercises. Search matches name, description or category.
type CatalogFilters struct {
	Category string
	Kind     string
	Search   string
}
