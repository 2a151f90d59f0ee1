package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

func assignmentFilter(filters repositories.AssignmentFilters) bson.M {
	filter := bson.M{}
	if filters.StudentID != "" {
		filter["studentId"] = filters.StudentID
	}
	return filter
}

// ===== DIET ASSIGNMENTS =====

type DietAssignmentMongo struct {
	coll *mongo.Collection
}

func NewDietAssignmentMongo(db *mongo.Database) repositories.DietAssignmentRepository {
	return &DietAssignmentMongo{coll: db.Collection(models.CollectionDietAssignments)}
}

func (r *DietAssignmentMongo) Create(ctx context.Context, assignment *models.DietAssignment) error {
	if assignment.ID == "" {
		assignment.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, assignment)
	return mapError("failed to create diet assignment", err)
}

func (r *DietAssignmentMongo) GetByID(ctx context.Context, id string) (*models.DietAssignment, error) {
	var assignment models.DietAssignment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment); err != nil {
		return nil, mapError("failed to get diet assignment", err)
	}
	return &assignment, nil
}

func (r *DietAssignmentMongo) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.DietAssignment, error) {
	assignments, err := findAll[models.DietAssignment](ctx, r.coll, assignmentFilter(filters), newestFirst())
	if err != nil {
		return nil, mapError("failed to list diet assignments", err)
	}
	return assignments, nil
}

func (r *DietAssignmentMongo) Update(ctx context.Context, assignment *models.DietAssignment) error {
	return replaceByID(ctx, r.coll, "failed to update diet assignment", assignment.ID, assignment)
}

func (r *DietAssignmentMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "failed to delete diet assignment", id)
}

// ===== EXERCISE ASSIGNMENTS =====

type ExerciseAssignmentMongo struct {
	coll *mongo.Collection
}

func NewExerciseAssignmentMongo(db *mongo.Database) repositories.ExerciseAssignmentRepository {
	return &ExerciseAssignmentMongo{coll: db.Collection(models.CollectionExerciseAssignments)}
}

func (r *ExerciseAssignmentMongo) Create(ctx context.Context, assignment *models.ExerciseAssignment) error {
	if assignment.ID == "" {
		assignment.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, assignment)
	return mapError("failed to create exercise assignment", err)
}

func (r *ExerciseAssignmentMongo) GetByID(ctx context.Context, id string) (*models.ExerciseAssignment, error) {
	var assignment models.ExerciseAssignment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment); err != nil {
		return nil, mapError("failed to get exercise assignment", err)
	}
	return &assignment, nil
}

func (r *ExerciseAssignmentMongo) List(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.ExerciseAssignment, error) {
	assignments, err := findAll[models.ExerciseAssignment](ctx, r.coll, assignmentFilter(filters), newestFirst())
	if err != nil {
		return nil, mapError("failed to list exercise assignments", err)
	}
	return assignments, nil
}

func (r *ExerciseAssignmentMongo) Update(ctx context.Context, assignment *models.ExerciseAssignment) error {
	return replaceByID(ctx, r.coll, "failed to update exercise assignment", assignment.ID, assignment)
}

func (r *ExerciseAssignmentMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "failed to delete exercise assignment", id)
}
