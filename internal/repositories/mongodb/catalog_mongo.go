package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// catalogFilter translates listing filters; kindField is dietType or difficulty
func catalogFilter(filters models.CatalogFilters, kindField string) bson.M {
	filter := bson.M{}
	if filters.Category != "" {
		filter["category"] = filters.Category
	}
	if filters.Kind != "" {
		filter[kindField] = filters.Kind
	}
	if filters.Search != "" {
		filter["$or"] = searchFilter(filters.Search, "name", "description", "category")
	}
	return filter
}

func replaceByID(ctx context.Context, coll *mongo.Collection, op, id string, doc interface{}) error {
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return mapError(op, err)
	}
	if result.MatchedCount == 0 {
		return mapError(op, mongo.ErrNoDocuments)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, op, id string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(op, err)
	}
	if result.DeletedCount == 0 {
		return mapError(op, mongo.ErrNoDocuments)
	}
	return nil
}

func countByIDs(ctx context.Context, coll *mongo.Collection, ids []string) (int64, error) {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	return coll.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// ===== DIET FOODS =====

type DietFoodMongo struct {
	coll *mongo.Collection
}

func NewDietFoodMongo(db *mongo.Database) repositories.DietFoodRepository {
	return &DietFoodMongo{coll: db.Collection(models.CollectionDietFoods)}
}

func (r *DietFoodMongo) Create(ctx context.Context, food *models.DietFood) error {
	if food.ID == "" {
		food.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, food)
	return mapError("failed to create diet food", err)
}

func (r *DietFoodMongo) GetByID(ctx context.Context, id string) (*models.DietFood, error) {
	var food models.DietFood
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&food); err != nil {
		return nil, mapError("failed to get diet food", err)
	}
	return &food, nil
}

func (r *DietFoodMongo) List(ctx context.Context, filters models.CatalogFilters) ([]*models.DietFood, error) {
	foods, err := findAll[models.DietFood](ctx, r.coll, catalogFilter(filters, "dietType"), newestFirst())
	if err != nil {
		return nil, mapError("failed to list diet foods", err)
	}
	return foods, nil
}

func (r *DietFoodMongo) Update(ctx context.Context, food *models.DietFood) error {
	return replaceByID(ctx, r.coll, "failed to update diet food", food.ID, food)
}

func (r *DietFoodMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "failed to delete diet food", id)
}

func (r *DietFoodMongo) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	count, err := countByIDs(ctx, r.coll, ids)
	return count, mapError("failed to count diet foods", err)
}

// ===== EXERCISES =====

type ExerciseMongo struct {
	coll *mongo.Collection
}

func NewExerciseMongo(db *mongo.Database) repositories.ExerciseRepository {
	return &ExerciseMongo{coll: db.Collection(models.CollectionExercises)}
}

func (r *ExerciseMongo) Create(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, exercise)
	return mapError("failed to create exercise", err)
}

func (r *ExerciseMongo) GetByID(ctx context.Context, id string) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise); err != nil {
		return nil, mapError("failed to get exercise", err)
	}
	return &exercise, nil
}

func (r *ExerciseMongo) List(ctx context.Context, filters models.CatalogFilters) ([]*models.Exercise, error) {
	exercises, err := findAll[models.Exercise](ctx, r.coll, catalogFilter(filters, "difficulty"), newestFirst())
	if err != nil {
		return nil, mapError("failed to list exercises", err)
	}
	return exercises, nil
}

func (r *ExerciseMongo) Update(ctx context.Context, exercise *models.Exercise) error {
	return replaceByID(ctx, r.coll, "failed to update exercise", exercise.ID, exercise)
}

func (r *ExerciseMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, "failed to delete exercise", id)
}

func (r *ExerciseMongo) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	count, err := countByIDs(ctx, r.coll, ids)
	return count, mapError("failed to count exercises", err)
}
