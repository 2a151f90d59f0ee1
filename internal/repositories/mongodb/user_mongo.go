package mongodb

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type UserMongo struct {
	coll *mongo.Collection
}

func NewUserMongo(db *mongo.Database) repositories.UserRepository {
	return &UserMongo{coll: db.Collection(models.CollectionUsers)}
}

func (r *UserMongo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	user.Email = strings.ToLower(user.Email)

	_, err := r.coll.InsertOne(ctx, user)
	return mapError("failed to create user", err)
}

func (r *UserMongo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapError("failed to get user", err)
	}
	return &user, nil
}

func (r *UserMongo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": strings.ToLower(email)}
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapError("failed to get user by email", err)
	}
	return &user, nil
}

func (r *UserMongo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": strings.ToLower(email)}, options.Count().SetLimit(1))
	if err != nil {
		return false, mapError("failed to check email", err)
	}
	return count > 0, nil
}

func (r *UserMongo) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, mapError("failed to count users", err)
	}
	return count, nil
}

func (r *UserMongo) FirstByRole(ctx context.Context, role models.UserRole) (*models.User, error) {
	var user models.User
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if err := r.coll.FindOne(ctx, bson.M{"role": role}, opts).Decode(&user); err != nil {
		return nil, mapError("failed to get first user by role", err)
	}
	return &user, nil
}

func (r *UserMongo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	filter := bson.M{}
	if len(filters.Roles) > 0 {
		filter["role"] = bson.M{"$in": filters.Roles}
	}
	if filters.Status != "" {
		filter["status"] = filters.Status
	}

	opts := newestFirst().SetProjection(bson.M{"hashedPassword": 0})
	users, err := findAll[models.User](ctx, r.coll, filter, opts)
	if err != nil {
		return nil, mapError("failed to list users", err)
	}
	return users, nil
}

func (r *UserMongo) Update(ctx context.Context, id string, update *models.UserUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.Weight != nil {
		set["weight"] = *update.Weight
	}
	if update.Height != nil {
		set["height"] = *update.Height
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Goal != nil {
		set["goal"] = *update.Goal
	}
	if update.Level != nil {
		set["level"] = *update.Level
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.TrainerID != nil {
		set["trainerId"] = *update.TrainerID
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.IsActive != nil {
		set["isActive"] = *update.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user); err != nil {
		return nil, mapError("failed to update user", err)
	}
	return &user, nil
}

func (r *UserMongo) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	update := bson.M{"$set": bson.M{
		"hashedPassword": hashedPassword,
		"updatedAt":      time.Now().UTC(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return mapError("failed to update password", err)
	}
	if result.MatchedCount == 0 {
		return mapError("failed to update password", mongo.ErrNoDocuments)
	}
	return nil
}

func (r *UserMongo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError("failed to delete user", err)
	}
	if result.DeletedCount == 0 {
		return mapError("failed to delete user", mongo.ErrNoDocuments)
	}
	return nil
}
