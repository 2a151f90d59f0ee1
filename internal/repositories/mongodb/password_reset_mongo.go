package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type PasswordResetTokenMongo struct {
	coll *mongo.Collection
}

func NewPasswordResetTokenMongo(db *mongo.Database) repositories.PasswordResetTokenRepository {
	return &PasswordResetTokenMongo{coll: db.Collection(models.CollectionPasswordResetTokens)}
}

func (r *PasswordResetTokenMongo) Create(ctx context.Context, token *models.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, token)
	return mapError("failed to create reset token", err)
}

func (r *PasswordResetTokenMongo) FindUsable(ctx context.Context, token string, notBefore time.Time) (*models.PasswordResetToken, error) {
	filter := bson.M{
		"token":     token,
		"resetAt":   nil,
		"createdAt": bson.M{"$gt": notBefore},
	}

	var found models.PasswordResetToken
	if err := r.coll.FindOne(ctx, filter).Decode(&found); err != nil {
		return nil, mapError("failed to find reset token", err)
	}
	return &found, nil
}

func (r *PasswordResetTokenMongo) Consume(ctx context.Context, id string, at time.Time) (bool, error) {
	filter := bson.M{"_id": id, "resetAt": nil}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"resetAt": at}})
	if err != nil {
		return false, mapError("failed to consume reset token", err)
	}
	return result.ModifiedCount == 1, nil
}
