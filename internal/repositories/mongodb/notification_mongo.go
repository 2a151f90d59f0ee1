package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type NotificationMongo struct {
	coll *mongo.Collection
}

func NewNotificationMongo(db *mongo.Database) repositories.NotificationRepository {
	return &NotificationMongo{coll: db.Collection(models.CollectionNotifications)}
}

// recipientFilter matches userId or userEmail; empty values never match
func recipientFilter(userID, email string) bson.A {
	or := bson.A{}
	if userID != "" {
		or = append(or, bson.M{"userId": userID})
	}
	if email != "" {
		or = append(or, bson.M{"userEmail": email})
	}
	return or
}

func (r *NotificationMongo) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, notification)
	return mapError("failed to create notification", err)
}

func (r *NotificationMongo) ListForRecipient(ctx context.Context, userID, email string) ([]*models.Notification, error) {
	or := recipientFilter(userID, email)
	if len(or) == 0 {
		return []*models.Notification{}, nil
	}

	notifications, err := findAll[models.Notification](ctx, r.coll, bson.M{"$or": or}, newestFirst())
	if err != nil {
		return nil, mapError("failed to list notifications", err)
	}
	return notifications, nil
}

func (r *NotificationMongo) MarkRead(ctx context.Context, id string, recipient models.Principal, at time.Time) error {
	or := recipientFilter(recipient.ID, recipient.Email)
	if len(or) == 0 {
		return mapError("failed to mark notification read", mongo.ErrNoDocuments)
	}

	filter := bson.M{"_id": id, "$or": or, "read": false}
	update := bson.M{"$set": bson.M{"read": true, "readAt": at}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return mapError("failed to mark notification read", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Already read is fine; not addressed to the recipient is not found
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id, "$or": or})
	if err != nil {
		return mapError("failed to mark notification read", err)
	}
	if count == 0 {
		return mapError("failed to mark notification read", mongo.ErrNoDocuments)
	}
	return nil
}
