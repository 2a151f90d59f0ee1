package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type FeeMongo struct {
	coll *mongo.Collection
}

func NewFeeMongo(db *mongo.Database) repositories.FeeRepository {
	return &FeeMongo{coll: db.Collection(models.CollectionFees)}
}

func (r *FeeMongo) Create(ctx context.Context, fee *models.Fee) error {
	if fee.ID == "" {
		fee.ID = newID()
	}
	_, err := r.coll.InsertOne(ctx, fee)
	return mapError("failed to create fee", err)
}

func (r *FeeMongo) GetByID(ctx context.Context, id string) (*models.Fee, error) {
	var fee models.Fee
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&fee); err != nil {
		return nil, mapError("failed to get fee", err)
	}
	return &fee, nil
}

func feeMatch(filters repositories.FeeFilters) mongo.Pipeline {
	if filters.StudentID == "" {
		return mongo.Pipeline{}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"studentId": filters.StudentID}}},
	}
}

func (r *FeeMongo) ListWithStudents(ctx context.Context, filters repositories.FeeFilters) ([]*models.FeeWithStudent, error) {
	pipeline := append(feeMatch(filters),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         models.CollectionUsers,
			"localField":   "studentId",
			"foreignField": "_id",
			"as":           "student",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$student",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{"student.hashedPassword": 0}}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError("failed to list fees", err)
	}
	defer cursor.Close(ctx)

	fees := make([]*models.FeeWithStudent, 0)
	if err := cursor.All(ctx, &fees); err != nil {
		return nil, mapError("failed to decode fees", err)
	}
	return fees, nil
}

func sumWhenStatus(status models.FeeStatus) bson.M {
	return bson.M{"$sum": bson.M{
		"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, "$amount", 0},
	}}
}

func (r *FeeMongo) Totals(ctx context.Context, filters repositories.FeeFilters) (models.FeeTotals, error) {
	pipeline := append(feeMatch(filters),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"total":  bson.M{"$sum": "$amount"},
			"income": sumWhenStatus(models.FeePaid),
			"unpaid": sumWhenStatus(models.FeeUnpaid),
		}}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.FeeTotals{}, mapError("failed to total fees", err)
	}
	defer cursor.Close(ctx)

	var totals models.FeeTotals
	if cursor.Next(ctx) {
		if err := cursor.Decode(&totals); err != nil {
			return models.FeeTotals{}, mapError("failed to decode fee totals", err)
		}
	}
	return totals, mapError("failed to total fees", cursor.Err())
}

func (r *FeeMongo) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	filter := bson.M{"_id": id, "status": models.FeeUnpaid}
	update := bson.M{"$set": bson.M{
		"status":    models.FeePaid,
		"paidAt":    paidAt,
		"updatedAt": paidAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, mapError("failed to mark fee paid", err)
	}
	if result.MatchedCount > 0 {
		return true, nil
	}

	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, mapError("failed to mark fee paid", err)
	}
	if count == 0 {
		return false, mapError("failed to mark fee paid", mongo.ErrNoDocuments)
	}
	return false, nil
}
