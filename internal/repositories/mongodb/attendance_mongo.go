package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type AttendanceMongo struct {
	coll *mongo.Collection
}

func NewAttendanceMongo(db *mongo.Database) repositories.AttendanceRepository {
	return &AttendanceMongo{coll: db.Collection(models.CollectionAttendance)}
}

// upsertParts builds the key filter and update document for one record.
// _id and createdAt are only written on insert.
func upsertParts(record *models.AttendanceRecord, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"userId": record.UserID, "date": record.Date}
	update := bson.M{
		"$set": bson.M{
			"checkIn":     record.CheckIn,
			"checkOut":    record.CheckOut,
			"hoursWorked": record.HoursWorked,
			"status":      record.Status,
			"notes":       record.Notes,
			"updatedBy":   record.UpdatedBy,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"_id":       newID(),
			"createdAt": now,
		},
	}
	return filter, update
}

func (r *AttendanceMongo) Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	filter, update := upsertParts(record, time.Now().UTC())
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.AttendanceRecord
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, mapError("failed to upsert attendance", err)
	}
	return &stored, nil
}

func (r *AttendanceMongo) BulkUpsert(ctx context.Context, records []*models.AttendanceRecord) (models.BulkUpsertResult, error) {
	if len(records) == 0 {
		return models.BulkUpsertResult{}, nil
	}

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(records))
	for _, record := range records {
		filter, update := upsertParts(record, now)
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
	}

	result, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return models.BulkUpsertResult{}, mapError("failed to bulk upsert attendance", err)
	}
	return models.BulkUpsertResult{
		Matched:  result.MatchedCount,
		Upserted: result.UpsertedCount,
	}, nil
}

func (r *AttendanceMongo) ListByUser(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	filter := bson.M{"userId": filters.UserID}
	if filters.FromDate != "" {
		filter["date"] = bson.M{"$gte": filters.FromDate}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if filters.Limit > 0 {
		opts.SetLimit(int64(filters.Limit))
	}

	records, err := findAll[models.AttendanceRecord](ctx, r.coll, filter, opts)
	if err != nil {
		return nil, mapError("failed to list attendance", err)
	}
	return records, nil
}

func (r *AttendanceMongo) ListByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	records, err := findAll[models.AttendanceRecord](ctx, r.coll, bson.M{"date": date})
	if err != nil {
		return nil, mapError("failed to list attendance by date", err)
	}
	return records, nil
}
