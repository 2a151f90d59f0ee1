package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type attendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &attendancePostgreSQL{db: db}
}

// attendanceConflict replaces every mutable column on a (user_id, date) clash;
// id and created_at keep their first values.
func attendanceConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"check_in", "check_out", "hours_worked", "status", "notes", "updated_by", "updated_at",
		}),
	}
}

func stampForUpsert(record *models.AttendanceRecord, now time.Time) {
	if record.ID == "" {
		record.ID = newID()
	}
	record.CreatedAt = now
	record.UpdatedAt = now
}

func (r *attendancePostgreSQL) Upsert(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	stampForUpsert(record, time.Now().UTC())

	db := r.db.WithContext(ctx)
	if err := db.Clauses(attendanceConflict()).Create(record).Error; err != nil {
		return nil, handleDBError(err, "upsert attendance")
	}

	var stored models.AttendanceRecord
	err := db.Where("user_id = ? AND date = ?", record.UserID, record.Date).First(&stored).Error
	if err != nil {
		return nil, handleDBError(err, "reload attendance")
	}
	return &stored, nil
}

func (r *attendancePostgreSQL) BulkUpsert(ctx context.Context, records []*models.AttendanceRecord) (models.BulkUpsertResult, error) {
	if len(records) == 0 {
		return models.BulkUpsertResult{}, nil
	}

	now := time.Now().UTC()
	keys := make([][]interface{}, 0, len(records))
	for _, record := range records {
		stampForUpsert(record, now)
		keys = append(keys, []interface{}{record.UserID, record.Date})
	}

	var result models.BulkUpsertResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.AttendanceRecord{}).
			Where("(user_id, date) IN ?", keys).
			Count(&existing).Error; err != nil {
			return err
		}

		if err := tx.Clauses(attendanceConflict()).Create(&records).Error; err != nil {
			return err
		}

		result.Matched = existing
		result.Upserted = int64(len(records)) - existing
		return nil
	})
	if err != nil {
		return models.BulkUpsertResult{}, handleDBError(err, "bulk upsert attendance")
	}
	return result, nil
}

func (r *attendancePostgreSQL) ListByUser(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filters.UserID)
	if filters.FromDate != "" {
		query = query.Where("date >= ?", filters.FromDate)
	}
	query = query.Order("date DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	records := make([]*models.AttendanceRecord, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, handleDBError(err, "list attendance")
	}
	return records, nil
}

func (r *attendancePostgreSQL) ListByDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error) {
	records := make([]*models.AttendanceRecord, 0)
	if err := r.db.WithContext(ctx).Where("date = ?", date).Find(&records).Error; err != nil {
		return nil, handleDBError(err, "list attendance by date")
	}
	return records, nil
}
