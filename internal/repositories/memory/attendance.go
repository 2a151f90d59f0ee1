package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type attendanceStore struct{ r *Repository }

func attendanceKey(userID, date string) string {
	return userID + "|" + date
}

// upsertLocked writes one record; the caller holds the write lock
func (s attendanceStore) upsertLocked(record *models.AttendanceRecord) (models.AttendanceRecord, bool) {
	now := s.r.now()
	key := attendanceKey(record.UserID, record.Date)

	stored := *record
	stored.UpdatedAt = now
	existing, matched := s.r.attendance[key]
	if matched {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = newID()
		stored.CreatedAt = now
	}
	s.r.attendance[key] = stored
	return stored, matched
}

func (s attendanceStore) Upsert(_ context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	stored, _ := s.upsertLocked(record)
	return &stored, nil
}

func (s attendanceStore) BulkUpsert(_ context.Context, records []*models.AttendanceRecord) (models.BulkUpsertResult, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	var result models.BulkUpsertResult
	for _, record := range records {
		if _, matched := s.upsertLocked(record); matched {
			result.Matched++
		} else {
			result.Upserted++
		}
	}
	return result, nil
}

func (s attendanceStore) ListByUser(_ context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	records := make([]*models.AttendanceRecord, 0)
	for _, record := range s.r.attendance {
		if record.UserID != filters.UserID {
			continue
		}
		if filters.FromDate != "" && record.Date < filters.FromDate {
			continue
		}
		rec := record
		records = append(records, &rec)
	}

	sortByDateDesc(records)
	if filters.Limit > 0 && len(records) > filters.Limit {
		records = records[:filters.Limit]
	}
	return records, nil
}

func (s attendanceStore) ListByDate(_ context.Context, date string) ([]*models.AttendanceRecord, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	records := make([]*models.AttendanceRecord, 0)
	for _, record := range s.r.attendance {
		if record.Date == date {
			rec := record
			records = append(records, &rec)
		}
	}
	return records, nil
}

func sortByDateDesc(records []*models.AttendanceRecord) {
	slices.SortFunc(records, func(a, b *models.AttendanceRecord) int {
		return strings.Compare(b.Date, a.Date)
	})
}
