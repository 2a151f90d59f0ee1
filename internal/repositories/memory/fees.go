package memory

import (
	"context"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type feeStore struct{ r *Repository }

func (s feeStore) Create(_ context.Context, fee *models.Fee) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if fee.ID == "" {
		fee.ID = newID()
	}
	if _, ok := s.r.fees[fee.ID]; ok {
		return duplicate("create fee")
	}
	s.r.fees[fee.ID] = *fee
	return nil
}

func (s feeStore) GetByID(_ context.Context, id string) (*models.Fee, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	fee, ok := s.r.fees[id]
	if !ok {
		return nil, notFound("get fee")
	}
	return &fee, nil
}

func (s feeStore) matching(filters repositories.FeeFilters) []*models.Fee {
	fees := make([]*models.Fee, 0)
	for _, fee := range s.r.fees {
		if filters.StudentID != "" && fee.StudentID != filters.StudentID {
			continue
		}
		f := fee
		fees = append(fees, &f)
	}
	return fees
}

func (s feeStore) ListWithStudents(_ context.Context, filters repositories.FeeFilters) ([]*models.FeeWithStudent, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	fees := s.matching(filters)
	byNewest(fees, func(f *models.Fee) time.Time { return f.CreatedAt }, func(f *models.Fee) string { return f.ID })

	out := make([]*models.FeeWithStudent, 0, len(fees))
	for _, fee := range fees {
		joined := &models.FeeWithStudent{Fee: *fee}
		if student, ok := s.r.users[fee.StudentID]; ok {
			joined.Student = &models.StudentSummary{
				ID:            student.ID,
				Name:          student.Name,
				Email:         student.Email,
				AccountNumber: student.AccountNumber,
			}
		}
		out = append(out, joined)
	}
	return out, nil
}

func (s feeStore) Totals(_ context.Context, filters repositories.FeeFilters) (models.FeeTotals, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	var totals models.FeeTotals
	for _, fee := range s.matching(filters) {
		totals.Total += fee.Amount
		switch fee.Status {
		case models.FeePaid:
			totals.Income += fee.Amount
		case models.FeeUnpaid:
			totals.Unpaid += fee.Amount
		}
	}
	return totals, nil
}

func (s feeStore) MarkPaid(_ context.Context, id string, paidAt time.Time) (bool, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	fee, ok := s.r.fees[id]
	if !ok {
		return false, notFound("mark fee paid")
	}
	if fee.Status != models.FeeUnpaid {
		return false, nil
	}
	fee.Status = models.FeePaid
	fee.PaidAt = &paidAt
	fee.UpdatedAt = paidAt
	s.r.fees[id] = fee
	return true, nil
}
