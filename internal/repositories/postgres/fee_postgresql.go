package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type feePostgreSQL struct {
	db *gorm.DB
}

func NewFeePostgreSQL(db *gorm.DB) repositories.FeeRepository {
	return &feePostgreSQL{db: db}
}

// feeRow is a fee joined with the student columns it references
type feeRow struct {
	models.Fee           `gorm:"embedded"`
	StudentUserID        *string
	StudentName          *string
	StudentEmail         *string
	StudentAccountNumber *string
}

func (row *feeRow) toFeeWithStudent() *models.FeeWithStudent {
	out := &models.FeeWithStudent{Fee: row.Fee}
	if row.StudentUserID != nil {
		out.Student = &models.StudentSummary{ID: *row.StudentUserID}
		if row.StudentName != nil {
			out.Student.Name = *row.StudentName
		}
		if row.StudentEmail != nil {
			out.Student.Email = *row.StudentEmail
		}
		if row.StudentAccountNumber != nil {
			out.Student.AccountNumber = *row.StudentAccountNumber
		}
	}
	return out
}

func (r *feePostgreSQL) Create(ctx context.Context, fee *models.Fee) error {
	if fee.ID == "" {
		fee.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(fee).Error; err != nil {
		return handleDBError(err, "create fee")
	}
	return nil
}

func (r *feePostgreSQL) GetByID(ctx context.Context, id string) (*models.Fee, error) {
	var fee models.Fee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&fee).Error; err != nil {
		return nil, handleDBError(err, "get fee by id")
	}
	return &fee, nil
}

func (r *feePostgreSQL) ListWithStudents(ctx context.Context, filters repositories.FeeFilters) ([]*models.FeeWithStudent, error) {
	query := r.db.WithContext(ctx).
		Table(models.CollectionFees + " AS f").
		Select("f.*, u.id AS student_user_id, u.name AS student_name, " +
			"u.email AS student_email, u.account_number AS student_account_number").
		Joins("LEFT JOIN " + models.CollectionUsers + " u ON u.id = f.student_id")
	if filters.StudentID != "" {
		query = query.Where("f.student_id = ?", filters.StudentID)
	}

	var rows []feeRow
	if err := query.Order("f.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "list fees")
	}

	fees := make([]*models.FeeWithStudent, 0, len(rows))
	for i := range rows {
		fees = append(fees, rows[i].toFeeWithStudent())
	}
	return fees, nil
}

func (r *feePostgreSQL) Totals(ctx context.Context, filters repositories.FeeFilters) (models.FeeTotals, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Fee{}).
		Select("COALESCE(SUM(amount), 0) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS income, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0) AS unpaid",
			models.FeePaid, models.FeeUnpaid)
	if filters.StudentID != "" {
		query = query.Where("student_id = ?", filters.StudentID)
	}

	var totals models.FeeTotals
	if err := query.Scan(&totals).Error; err != nil {
		return models.FeeTotals{}, handleDBError(err, "total fees")
	}
	return totals, nil
}

func (r *feePostgreSQL) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Fee{}).
		Where("id = ? AND status = ?", id, models.FeeUnpaid).
		Updates(map[string]interface{}{
			"status":     models.FeePaid,
			"paid_at":    paidAt,
			"updated_at": paidAt,
		})
	if result.Error != nil {
		return false, handleDBError(result.Error, "mark fee paid")
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}
