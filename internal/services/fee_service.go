package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

const (
	feeNotificationPath = "/user/fees"
	feeExportSheet      = "Fees"
)

var feeExportHeaders = []string{
	"Account Number", "Student", "Email", "Description", "Amount", "Status", "Due Date", "Paid At", "Created At",
}

type feeService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewFeeService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) FeeService {
	return &feeService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ===== READS =====

func (s *feeService) List(ctx context.Context, caller models.Principal, studentID string) (*FeeListResponse, error) {
	if studentID == "" {
		if err := requireCapability(caller, models.CapManageFees, "fees", "list"); err != nil {
			return nil, err
		}
	} else if !caller.CanActOn(studentID, models.CapManageFees) {
		return nil, NewPermissionError(caller, "fees", "list")
	}

	filters := repositories.FeeFilters{StudentID: studentID}
	fees, err := s.repo.Fee().ListWithStudents(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	totals, err := s.repo.Fee().Totals(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fee totals: %w", err)
	}

	now := s.now()
	views := make([]*FeeView, 0, len(fees))
	for _, fee := range fees {
		views = append(views, &FeeView{FeeWithStudent: fee, DisplayStatus: fee.EffectiveStatus(now)})
	}

	return &FeeListResponse{Fees: views, Totals: totals}, nil
}

// ===== WRITES =====

func (s *feeService) Create(ctx context.Context, caller models.Principal, req *FeeCreateRequest) (*models.Fee, error) {
	logger := utils.WithContext(ctx, s.logger)

	if err := requireCapability(caller, models.CapManageFees, "fees", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, notFoundOr(err, msgStudentNotFound, "failed to load student")
	}
	if student.Role != models.RoleUser {
		return nil, NewNotFoundError(msgStudentNotFound)
	}

	now := s.now()
	fee := &models.Fee{
		StudentID:   student.ID,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		DueDate:     now.Add(models.DefaultFeeDueIn),
		Status:      models.FeeUnpaid,
		CreatedBy:   caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fee.Description == "" {
		fee.Description = models.DefaultFeeDescription
	}
	if req.DueDate != "" {
		due, err := time.Parse(models.DateLayout, req.DueDate)
		if err != nil {
			return nil, NewValidationError("Due date must be in YYYY-MM-DD format", map[string]string{"dueDate": req.DueDate})
		}
		fee.DueDate = due
	}

	if err := s.repo.Fee().Create(ctx, fee); err != nil {
		return nil, fmt.Errorf("failed to create fee: %w", err)
	}
	logger.Info("Fee created", "fee_id", fee.ID, "student_id", fee.StudentID, "amount", fee.Amount, "created_by", caller.ID)

	// The notification is a second write; the fee stands if it fails
	notification := &models.Notification{
		UserID:    student.ID,
		UserEmail: student.Email,
		SenderID:  caller.ID,
		Type:      models.NotificationFee,
		Text:      feeNotificationText(fee.Amount),
		PathName:  feeNotificationPath,
		CreatedAt: now,
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		logger.Error("Failed to notify student about new fee", "fee_id", fee.ID, "student_id", student.ID, "error", err)
	}

	return fee, nil
}

func feeNotificationText(amount float64) string {
	return "New fee of $" + strconv.FormatFloat(amount, 'f', -1, 64) + " has been added to your account"
}

func (s *feeService) MarkPaid(ctx context.Context, caller models.Principal, id string) (*models.Fee, error) {
	if err := requireCapability(caller, models.CapManageFees, "fees", "pay"); err != nil {
		return nil, err
	}

	changed, err := s.repo.Fee().MarkPaid(ctx, id, s.now())
	if err != nil {
		return nil, notFoundOr(err, msgFeeNotFound, "failed to mark fee paid")
	}

	fee, err := s.repo.Fee().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgFeeNotFound, "failed to load fee")
	}

	if changed {
		utils.WithContext(ctx, s.logger).Info("Fee paid", "fee_id", id, "student_id", fee.StudentID, "updated_by", caller.ID)
	}
	return fee, nil
}

// ===== EXPORT =====

func (s *feeService) Export(ctx context.Context, caller models.Principal, w io.Writer) error {
	if err := requireCapability(caller, models.CapManageFees, "fees", "export"); err != nil {
		return err
	}

	fees, err := s.repo.Fee().ListWithStudents(ctx, repositories.FeeFilters{})
	if err != nil {
		return fmt.Errorf("failed to list fees: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", feeExportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(feeExportHeaders))
	for i, h := range feeExportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(feeExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(feeExportSheet, 1, 1, style)
	}

	now := s.now()
	for i, fee := range fees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(feeExportSheet, cell, feeExportRow(fee, now)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(feeExportSheet, "A", "I", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Fees exported", "rows", len(fees), "exported_by", caller.ID)
	return nil
}

func feeExportRow(fee *models.FeeWithStudent, now time.Time) *[]interface{} {
	var accountNumber, name, email string
	if fee.Student != nil {
		accountNumber = fee.Student.AccountNumber
		name = fee.Student.Name
		email = fee.Student.Email
	}

	paidAt := ""
	if fee.PaidAt != nil {
		paidAt = fee.PaidAt.Format(time.RFC3339)
	}

	row := []interface{}{
		accountNumber,
		name,
		email,
		fee.Description,
		fee.Amount,
		string(fee.EffectiveStatus(now)),
		fee.DueDate.Format(models.DateLayout),
		paidAt,
		fee.CreatedAt.Format(time.RFC3339),
	}
	return &row
}
