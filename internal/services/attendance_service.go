package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

// attendanceHistoryLimit caps the per-user history returned to clients
const attendanceHistoryLimit = 30

type attendanceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewAttendanceService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AttendanceService {
	return &attendanceService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ===== READS =====

func (s *attendanceService) History(ctx context.Context, caller models.Principal, userID, fromDate string) ([]*models.AttendanceRecord, error) {
	if !caller.CanActOn(userID, models.CapManageAttendance) {
		return nil, NewPermissionError(caller, "attendance", "read")
	}
	if fromDate != "" {
		if _, err := time.Parse(models.DateLayout, fromDate); err != nil {
			return nil, NewValidationError("Date must be in YYYY-MM-DD format", map[string]string{"date": fromDate})
		}
	}

	records, err := s.repo.Attendance().ListByUser(ctx, repositories.AttendanceFilters{
		UserID:   userID,
		FromDate: fromDate,
		Limit:    attendanceHistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (s *attendanceService) Roster(ctx context.Context, caller models.Principal, date string) ([]models.AttendanceRosterEntry, error) {
	if err := requireCapability(caller, models.CapManageAttendance, "attendance", "roster"); err != nil {
		return nil, err
	}

	if date == "" {
		date = s.now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, NewValidationError("Date must be in YYYY-MM-DD format", map[string]string{"date": date})
	}

	users, err := s.repo.User().List(ctx, repositories.UserFilters{
		Roles:  []models.UserRole{models.RoleUser, models.RoleTrainer},
		Status: models.UserStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	records, err := s.repo.Attendance().ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	byUser := make(map[string]*models.AttendanceRecord, len(records))
	for _, record := range records {
		byUser[record.UserID] = record
	}

	roster := make([]models.AttendanceRosterEntry, 0, len(users))
	for _, user := range users {
		entry := models.AttendanceRosterEntry{
			UserID:        user.ID,
			UserName:      user.Name,
			UserEmail:     user.Email,
			UserRole:      user.Role,
			AccountNumber: user.AccountNumber,
			Date:          date,
			Status:        models.AttendanceAbsent,
		}
		if record, ok := byUser[user.ID]; ok {
			entry.CheckIn = record.CheckIn
			entry.CheckOut = record.CheckOut
			entry.Status = record.Status
			entry.Notes = record.Notes
			entry.HoursWorked = record.HoursWorked
			entry.IsPresent = record.Status == models.AttendancePresent
		}
		roster = append(roster, entry)
	}

	return roster, nil
}

// ===== WRITES =====

func (s *attendanceService) Record(ctx context.Context, caller models.Principal, req *AttendanceRequest) (*models.AttendanceRecord, error) {
	if err := requireCapability(caller, models.CapManageAttendance, "attendance", "record"); err != nil {
		return nil, err
	}
	if errs := s.validator.GetBusinessValidator().ValidateAttendance(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	record, err := s.toRecord(caller, req)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Attendance().Upsert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Attendance recorded",
		"user_id", saved.UserID, "date", saved.Date, "status", saved.Status, "updated_by", caller.ID)
	return saved, nil
}

func (s *attendanceService) RecordBulk(ctx context.Context, caller models.Principal, req *BulkAttendanceRequest) (models.BulkUpsertResult, error) {
	if err := requireCapability(caller, models.CapManageAttendance, "attendance", "record"); err != nil {
		return models.BulkUpsertResult{}, err
	}
	if errs := s.validator.GetBusinessValidator().ValidateBulkAttendance(req); len(errs) > 0 {
		return models.BulkUpsertResult{}, validationFailed(errs)
	}

	records := make([]*models.AttendanceRecord, 0, len(req.Records))
	for i := range req.Records {
		record, err := s.toRecord(caller, &req.Records[i])
		if err != nil {
			return models.BulkUpsertResult{}, err
		}
		records = append(records, record)
	}

	result, err := s.repo.Attendance().BulkUpsert(ctx, records)
	if err != nil {
		return models.BulkUpsertResult{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Bulk attendance recorded",
		"records", len(records), "matched", result.Matched, "upserted", result.Upserted, "updated_by", caller.ID)
	return result, nil
}

func (s *attendanceService) toRecord(caller models.Principal, req *AttendanceRequest) (*models.AttendanceRecord, error) {
	hours, err := models.HoursBetween(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, NewValidationError("Check-out time must be after check-in time", map[string]string{
			"checkIn":  req.CheckIn,
			"checkOut": req.CheckOut,
		})
	}

	now := s.now()
	return &models.AttendanceRecord{
		UserID:      req.UserID,
		Date:        req.Date,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		HoursWorked: hours,
		Status:      models.AttendanceStatus(req.Status),
		Notes:       req.Notes,
		UpdatedBy:   caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
