package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
	"github.com/SAP-F-2025/gym-service/internal/utils"
	"github.com/SAP-F-2025/gym-service/internal/validator"
)

type notificationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	now       func() time.Time
}

func NewNotificationService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) NotificationService {
	return &notificationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *notificationService) ListMine(ctx context.Context, caller models.Principal) ([]*models.Notification, error) {
	notifications, err := s.repo.Notification().ListForRecipient(ctx, caller.ID, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) Create(ctx context.Context, caller models.Principal, req *NotificationCreateRequest) (*models.Notification, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.UserEmail = normalizeEmail(req.UserEmail)
	if errs := s.validator.GetBusinessValidator().ValidateNotification(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	recipient, err := s.resolveRecipient(ctx, req)
	if err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:    recipient.ID,
		UserEmail: recipient.Email,
		SenderID:  caller.ID,
		Type:      models.NotificationType(req.Type),
		Text:      strings.TrimSpace(req.Text),
		PathName:  req.PathName,
		CreatedAt: s.now(),
	}
	if notification.Type == "" {
		notification.Type = models.NotificationGeneral
	}
	if notification.PathName == "" {
		notification.PathName = models.DefaultNotificationPath
	}

	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	utils.WithContext(ctx, s.logger).Info("Notification sent",
		"notification_id", notification.ID, "recipient_id", recipient.ID, "type", notification.Type, "sender_id", caller.ID)
	return notification, nil
}

// resolveRecipient looks the target up by id, else by email; a miss is a bad request
func (s *notificationService) resolveRecipient(ctx context.Context, req *NotificationCreateRequest) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if req.UserID != "" {
		user, err = s.repo.User().GetByID(ctx, req.UserID)
	} else {
		user, err = s.repo.User().GetByEmail(ctx, req.UserEmail)
	}
	if repositories.IsNotFoundError(err) {
		return nil, NewValidationError(msgRecipientRequired, map[string]string{"userId": req.UserID, "userEmail": req.UserEmail})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	return user, nil
}

func (s *notificationService) MarkRead(ctx context.Context, caller models.Principal, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("Notification ID is required", nil)
	}

	if err := s.repo.Notification().MarkRead(ctx, id, caller, s.now()); err != nil {
		return notFoundOr(err, msgNotificationMissing, "failed to mark notification read")
	}
	return nil
}
