package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type notificationPostgreSQL struct {
	db *gorm.DB
}

func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &notificationPostgreSQL{db: db}
}

func (r *notificationPostgreSQL) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return handleDBError(err, "create notification")
	}
	return nil
}

func (r *notificationPostgreSQL) ListForRecipient(ctx context.Context, userID, email string) ([]*models.Notification, error) {
	db := r.db.WithContext(ctx)
	notifications := make([]*models.Notification, 0)
	err := db.Where(recipientScope(db.Session(&gorm.Session{NewDB: true}), userID, email)).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, handleDBError(err, "list notifications")
	}
	return notifications, nil
}

func (r *notificationPostgreSQL) MarkRead(ctx context.Context, id string, recipient models.Principal, at time.Time) error {
	db := r.db.WithContext(ctx)
	addressed := recipientScope(db.Session(&gorm.Session{NewDB: true}), recipient.ID, recipient.Email)

	result := db.Model(&models.Notification{}).
		Where("id = ? AND read = ?", id, false).
		Where(addressed).
		Updates(map[string]interface{}{"read": true, "read_at": at})
	if result.Error != nil {
		return handleDBError(result.Error, "mark notification read")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Already read is fine; not addressed to the recipient is not found
	var count int64
	err := db.Model(&models.Notification{}).
		Where("id = ?", id).
		Where(addressed).
		Count(&count).Error
	if err != nil {
		return handleDBError(err, "mark notification read")
	}
	if count == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "mark notification read")
	}
	return nil
}
