package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type passwordResetTokenPostgreSQL struct {
	db *gorm.DB
}

func NewPasswordResetTokenPostgreSQL(db *gorm.DB) repositories.PasswordResetTokenRepository {
	return &passwordResetTokenPostgreSQL{db: db}
}

func (r *passwordResetTokenPostgreSQL) Create(ctx context.Context, token *models.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return handleDBError(err, "create reset token")
	}
	return nil
}

func (r *passwordResetTokenPostgreSQL) FindUsable(ctx context.Context, token string, notBefore time.Time) (*models.PasswordResetToken, error) {
	var found models.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND reset_at IS NULL AND created_at > ?", token, notBefore).
		First(&found).Error
	if err != nil {
		return nil, handleDBError(err, "find reset token")
	}
	return &found, nil
}

func (r *passwordResetTokenPostgreSQL) Consume(ctx context.Context, id string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PasswordResetToken{}).
		Where("id = ? AND reset_at IS NULL", id).
		Update("reset_at", at)
	if result.Error != nil {
		return false, handleDBError(result.Error, "consume reset token")
	}
	return result.RowsAffected == 1, nil
}
