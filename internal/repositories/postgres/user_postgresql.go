package postgres

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/models"
	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

type userPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &userPostgreSQL{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *userPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	user.Email = strings.ToLower(user.Email)

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}
	return &user, nil
}

func (r *userPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (r *userPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check email")
	}
	return count > 0, nil
}

func (r *userPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count users")
	}
	return count, nil
}

// ===== QUERY OPERATIONS =====

func (r *userPostgreSQL) FirstByRole(ctx context.Context, role models.UserRole) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		First(&user).Error
	if err != nil {
		return nil, handleDBError(err, "get first user by role")
	}
	return &user, nil
}

func (r *userPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Omit("hashed_password")
	if len(filters.Roles) > 0 {
		query = query.Where("role IN ?", filters.Roles)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	users := make([]*models.User, 0)
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, handleDBError(err, "list users")
	}
	return users, nil
}

// ===== UPDATE OPERATIONS =====

func (r *userPostgreSQL) Update(ctx context.Context, id string, update *models.UserUpdate) (*models.User, error) {
	changes := map[string]interface{}{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Age != nil {
		changes["age"] = *update.Age
	}
	if update.Weight != nil {
		changes["weight"] = *update.Weight
	}
	if update.Height != nil {
		changes["height"] = *update.Height
	}
	if update.Gender != nil {
		changes["gender"] = *update.Gender
	}
	if update.Goal != nil {
		changes["goal"] = *update.Goal
	}
	if update.Level != nil {
		changes["level"] = *update.Level
	}
	if update.Image != nil {
		changes["image"] = *update.Image
	}
	if update.TrainerID != nil {
		changes["trainer_id"] = *update.TrainerID
	}
	if update.Status != nil {
		changes["status"] = *update.Status
	}
	if update.IsActive != nil {
		changes["is_active"] = *update.IsActive
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(changes)
	if err := requireAffected(result, "update user"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userPostgreSQL) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"hashed_password": hashedPassword,
			"updated_at":      time.Now().UTC(),
		})
	return requireAffected(result, "update password")
}

func (r *userPostgreSQL) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	return requireAffected(result, "delete user")
}
