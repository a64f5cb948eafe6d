package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fadeu/internal/middleware"
	"fadeu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, db *gorm.DB, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error
	UpdateProfile(ctx context.Context, db *gorm.DB, id uuid.UUID, firstName, lastName *string) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			logger.Warn("User email already exists", "email", user.Email)
			return model.ErrConflict
		}
		logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("gormUserRepository.Create: %w", err)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find user by id", "error", err, "user_id", id)
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", err)
	}
	return &user, nil
}

// FindByEmail は大文字小文字を区別せずに検索します。
func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	if err := db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find user by email", "error", err)
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", err)
	}
	return &user, nil
}

func (r *gormUserRepository) UpdatePassword(ctx context.Context, db *gorm.DB, id uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, db, id, "UpdatePassword", map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
}

func (r *gormUserRepository) UpdateLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error {
	return r.updateColumns(ctx, db, id, "UpdateLastLogin", map[string]interface{}{
		"last_login": at,
	})
}

// UpdateProfile は nil でない項目だけを更新します。
func (r *gormUserRepository) UpdateProfile(ctx context.Context, db *gorm.DB, id uuid.UUID, firstName, lastName *string) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if firstName != nil {
		updates["first_name"] = *firstName
	}
	if lastName != nil {
		updates["last_name"] = *lastName
	}
	return r.updateColumns(ctx, db, id, "UpdateProfile", updates)
}

func (r *gormUserRepository) updateColumns(ctx context.Context, db *gorm.DB, id uuid.UUID, op string, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.Error("Failed to update user", "op", op, "error", result.Error, "user_id", id)
		return fmt.Errorf("gormUserRepository.%s: %w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
