package repository

import (
	"context"
	"errors"
	"fmt"

	"fadeu/internal/middleware"
	"fadeu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserActivity, error)
	// FindByUserForUpdate はトランザクション内で行ロックを取って読みます。
	FindByUserForUpdate(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserActivity, error)
	Create(ctx context.Context, db *gorm.DB, activity *model.UserActivity) error
	Save(ctx context.Context, db *gorm.DB, activity *model.UserActivity) error
}

type gormActivityRepository struct{}

func NewGormActivityRepository() ActivityRepository {
	return &gormActivityRepository{}
}

func (r *gormActivityRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserActivity, error) {
	return r.find(ctx, db.WithContext(ctx), userID, "FindByUser")
}

func (r *gormActivityRepository) FindByUserForUpdate(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserActivity, error) {
	// SQLite ドライバはロック句を出力しない
	return r.find(ctx, db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, "FindByUserForUpdate")
}

func (r *gormActivityRepository) find(ctx context.Context, q *gorm.DB, userID uuid.UUID, op string) (*model.UserActivity, error) {
	logger := middleware.GetLogger(ctx)
	var a model.UserActivity
	if err := q.Where("user_id = ?", userID).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find activity", "op", op, "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormActivityRepository.%s: %w", op, err)
	}
	return &a, nil
}

func (r *gormActivityRepository) Create(ctx context.Context, db *gorm.DB, activity *model.UserActivity) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(activity).Error; err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Activity row already exists", "user_id", activity.UserID)
			return model.ErrConflict
		}
		logger.Error("Failed to create activity", "error", err)
		return fmt.Errorf("gormActivityRepository.Create: %w", err)
	}
	return nil
}

func (r *gormActivityRepository) Save(ctx context.Context, db *gorm.DB, activity *model.UserActivity) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Save(activity).Error; err != nil {
		logger.Error("Failed to save activity", "error", err, "user_id", activity.UserID)
		return fmt.Errorf("gormActivityRepository.Save: %w", err)
	}
	return nil
}
