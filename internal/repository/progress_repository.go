package repository

import (
	"context"
	"errors"
	"fmt"

	"fadeu/internal/middleware"
	"fadeu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
type ProgressRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordID int64) (*model.UserWordProgress, error)
	Create(ctx context.Context, db *gorm.DB, progress *model.UserWordProgress) error
	Update(ctx context.Context, db *gorm.DB, progress *model.UserWordProgress) error
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserWordProgress, error)
	FindByWordIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordIDs []int64) (map[int64]*model.UserWordProgress, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordID int64) (*model.UserWordProgress, error) {
	logger := middleware.GetLogger(ctx)
	var p model.UserWordProgress
	if err := db.WithContext(ctx).Where("user_id = ? AND word_id = ?", userID, wordID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find progress", "error", err, "user_id", userID, "word_id", wordID)
		return nil, fmt.Errorf("gormProgressRepository.Find: %w", err)
	}
	return &p, nil
}

func (r *gormProgressRepository) Create(ctx context.Context, db *gorm.DB, progress *model.UserWordProgress) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(progress).Error; err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Progress already exists", "user_id", progress.UserID, "word_id", progress.WordID)
			return model.ErrConflict
		}
		logger.Error("Failed to create progress", "error", err)
		return fmt.Errorf("gormProgressRepository.Create: %w", err)
	}
	return nil
}

func (r *gormProgressRepository) Update(ctx context.Context, db *gorm.DB, progress *model.UserWordProgress) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.UserWordProgress{}).
		Where("id = ?", progress.ID).
		Updates(map[string]interface{}{
			"is_known":      progress.IsKnown,
			"review_count":  progress.ReviewCount,
			"last_reviewed": progress.LastReviewed,
		})
	if result.Error != nil {
		logger.Error("Failed to update progress", "error", result.Error, "progress_id", progress.ID)
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProgressRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserWordProgress, error) {
	logger := middleware.GetLogger(ctx)
	var list []*model.UserWordProgress
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Order("last_reviewed DESC").Find(&list).Error; err != nil {
		logger.Error("Failed to list progress", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormProgressRepository.ListByUser: %w", err)
	}
	return list, nil
}

// FindByWordIDs は単語一覧に進捗を付けるため、1クエリでまとめて取得します。
func (r *gormProgressRepository) FindByWordIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordIDs []int64) (map[int64]*model.UserWordProgress, error) {
	result := make(map[int64]*model.UserWordProgress, len(wordIDs))
	if len(wordIDs) == 0 {
		return result, nil
	}
	logger := middleware.GetLogger(ctx)
	var list []*model.UserWordProgress
	if err := db.WithContext(ctx).Where("user_id = ? AND word_id IN ?", userID, wordIDs).Find(&list).Error; err != nil {
		logger.Error("Failed to find progress by word ids", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormProgressRepository.FindByWordIDs: %w", err)
	}
	for _, p := range list {
		result[p.WordID] = p
	}
	return result, nil
}
