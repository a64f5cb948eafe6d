package repository

import (
	"context"
	"fmt"

	"fadeu/internal/middleware"
	"fadeu/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name SavedWordRepository --output ./mocks --outpkg mocks --case=underscore
type SavedWordRepository interface {
	// Add は既に保存済みなら model.ErrConflict を返します。
	Add(ctx context.Context, db *gorm.DB, saved *model.SavedWord) error
	// Remove は削除した行があれば true を返します。
	Remove(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordID int64) (bool, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.SavedWord, error)
	SavedWordIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordIDs []int64) (map[int64]bool, error)
}

type gormSavedWordRepository struct{}

func NewGormSavedWordRepository() SavedWordRepository {
	return &gormSavedWordRepository{}
}

func (r *gormSavedWordRepository) Add(ctx context.Context, db *gorm.DB, saved *model.SavedWord) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(saved).Error; err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		logger.Error("Failed to save word", "error", err, "user_id", saved.UserID, "word_id", saved.WordID)
		return fmt.Errorf("gormSavedWordRepository.Add: %w", err)
	}
	return nil
}

func (r *gormSavedWordRepository) Remove(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordID int64) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("user_id = ? AND word_id = ?", userID, wordID).Delete(&model.SavedWord{})
	if result.Error != nil {
		logger.Error("Failed to unsave word", "error", result.Error, "user_id", userID, "word_id", wordID)
		return false, fmt.Errorf("gormSavedWordRepository.Remove: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListByUser は新しく保存した順に返します。
func (r *gormSavedWordRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.SavedWord, error) {
	logger := middleware.GetLogger(ctx)
	var list []*model.SavedWord
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Order("saved_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		logger.Error("Failed to list saved words", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormSavedWordRepository.ListByUser: %w", err)
	}
	return list, nil
}

func (r *gormSavedWordRepository) SavedWordIDs(ctx context.Context, db *gorm.DB, userID uuid.UUID, wordIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(wordIDs))
	if len(wordIDs) == 0 {
		return result, nil
	}
	logger := middleware.GetLogger(ctx)
	var ids []int64
	err := db.WithContext(ctx).Model(&model.SavedWord{}).
		Where("user_id = ? AND word_id IN ?", userID, wordIDs).
		Pluck("word_id", &ids).Error
	if err != nil {
		logger.Error("Failed to find saved word ids", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormSavedWordRepository.SavedWordIDs: %w", err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
