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

type ResetCodeRepository interface {
	// Issue はユーザーの既存コードを置き換えて新しいコードを保存します (1文で upsert)。
	Issue(ctx context.Context, db *gorm.DB, code *model.PasswordResetCode) error
	FindByUserAndCode(ctx context.Context, db *gorm.DB, userID uuid.UUID, code string) (*model.PasswordResetCode, error)
	FindByIDAndUser(ctx context.Context, db *gorm.DB, id, userID uuid.UUID) (*model.PasswordResetCode, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}

type gormResetCodeRepository struct{}

func NewGormResetCodeRepository() ResetCodeRepository {
	return &gormResetCodeRepository{}
}

func (r *gormResetCodeRepository) Issue(ctx context.Context, db *gorm.DB, code *model.PasswordResetCode) error {
	logger := middleware.GetLogger(ctx)
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "code", "created_at"}),
	}).Create(code).Error
	if err != nil {
		logger.Error("Failed to issue password reset code", "error", err, "user_id", code.UserID)
		return fmt.Errorf("gormResetCodeRepository.Issue: %w", err)
	}
	return nil
}

// FindByUserAndCode は一致するコードが無ければ model.ErrInvalidCode を返します。
func (r *gormResetCodeRepository) FindByUserAndCode(ctx context.Context, db *gorm.DB, userID uuid.UUID, code string) (*model.PasswordResetCode, error) {
	logger := middleware.GetLogger(ctx)
	var rc model.PasswordResetCode
	err := db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		Order("created_at DESC").
		First(&rc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInvalidCode
		}
		logger.Error("Failed to find password reset code", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormResetCodeRepository.FindByUserAndCode: %w", err)
	}
	return &rc, nil
}

func (r *gormResetCodeRepository) FindByIDAndUser(ctx context.Context, db *gorm.DB, id, userID uuid.UUID) (*model.PasswordResetCode, error) {
	logger := middleware.GetLogger(ctx)
	var rc model.PasswordResetCode
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&rc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInvalidCode
		}
		logger.Error("Failed to find password reset code by id", "error", err, "user_id", userID)
		return nil, fmt.Errorf("gormResetCodeRepository.FindByIDAndUser: %w", err)
	}
	return &rc, nil
}

// Delete は対象の行が無ければ model.ErrNotFound を返します (同じコードの二重消費)。
func (r *gormResetCodeRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&model.PasswordResetCode{})
	if result.Error != nil {
		logger.Error("Failed to delete password reset code", "error", result.Error)
		return fmt.Errorf("gormResetCodeRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
