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

type RefreshTokenRepository interface {
	Create(ctx context.Context, db *gorm.DB, token *model.RefreshToken) error
	FindByHash(ctx context.Context, db *gorm.DB, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error
	RevokeAllForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, at time.Time) error
}

type gormRefreshTokenRepository struct{}

func NewGormRefreshTokenRepository() RefreshTokenRepository {
	return &gormRefreshTokenRepository{}
}

func (r *gormRefreshTokenRepository) Create(ctx context.Context, db *gorm.DB, token *model.RefreshToken) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		logger.Error("Failed to create refresh token", "error", err, "user_id", token.UserID)
		return fmt.Errorf("gormRefreshTokenRepository.Create: %w", err)
	}
	return nil
}

func (r *gormRefreshTokenRepository) FindByHash(ctx context.Context, db *gorm.DB, tokenHash string) (*model.RefreshToken, error) {
	logger := middleware.GetLogger(ctx)
	var token model.RefreshToken
	if err := db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find refresh token", "error", err)
		return nil, fmt.Errorf("gormRefreshTokenRepository.FindByHash: %w", err)
	}
	return &token, nil
}

// Revoke は未失効のトークンだけを失効させます。既に失効済みなら model.ErrConflict。
func (r *gormRefreshTokenRepository) Revoke(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if result.Error != nil {
		logger.Error("Failed to revoke refresh token", "error", result.Error)
		return fmt.Errorf("gormRefreshTokenRepository.Revoke: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrConflict
	}
	return nil
}

func (r *gormRefreshTokenRepository) RevokeAllForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, at time.Time) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at)
	if result.Error != nil {
		logger.Error("Failed to revoke refresh tokens", "error", result.Error, "user_id", userID)
		return fmt.Errorf("gormRefreshTokenRepository.RevokeAllForUser: %w", result.Error)
	}
	return nil
}
