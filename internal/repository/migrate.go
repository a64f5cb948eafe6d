package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"fadeu/internal/repository/migrations"

	"github.com/pressly/goose/v3"
)

// gooseUpContext はテスト用の差し替えポイントです。
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// MigratePrimary は埋め込みマイグレーションをプライマリストアにだけ適用します。
// 辞書ストアは構造変更の対象外です。
func MigratePrimary(ctx context.Context, stores *Stores, logger *slog.Logger) error {
	sqlDB, err := stores.MigrationTarget().DB()
	if err != nil {
		return fmt.Errorf("MigratePrimary: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("MigratePrimary: %w", err)
	}
	if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
		logger.Error("Failed to apply migrations", slog.Any("error", err))
		return fmt.Errorf("MigratePrimary: %w", err)
	}

	logger.Info("Primary store migrations applied")
	return nil
}
