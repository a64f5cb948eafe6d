package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"fadeu/internal/config"
	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testClock はテストから進められる時計です。
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testContext() context.Context {
	return middleware.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "fadeu-test"},
		JWT: config.JWTConfig{
			SecretKey:       "test-secret-key-0123456789",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Auth: config.AuthConfig{
			MinPasswordLength: 8,
			ResetCodeTTL:      time.Hour,
		},
	}
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newPrimaryDB はプライマリストアの代わりのインメモリ SQLite です。
func newPrimaryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openSQLite(t)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.PasswordResetCode{},
		&model.RefreshToken{},
		&model.UserWordProgress{},
		&model.SavedWord{},
		&model.UserActivity{},
	))
	return db
}

// newWordReader は辞書ストアを用意し、Stores 経由で WordReader を作ります。
func newWordReader(t *testing.T, primary *gorm.DB, words ...model.Word) repository.WordReader {
	t.Helper()
	dict := openSQLite(t)
	require.NoError(t, dict.AutoMigrate(&model.Word{}))
	if len(words) > 0 {
		require.NoError(t, dict.Create(&words).Error)
	}
	reader, err := repository.NewGormWordReader(repository.NewStores(primary, dict))
	require.NoError(t, err)
	return reader
}

func requireAppError(t *testing.T, err error, code string, sentinel error) {
	t.Helper()
	require.Error(t, err)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Detail.Code)
	if sentinel != nil {
		require.ErrorIs(t, err, sentinel)
	}
}

func strPtr(s string) *string { return &s }
