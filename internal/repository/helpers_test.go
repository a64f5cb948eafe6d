package repository_test

import (
	"fmt"
	"testing"

	"fadeu/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB はテストごとに独立したインメモリ SQLite を作成し、プライマリ側のテーブルを作ります。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.PasswordResetCode{},
		&model.RefreshToken{},
		&model.UserWordProgress{},
		&model.SavedWord{},
		&model.UserActivity{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newDictionaryTestDB は単語テーブルだけを持つ辞書ストアの代わりです。
func newDictionaryTestDB(t *testing.T, words ...model.Word) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Word{}))
	if len(words) > 0 {
		require.NoError(t, db.Create(&words).Error)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
