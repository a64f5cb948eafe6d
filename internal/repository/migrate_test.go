package repository

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"testing"

	"fadeu/internal/repository/migrations"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Len(t, files, 4)
	assert.Equal(t, "00001_create_users.sql", files[0])
}

func TestMigratePrimary(t *testing.T) {
	open := func(t *testing.T) *gorm.DB {
		db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)
		return db
	}

	original := gooseUpContext
	t.Cleanup(func() { gooseUpContext = original })

	t.Run("正常系: プライマリストアにだけ適用される", func(t *testing.T) {
		primary := open(t)
		dictionary := open(t)
		primarySQL, err := primary.DB()
		require.NoError(t, err)

		var gotDB *sql.DB
		var gotDir string
		gooseUpContext = func(_ context.Context, db *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			gotDB = db
			gotDir = dir
			return nil
		}

		err = MigratePrimary(context.Background(), NewStores(primary, dictionary), slog.Default())
		require.NoError(t, err)
		assert.Same(t, primarySQL, gotDB)
		assert.Equal(t, ".", gotDir)
	})

	t.Run("異常系: goose のエラーを返す", func(t *testing.T) {
		gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return errors.New("boom")
		}
		err := MigratePrimary(context.Background(), NewStores(open(t), open(t)), slog.Default())
		assert.ErrorContains(t, err, "boom")
	})
}
