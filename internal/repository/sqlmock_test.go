package repository_test

import (
	"context"
	"errors"
	"testing"

	"fadeu/internal/model"
	"fadeu/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_Create_PostgresErrors(t *testing.T) {
	testCases := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{
			name:    "異常系: 23505 は競合に変換される",
			dbErr:   &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			wantErr: model.ErrConflict,
		},
		{
			name:  "異常系: その他のエラーはラップして返す",
			dbErr: errors.New("connection reset"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockPostgres(t)
			mock.ExpectBegin()
			mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(tc.dbErr)
			mock.ExpectRollback()

			repo := repository.NewGormUserRepository()
			err := repo.Create(context.Background(), db, &model.User{ID: uuid.New(), Email: "x@example.com"})

			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NotErrorIs(t, err, model.ErrConflict)
				assert.Contains(t, err.Error(), "gormUserRepository.Create")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSavedWordRepository_Add_PostgresConflict(t *testing.T) {
	db, mock := newMockPostgres(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "saved_words"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	repo := repository.NewGormSavedWordRepository()
	err := repo.Add(context.Background(), db, &model.SavedWord{UserID: uuid.New(), WordID: 1})
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
