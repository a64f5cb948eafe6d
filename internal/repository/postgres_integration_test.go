package repository_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fadeu/internal/model"
	"fadeu/internal/repository"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// startPostgres は postgres:15-alpine のコンテナを起動し、マイグレーション済みの接続を返します。
// Docker が使えない環境ではテストをスキップします。
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=fadeu",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge postgres container: %v", err)
		}
	})

	dsn := fmt.Sprintf("postgres://user:secret@%s/fadeu?sslmode=disable", resource.GetHostPort("5432/tcp"))
	var db *gorm.DB
	err = pool.Retry(func() error {
		var errRetry error
		db, errRetry = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if errRetry != nil {
			return errRetry
		}
		sqlDB, errRetry := db.DB()
		if errRetry != nil {
			return errRetry
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)

	stores := repository.NewStores(db, db)
	require.NoError(t, repository.MigratePrimary(context.Background(), stores, slog.Default()))
	return db
}

// 同じユーザーへの同時発行でも、コードは必ず1件だけ残る
func TestResetCodeRepository_ConcurrentIssue_Postgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	userRepo := repository.NewGormUserRepository()
	codeRepo := repository.NewGormResetCodeRepository()

	user := &model.User{ID: uuid.New(), Email: "race@example.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, userRepo.Create(ctx, db, user))

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- codeRepo.Issue(ctx, db, &model.PasswordResetCode{
				ID:        uuid.New(),
				UserID:    user.ID,
				Code:      fmt.Sprintf("%06d", i),
				CreatedAt: time.Now(),
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.PasswordResetCode{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	dup := &model.User{ID: uuid.New(), Email: "RACE@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, userRepo.Create(ctx, db, dup), model.ErrConflict)
}
