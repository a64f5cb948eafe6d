package repository

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newGormLogger は slog を利用する GORM Logger を作成します。
func newGormLogger(appLogger *slog.Logger) gormlogger.Interface {
	// APP_ENV によって GORM のログレベルを切り替え
	gormLogLevel := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	}

	return slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	).LogMode(gormLogLevel)
}

// NewPrimaryDB は書き込み可能なプライマリストア (PostgreSQL) に接続します。
func NewPrimaryDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         newGormLogger(appLogger),
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to connect to primary database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	// Pingで接続確認
	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging primary database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Primary database connection established with GORM")
	return db, nil
}

// NewDictionaryDB は辞書ストア (SQLite ファイル) を読み取り専用で開きます。
// ファイルが存在しない場合は作成せずにエラーを返します。
func NewDictionaryDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		appLogger.Error("Dictionary database file is not accessible", slog.String("path", path), slog.Any("error", err))
		return nil, fmt.Errorf("dictionary database %q: %w", path, err)
	}

	db, err := gorm.Open(sqlite.Open(readOnlyDSN(path)), &gorm.Config{
		Logger:         newGormLogger(appLogger),
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to open dictionary database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging dictionary database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	appLogger.Info("Dictionary database opened read-only", slog.String("path", path))
	return db, nil
}

// readOnlyDSN は go-sqlite3 の URI 形式で読み取り専用の DSN を組み立てます。
func readOnlyDSN(path string) string {
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_query_only", "true")
	q.Set("_busy_timeout", "20000")
	return "file:" + path + "?" + q.Encode()
}
