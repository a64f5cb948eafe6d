package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"fadeu/internal/config"
	"fadeu/internal/handlers"
	"fadeu/internal/middleware"
	"fadeu/internal/repository"
	"fadeu/internal/service"
)

func main() {
	// 設定読み込み用の一時的なロガー
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log.Level)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion))

	ctx := context.Background()

	// 1. ストア (ユーザーデータ: PostgreSQL, 辞書: 読み取り専用 SQLite)
	primaryDB, err := repository.NewPrimaryDB(config.Cfg.Database.PrimaryURL, logger)
	if err != nil {
		slog.Error("Error initializing primary database", slog.Any("error", err))
		os.Exit(1)
	}
	dictionaryDB, err := repository.NewDictionaryDB(config.Cfg.Database.DictionaryPath, logger)
	if err != nil {
		slog.Error("Error opening dictionary database", slog.Any("error", err))
		os.Exit(1)
	}
	stores := repository.NewStores(primaryDB, dictionaryDB)
	defer func() {
		if err := stores.Close(); err != nil {
			slog.Error("Error closing database connections", slog.Any("error", err))
		} else {
			slog.Info("Database connections closed.")
		}
	}()

	if config.Cfg.Database.AutoMigrate {
		if err := repository.MigratePrimary(ctx, stores, logger); err != nil {
			slog.Error("Error migrating primary database", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// 2. 外部サービス (メール, 回数制限, 音声URL)
	mailer, err := service.NewMailer(ctx, &config.Cfg)
	if err != nil {
		slog.Error("Error initializing mailer", slog.Any("error", err))
		os.Exit(1)
	}

	var limiter, verifyLimiter service.RateLimiter = service.NoopRateLimiter{}, service.NoopRateLimiter{}
	rl := config.Cfg.RateLimit
	if config.Cfg.Redis.URL != "" && (rl.ResetRequests > 0 || rl.VerifyAttempts > 0) {
		redisClient, err := service.NewRedisClient(ctx, config.Cfg.Redis.URL)
		if err != nil {
			// Redis が無くても起動はする
			slog.Warn("Redis unavailable, password reset rate limiting disabled", slog.Any("error", err))
		} else {
			defer redisClient.Close()
			newLimiter := func(limit int) service.RateLimiter {
				if limit == 0 {
					return service.NoopRateLimiter{}
				}
				l, err := service.NewRedisRateLimiter(redisClient, limit, rl.ResetWindow)
				if err != nil {
					slog.Error("Error initializing rate limiter", slog.Any("error", err))
					os.Exit(1)
				}
				return l
			}
			limiter = newLimiter(rl.ResetRequests)
			verifyLimiter = newLimiter(rl.VerifyAttempts)
		}
	}

	audio, err := service.NewAudioLinker(ctx, &config.Cfg.Audio)
	if err != nil {
		slog.Error("Error initializing audio linker", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	// サービスごとに書き込むエンティティの書き込み先を解決する
	txStore := func(name string, entities ...repository.Entity) *gorm.DB {
		db, err := stores.TxStore(entities...)
		if err != nil {
			slog.Error("Error resolving write store", slog.String("service", name), slog.Any("error", err))
			os.Exit(1)
		}
		return db
	}
	authDB := txStore("auth", repository.EntityUser, repository.EntityRefreshToken)
	resetDB := txStore("password_reset", repository.EntityUser, repository.EntityPasswordResetCode, repository.EntityRefreshToken)
	wordDB := txStore("word", repository.EntitySavedWord, repository.EntityUserWordProgress)
	progressDB := txStore("progress", repository.EntityUserWordProgress, repository.EntityUserActivity)

	wordReader, err := repository.NewGormWordReader(stores)
	if err != nil {
		slog.Error("Error initializing word reader", slog.Any("error", err))
		os.Exit(1)
	}
	userRepo := repository.NewGormUserRepository()
	refreshRepo := repository.NewGormRefreshTokenRepository()
	resetCodeRepo := repository.NewGormResetCodeRepository()
	progressRepo := repository.NewGormProgressRepository()
	savedRepo := repository.NewGormSavedWordRepository()
	activityRepo := repository.NewGormActivityRepository()

	authService := service.NewAuthService(authDB, userRepo, refreshRepo, &config.Cfg)
	resetService := service.NewPasswordResetService(resetDB, userRepo, resetCodeRepo, refreshRepo, mailer, limiter, &config.Cfg,
		service.WithVerifyLimiter(verifyLimiter))
	wordService := service.NewWordService(wordDB, wordReader, progressRepo, savedRepo, audio)
	progressService := service.NewProgressService(progressDB, wordReader, progressRepo, activityRepo)

	// 4. Setup Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	handlers.RegisterRoutes(r, &config.Cfg, handlers.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		PasswordReset: handlers.NewPasswordResetHandler(resetService),
		Word:          handlers.NewWordHandler(wordService),
		Progress:      handlers.NewProgressHandler(progressService),
		Health:        handlers.NewHealthHandler(stores),
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	log.Println("Server exiting")
}

// newLogger は APP_ENV=dev なら tint、それ以外は JSON のロガーを返します。
func newLogger(level string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}))
}
