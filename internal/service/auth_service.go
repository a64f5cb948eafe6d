package service

import (
	"context"
	"errors"
	"time"

	"fadeu/internal/config"
	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore --with-expecter=false --structname MockAuthService
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResult, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)
}

type authService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	refreshRepo repository.RefreshTokenRepository
	cfg         *config.Config
	now         func() time.Time
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, refreshRepo repository.RefreshTokenRepository, cfg *config.Config, opts ...Option) AuthService {
	o := applyOptions(opts)
	return &authService{
		db:          db,
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		cfg:         cfg,
		now:         o.now,
	}
}

// Register は新しいユーザーを作成し、そのままログイン状態にするためのトークンを発行します。
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResult, error) {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)

	if err := validateNewPassword(req.Password, req.PasswordConfirm, s.cfg.Auth.MinPasswordLength, "password", "password_confirm"); err != nil {
		return nil, err
	}
	hashed, err := hashPassword(req.Password, "password")
	if err != nil {
		return nil, err
	}

	var result *model.AuthResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.userRepo.FindByEmail(ctx, tx, email)
		if err == nil {
			logger.Warn("Email already exists")
			return emailExistsError()
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return internalError(err)
		}

		now := s.now()
		user := &model.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: hashed,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			// 同時登録は一意インデックスで弾かれる
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during user creation (race condition)")
				return emailExistsError()
			}
			logger.Error("Failed to create user", "error", err)
			return internalError(err)
		}

		tokens, err := s.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		result = &model.AuthResult{User: user, Tokens: *tokens}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", result.User.ID)
	return result, nil
}

func emailExistsError() *model.AppError {
	return model.NewAppError("EMAIL_ALREADY_EXISTS", "A user with this email already exists.", "email", model.ErrConflict)
}

func invalidCredentialsError() *model.AppError {
	return model.NewAppError("INVALID_CREDENTIALS", "Invalid email or password.", "", model.ErrUnauthorized)
}

// Login はユーザーを認証します。メール不明とパスワード誤りは区別しません。
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error) {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)

	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, invalidCredentialsError()
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, internalError(err)
	}

	if !passwordMatches(user.PasswordHash, req.Password) {
		logger.Warn("Login failed: password mismatch", "user_id", user.ID)
		return nil, invalidCredentialsError()
	}

	if !user.IsActive {
		logger.Warn("Login failed: account not active", "user_id", user.ID)
		return nil, model.NewAppError("ACCOUNT_INACTIVE", "This account is inactive.", "", model.ErrUnauthorized)
	}

	var tokens *model.TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateLastLogin(ctx, tx, user.ID, s.now()); err != nil {
			logger.Error("Failed to update last login", "error", err, "user_id", user.ID)
			return internalError(err)
		}
		var err error
		tokens, err = s.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Login successful", "user_id", user.ID)
	return &model.AuthResult{User: user, Tokens: *tokens}, nil
}

// Refresh はリフレッシュトークンを1回だけ使えるものとして新しい組と交換します。
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	logger := middleware.GetLogger(ctx)
	invalid := model.NewAppError("INVALID_REFRESH_TOKEN", "Token is invalid or expired.", "refresh", model.ErrUnauthorized)

	var tokens *model.TokenPair
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := s.refreshRepo.FindByHash(ctx, tx, hashToken(refreshToken))
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Refresh failed: unknown token")
				return invalid
			}
			return internalError(err)
		}

		now := s.now()
		if stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
			logger.Warn("Refresh failed: token revoked or expired", "user_id", stored.UserID)
			return invalid
		}
		if err := s.refreshRepo.Revoke(ctx, tx, stored.ID, now); err != nil {
			if errors.Is(err, model.ErrConflict) {
				// 同じトークンの同時利用
				return invalid
			}
			return internalError(err)
		}

		user, err := s.userRepo.FindByID(ctx, tx, stored.UserID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return invalid
			}
			return internalError(err)
		}
		if !user.IsActive {
			return invalid
		}

		tokens, err = s.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// ChangePassword は現在のパスワードを確認してから更新し、既存のリフレッシュトークンを失効させます。
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !passwordMatches(user.PasswordHash, req.CurrentPassword) {
		logger.Warn("Change password failed: wrong current password")
		return model.NewAppError("INVALID_CURRENT_PASSWORD", "Current password is incorrect.", "current_password", model.ErrInvalidInput)
	}
	if err := validateNewPassword(req.NewPassword, req.NewPasswordConfirm, s.cfg.Auth.MinPasswordLength, "new_password", "new_password_confirm"); err != nil {
		return err
	}
	hashed, err := hashPassword(req.NewPassword, "new_password")
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePassword(ctx, tx, userID, hashed); err != nil {
			return internalError(err)
		}
		if err := s.refreshRepo.RevokeAllForUser(ctx, tx, userID, s.now()); err != nil {
			return internalError(err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to change password", "error", err)
		return err
	}

	logger.Info("Password changed")
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.findUser(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	if req.FirstName != nil || req.LastName != nil {
		if err := s.userRepo.UpdateProfile(ctx, s.db, userID, req.FirstName, req.LastName); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, userNotFoundError()
			}
			return nil, internalError(err)
		}
	}
	return s.findUser(ctx, userID)
}

func (s *authService) findUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, userNotFoundError()
		}
		middleware.GetLogger(ctx).Error("Error finding user by ID", "error", err, "user_id", userID)
		return nil, internalError(err)
	}
	return user, nil
}

func userNotFoundError() *model.AppError {
	return model.NewAppError("USER_NOT_FOUND", "User not found.", "", model.ErrNotFound)
}

// issueTokens はアクセストークン (JWT) と、ハッシュだけを保存するリフレッシュトークンを発行します。
func (s *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *model.User) (*model.TokenPair, error) {
	logger := middleware.GetLogger(ctx)
	now := s.now()

	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.cfg.App.Name,
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "user_id", user.ID)
		return nil, internalError(err)
	}

	refresh, err := randomHex(32)
	if err != nil {
		logger.Error("Failed to generate refresh token", "error", err)
		return nil, internalError(err)
	}
	record := &model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: now.Add(s.cfg.JWT.RefreshTokenTTL),
		CreatedAt: now,
	}
	if err := s.refreshRepo.Create(ctx, tx, record); err != nil {
		return nil, internalError(err)
	}

	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
