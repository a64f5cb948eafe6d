package service

import (
	"context"
	"errors"
	"time"

	"fadeu/internal/config"
	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name PasswordResetService --output ./mocks --outpkg mocks --case=underscore --structname MockPasswordResetService
type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*model.VerifyCodeResult, error)
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error
}

type passwordResetService struct {
	db            *gorm.DB
	userRepo      repository.UserRepository
	codeRepo      repository.ResetCodeRepository
	refreshRepo   repository.RefreshTokenRepository
	mailer        Mailer
	limiter       RateLimiter
	verifyLimiter RateLimiter
	cfg           *config.Config
	now           func() time.Time
	generateCode  func() (string, error)
}

func NewPasswordResetService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	codeRepo repository.ResetCodeRepository,
	refreshRepo repository.RefreshTokenRepository,
	mailer Mailer,
	limiter RateLimiter,
	cfg *config.Config,
	opts ...Option,
) PasswordResetService {
	o := applyOptions(opts)
	if limiter == nil {
		limiter = NoopRateLimiter{}
	}
	verifyLimiter := o.verifyLimiter
	if verifyLimiter == nil {
		verifyLimiter = limiter
	}
	return &passwordResetService{
		db:            db,
		userRepo:      userRepo,
		codeRepo:      codeRepo,
		refreshRepo:   refreshRepo,
		mailer:        mailer,
		limiter:       limiter,
		verifyLimiter: verifyLimiter,
		cfg:           cfg,
		now:           o.now,
		generateCode:  o.generateCode,
	}
}

// RequestReset は登録済みのメールアドレスにリセットコードを送ります。
// 未登録のアドレスでも成功を返し、存在の有無を漏らしません。
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	logger := middleware.GetLogger(ctx).With("email", email)

	allowed, err := s.limiter.Allow(ctx, "password_reset:"+email)
	if err != nil {
		// Redis 障害時はリセットを止めない
		logger.Error("Rate limiter unavailable, allowing request", "error", err)
	} else if !allowed {
		resetEvents.WithLabelValues(eventRateLimited).Inc()
		logger.Warn("Password reset rate limited")
		return model.NewAppError("TOO_MANY_REQUESTS", "Too many reset requests. Please try again later.", "", model.ErrTooManyRequests)
	}

	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			resetEvents.WithLabelValues(eventUnknownEmail).Inc()
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		logger.Error("Failed to look up user for reset", "error", err)
		return internalError(err)
	}

	code, err := s.generateCode()
	if err != nil {
		logger.Error("Failed to generate reset code", "error", err)
		return internalError(err)
	}
	record := &model.PasswordResetCode{
		ID:        uuid.New(),
		UserID:    user.ID,
		Code:      code,
		CreatedAt: s.now(),
	}
	if err := s.codeRepo.Issue(ctx, s.db, record); err != nil {
		logger.Error("Failed to issue reset code", "error", err, "user_id", user.ID)
		return internalError(err)
	}
	resetEvents.WithLabelValues(eventCodeIssued).Inc()

	subject, body := resetCodeMail(s.cfg.App.Name, code, s.cfg.Auth.ResetCodeTTL)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		resetEvents.WithLabelValues(eventMailFailed).Inc()
		logger.Error("Failed to send reset code email", "error", err, "user_id", user.ID)
		return model.NewAppError("EMAIL_SEND_FAILED", "Failed to send reset email. Please try again later.", "", model.ErrMailDelivery)
	}

	logger.Info("Password reset code sent", "user_id", user.ID)
	return nil
}

// VerifyCode はコードを確認し、続く ResetPassword で使える reset_token を返します。
// 確認だけではコードは消費されません。
func (s *passwordResetService) VerifyCode(ctx context.Context, email, code string) (*model.VerifyCodeResult, error) {
	email = normalizeEmail(email)
	if code == "" {
		return nil, model.NewAppError("CODE_REQUIRED", "OTP code is required.", "otp", model.ErrInvalidInput)
	}
	if err := s.allowAttempt(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	record, err := s.codeRepo.FindByUserAndCode(ctx, s.db, user.ID, code)
	if err != nil {
		return nil, s.codeLookupError(ctx, err, user.ID)
	}
	if err := s.checkExpiry(ctx, record); err != nil {
		return nil, err
	}

	resetEvents.WithLabelValues(eventCodeVerified).Inc()
	return &model.VerifyCodeResult{ResetToken: record.ID.String()}, nil
}

// ResetPassword はコード (または reset_token) を呼び出し時点の時刻で再検証し、
// パスワード更新とコード削除を1つのトランザクションで行います。
func (s *passwordResetService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)

	code := req.OneTimeCode()
	if code == "" && req.ResetToken == "" {
		return model.NewAppError("CODE_REQUIRED", "OTP code is required.", "otp", model.ErrInvalidInput)
	}
	if err := s.allowAttempt(ctx, email); err != nil {
		return err
	}

	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	var record *model.PasswordResetCode
	if code != "" {
		record, err = s.codeRepo.FindByUserAndCode(ctx, s.db, user.ID, code)
	} else {
		tokenID, parseErr := uuid.Parse(req.ResetToken)
		if parseErr != nil {
			return invalidCodeError("reset_token")
		}
		record, err = s.codeRepo.FindByIDAndUser(ctx, s.db, tokenID, user.ID)
	}
	if err != nil {
		return s.codeLookupError(ctx, err, user.ID)
	}
	if err := s.checkExpiry(ctx, record); err != nil {
		return err
	}

	if err := validateNewPassword(req.Password, req.PasswordConfirm, s.cfg.Auth.MinPasswordLength, "password", "password_confirm"); err != nil {
		return err
	}
	hashed, err := hashPassword(req.Password, "password")
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePassword(ctx, tx, user.ID, hashed); err != nil {
			return internalError(err)
		}
		if err := s.codeRepo.Delete(ctx, tx, record.ID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// 同じコードで並行してリセットされた
				return invalidCodeError("otp")
			}
			return internalError(err)
		}
		if err := s.refreshRepo.RevokeAllForUser(ctx, tx, user.ID, s.now()); err != nil {
			return internalError(err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to reset password", "error", err, "user_id", user.ID)
		return err
	}

	resetEvents.WithLabelValues(eventResetComplete).Inc()
	logger.Info("Password reset completed", "user_id", user.ID)
	return nil
}

func (s *passwordResetService) findUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "No user found with this email address.", "email", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Failed to look up user", "error", err)
		return nil, internalError(err)
	}
	return user, nil
}

func (s *passwordResetService) codeLookupError(ctx context.Context, err error, userID uuid.UUID) error {
	if errors.Is(err, model.ErrInvalidCode) || errors.Is(err, model.ErrNotFound) {
		resetEvents.WithLabelValues(eventCodeInvalid).Inc()
		middleware.GetLogger(ctx).Warn("Invalid reset code", "user_id", userID)
		return invalidCodeError("otp")
	}
	middleware.GetLogger(ctx).Error("Failed to look up reset code", "error", err, "user_id", userID)
	return internalError(err)
}

func (s *passwordResetService) checkExpiry(ctx context.Context, record *model.PasswordResetCode) error {
	if record.IsExpired(s.now(), s.cfg.Auth.ResetCodeTTL) {
		resetEvents.WithLabelValues(eventCodeExpired).Inc()
		middleware.GetLogger(ctx).Warn("Expired reset code", "user_id", record.UserID)
		return model.NewAppError("CODE_EXPIRED", "OTP has expired.", "otp", model.ErrExpired)
	}
	return nil
}

func invalidCodeError(field string) *model.AppError {
	return model.NewAppError("INVALID_CODE", "Invalid OTP code.", field, model.ErrInvalidCode)
}

// allowAttempt はメールアドレスごとのコード照合の試行回数を制限します。
// 照合と再設定は同じキーで数えます。
func (s *passwordResetService) allowAttempt(ctx context.Context, email string) error {
	allowed, err := s.verifyLimiter.Allow(ctx, "password_reset_verify:"+email)
	if err != nil {
		middleware.GetLogger(ctx).Error("Rate limiter unavailable, allowing attempt", "error", err, "email", email)
		return nil
	}
	if !allowed {
		resetEvents.WithLabelValues(eventVerifyLimited).Inc()
		middleware.GetLogger(ctx).Warn("Reset code attempts rate limited", "email", email)
		return model.NewAppError("TOO_MANY_REQUESTS", "Too many attempts. Please try again later.", "", model.ErrTooManyRequests)
	}
	return nil
}
