package service_test

import (
	"testing"
	"time"

	"fadeu/internal/config"
	"fadeu/internal/model"
	"fadeu/internal/repository"
	"fadeu/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite

	db          *gorm.DB
	clock       *testClock
	cfg         *config.Config
	authService service.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = newPrimaryDB(s.T())
	s.clock = newTestClock()
	s.cfg = testConfig()
	s.authService = service.NewAuthService(
		s.db,
		repository.NewGormUserRepository(),
		repository.NewGormRefreshTokenRepository(),
		s.cfg,
		service.WithClock(s.clock.Now),
	)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) register(email, password string) *model.AuthResult {
	res, err := s.authService.Register(testContext(), &model.RegisterRequest{
		Email: email, Password: password, PasswordConfirm: password, FirstName: "Anna",
	})
	s.Require().NoError(err)
	return res
}

func (s *AuthServiceTestSuite) TestRegister() {
	testCases := []struct {
		name     string
		existing string
		req      *model.RegisterRequest
		code     string
		sentinel error
	}{
		{
			name: "正常系: 登録できトークンが発行される",
			req:  &model.RegisterRequest{Email: " A@B.com ", Password: "longpass1", PasswordConfirm: "longpass1"},
		},
		{
			name:     "異常系: 大文字小文字違いのメールアドレスは重複",
			existing: "a@b.com",
			req:      &model.RegisterRequest{Email: "A@B.COM", Password: "longpass1", PasswordConfirm: "longpass1"},
			code:     "EMAIL_ALREADY_EXISTS",
			sentinel: model.ErrConflict,
		},
		{
			name:     "異常系: パスワードが短い",
			req:      &model.RegisterRequest{Email: "a@b.com", Password: "short1", PasswordConfirm: "short1"},
			code:     "PASSWORD_TOO_SHORT",
			sentinel: model.ErrInvalidInput,
		},
		{
			name:     "異常系: 確認用パスワードが一致しない",
			req:      &model.RegisterRequest{Email: "a@b.com", Password: "longpass1", PasswordConfirm: "longpass2"},
			code:     "PASSWORD_MISMATCH",
			sentinel: model.ErrInvalidInput,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			if tc.existing != "" {
				s.register(tc.existing, "longpass1")
			}

			res, err := s.authService.Register(testContext(), tc.req)

			if tc.code != "" {
				requireAppError(s.T(), err, tc.code, tc.sentinel)
				s.Nil(res)
				return
			}
			s.Require().NoError(err)
			s.Equal("a@b.com", res.User.Email)
			s.True(res.User.IsActive)
			s.False(res.User.IsStaff)
			s.NotEmpty(res.Tokens.AccessToken)
			s.NotEmpty(res.Tokens.RefreshToken)
			s.NotEqual("longpass1", res.User.PasswordHash)
		})
	}
}

func (s *AuthServiceTestSuite) TestLogin() {
	s.register("a@b.com", "longpass1")

	s.Run("正常系: 登録直後に同じパスワードでログインできる", func() {
		res, err := s.authService.Login(testContext(), &model.LoginRequest{Email: "A@b.COM", Password: "longpass1"})
		s.Require().NoError(err)
		s.Equal("a@b.com", res.User.Email)

		var u model.User
		s.Require().NoError(s.db.First(&u, "id = ?", res.User.ID).Error)
		s.Require().NotNil(u.LastLogin)
		s.WithinDuration(s.clock.Now(), *u.LastLogin, time.Second)
	})

	s.Run("異常系: パスワード誤りと未登録は同じエラー", func() {
		_, errWrong := s.authService.Login(testContext(), &model.LoginRequest{Email: "a@b.com", Password: "wrongpass"})
		requireAppError(s.T(), errWrong, "INVALID_CREDENTIALS", model.ErrUnauthorized)

		_, errUnknown := s.authService.Login(testContext(), &model.LoginRequest{Email: "nobody@b.com", Password: "longpass1"})
		requireAppError(s.T(), errUnknown, "INVALID_CREDENTIALS", model.ErrUnauthorized)
		s.Equal(errWrong.Error(), errUnknown.Error())
	})

	s.Run("異常系: 無効化されたアカウント", func() {
		s.Require().NoError(s.db.Model(&model.User{}).Where("email = ?", "a@b.com").Update("is_active", false).Error)
		_, err := s.authService.Login(testContext(), &model.LoginRequest{Email: "a@b.com", Password: "longpass1"})
		requireAppError(s.T(), err, "ACCOUNT_INACTIVE", model.ErrUnauthorized)
	})
}

func (s *AuthServiceTestSuite) TestAccessTokenClaims() {
	res := s.register("claims@b.com", "longpass1")

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(res.Tokens.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	s.Require().NoError(err)
	s.Equal(res.User.ID.String(), claims.Subject)
	s.Equal("fadeu-test", claims.Issuer)
	s.Equal(s.clock.Now().Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
	s.NotEmpty(claims.ID)
}

func (s *AuthServiceTestSuite) TestRefresh() {
	res := s.register("refresh@b.com", "longpass1")

	s.Run("正常系: ローテーションされ古いトークンは使えない", func() {
		pair, err := s.authService.Refresh(testContext(), res.Tokens.RefreshToken)
		s.Require().NoError(err)
		s.NotEqual(res.Tokens.RefreshToken, pair.RefreshToken)

		_, err = s.authService.Refresh(testContext(), res.Tokens.RefreshToken)
		requireAppError(s.T(), err, "INVALID_REFRESH_TOKEN", model.ErrUnauthorized)

		res.Tokens = *pair
	})

	s.Run("異常系: 期限切れ", func() {
		s.clock.Advance(8 * 24 * time.Hour)
		_, err := s.authService.Refresh(testContext(), res.Tokens.RefreshToken)
		requireAppError(s.T(), err, "INVALID_REFRESH_TOKEN", model.ErrUnauthorized)
	})

	s.Run("異常系: 未知のトークン", func() {
		_, err := s.authService.Refresh(testContext(), "deadbeef")
		requireAppError(s.T(), err, "INVALID_REFRESH_TOKEN", model.ErrUnauthorized)
	})
}

func (s *AuthServiceTestSuite) TestChangePassword() {
	res := s.register("change@b.com", "longpass1")
	userID := res.User.ID

	testCases := []struct {
		name string
		req  *model.ChangePasswordRequest
		code string
	}{
		{
			name: "異常系: 現在のパスワードが違う",
			req:  &model.ChangePasswordRequest{CurrentPassword: "nope12345", NewPassword: "newpass12", NewPasswordConfirm: "newpass12"},
			code: "INVALID_CURRENT_PASSWORD",
		},
		{
			name: "異常系: 新しいパスワードが一致しない",
			req:  &model.ChangePasswordRequest{CurrentPassword: "longpass1", NewPassword: "newpass12", NewPasswordConfirm: "newpass13"},
			code: "PASSWORD_MISMATCH",
		},
		{
			name: "異常系: 新しいパスワードが短い",
			req:  &model.ChangePasswordRequest{CurrentPassword: "longpass1", NewPassword: "short", NewPasswordConfirm: "short"},
			code: "PASSWORD_TOO_SHORT",
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.authService.ChangePassword(testContext(), userID, tc.req)
			requireAppError(s.T(), err, tc.code, model.ErrInvalidInput)
		})
	}

	s.Run("正常系: 変更後は新しいパスワードだけが通り、リフレッシュトークンは失効する", func() {
		err := s.authService.ChangePassword(testContext(), userID, &model.ChangePasswordRequest{
			CurrentPassword: "longpass1", NewPassword: "newpass12", NewPasswordConfirm: "newpass12",
		})
		s.Require().NoError(err)

		_, err = s.authService.Login(testContext(), &model.LoginRequest{Email: "change@b.com", Password: "longpass1"})
		requireAppError(s.T(), err, "INVALID_CREDENTIALS", model.ErrUnauthorized)
		_, err = s.authService.Login(testContext(), &model.LoginRequest{Email: "change@b.com", Password: "newpass12"})
		s.NoError(err)

		_, err = s.authService.Refresh(testContext(), res.Tokens.RefreshToken)
		requireAppError(s.T(), err, "INVALID_REFRESH_TOKEN", model.ErrUnauthorized)
	})
}

func (s *AuthServiceTestSuite) TestProfile() {
	res := s.register("profile@b.com", "longpass1")

	user, err := s.authService.UpdateProfile(testContext(), res.User.ID, &model.UpdateProfileRequest{LastName: strPtr("Schmidt")})
	s.Require().NoError(err)
	s.Equal("Anna", user.FirstName)
	s.Equal("Schmidt", user.LastName)

	got, err := s.authService.GetProfile(testContext(), res.User.ID)
	s.Require().NoError(err)
	s.Equal("Schmidt", got.LastName)

	_, err = s.authService.GetProfile(testContext(), uuid.New())
	requireAppError(s.T(), err, "USER_NOT_FOUND", model.ErrNotFound)
}
