package handlers_test

import (
	"net/http"
	"testing"

	"fadeu/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetHandler_RequestReset(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{name: "正常系: 常に同じメッセージ", expectedStatus: http.StatusOK},
		{
			name:           "異常系: メール送信失敗は 502",
			serviceErr:     model.NewAppError("EMAIL_SEND_FAILED", "Failed to send reset email.", "", model.ErrMailDelivery),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "EMAIL_SEND_FAILED",
		},
		{
			name:           "異常系: 回数制限は 429",
			serviceErr:     model.NewAppError("TOO_MANY_REQUESTS", "Too many reset requests.", "", model.ErrTooManyRequests),
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   "TOO_MANY_REQUESTS",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			s.reset.On("RequestReset", mock.Anything, "anna@example.com").Return(tc.serviceErr).Once()

			rr := s.do(t, http.MethodPost, "/api/v1/auth/password-reset", model.ForgotPasswordRequest{Email: "anna@example.com"}, "")

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedCode != "" {
				assert.Equal(t, tc.expectedCode, errorCode(t, rr))
				return
			}
			res := decodeBody[model.MessageResponse](t, rr)
			assert.True(t, res.Success)
			assert.Contains(t, res.Message, "If an account exists")
		})
	}
}

func TestPasswordResetHandler_VerifyCode(t *testing.T) {
	t.Run("正常系: code フィールドでも受け付ける", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.reset.On("VerifyCode", mock.Anything, "anna@example.com", "123456").
			Return(&model.VerifyCodeResult{ResetToken: "token-1"}, nil).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/auth/password-reset/verify", `{"email":"anna@example.com","code":"123456"}`, "")

		require.Equal(t, http.StatusOK, rr.Code)
		res := decodeBody[model.VerifyCodeResponse](t, rr)
		assert.Equal(t, "token-1", res.ResetToken)
		assert.Equal(t, "anna@example.com", res.Email)
	})

	t.Run("異常系: 6桁でないコードはサービスに渡らない", func(t *testing.T) {
		s := newTestServer(t, nil)
		rr := s.do(t, http.MethodPost, "/api/v1/auth/password-reset/verify", `{"email":"anna@example.com","otp":"12ab"}`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rr))
	})

	t.Run("異常系: 不一致は 400、期限切れも 400", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.reset.On("VerifyCode", mock.Anything, "anna@example.com", "111111").
			Return(nil, model.NewAppError("INVALID_CODE", "Invalid OTP code.", "otp", model.ErrInvalidCode)).Once()
		s.reset.On("VerifyCode", mock.Anything, "anna@example.com", "222222").
			Return(nil, model.NewAppError("CODE_EXPIRED", "OTP has expired.", "otp", model.ErrExpired)).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/auth/password-reset/verify", `{"email":"anna@example.com","otp":"111111"}`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "INVALID_CODE", errorCode(t, rr))

		rr = s.do(t, http.MethodPost, "/api/v1/auth/password-reset/verify", `{"email":"anna@example.com","otp":"222222"}`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "CODE_EXPIRED", errorCode(t, rr))
	})

	t.Run("異常系: 未登録のメールは 404", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.reset.On("VerifyCode", mock.Anything, "ghost@example.com", "123456").
			Return(nil, model.NewAppError("USER_NOT_FOUND", "No user found with this email address.", "email", model.ErrNotFound)).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/auth/password-reset/verify", `{"email":"ghost@example.com","otp":"123456"}`, "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestPasswordResetHandler_ResetPassword(t *testing.T) {
	body := model.ResetPasswordRequest{Email: "anna@example.com", OTP: "123456", Password: "newpass12", PasswordConfirm: "newpass12"}

	t.Run("正常系", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.reset.On("ResetPassword", mock.Anything, &body).Return(nil).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/auth/reset-password", body, "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Password has been reset successfully.", decodeBody[model.MessageResponse](t, rr).Message)
	})

	t.Run("異常系: パスワード不一致", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.reset.On("ResetPassword", mock.Anything, mock.Anything).
			Return(model.NewAppError("PASSWORD_MISMATCH", "Passwords do not match.", "password_confirm", model.ErrInvalidInput)).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/auth/reset-password", body, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "PASSWORD_MISMATCH", errorCode(t, rr))
	})

	t.Run("異常系: reset_token が UUID でない", func(t *testing.T) {
		s := newTestServer(t, nil)
		rr := s.do(t, http.MethodPost, "/api/v1/auth/reset-password",
			`{"email":"anna@example.com","reset_token":"abc","password":"newpass12","password_confirm":"newpass12"}`, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
