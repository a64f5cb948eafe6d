package handlers

import (
	"net/http"

	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/service"
	"fadeu/internal/webutil"
)

const resetRequestedMessage = "If an account exists for this email, a password reset code has been sent."

type PasswordResetHandler struct {
	service service.PasswordResetService
}

func NewPasswordResetHandler(s service.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{service: s}
}

// RequestReset はアカウントの有無にかかわらず同じ成功レスポンスを返します
func (h *PasswordResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ForgotPasswordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.RequestReset(r.Context(), req.Email); err != nil {
		// メール送信失敗・回数制限など
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.MessageResponse{
		Success: true,
		Message: resetRequestedMessage,
	}, logger)
}

func (h *PasswordResetHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.VerifyCodeRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	res, err := h.service.VerifyCode(r.Context(), req.Email, req.OneTimeCode())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.VerifyCodeResponse{
		Success:    true,
		Message:    "OTP verified successfully.",
		Email:      req.Email,
		ResetToken: res.ResetToken,
	}, logger)
}

func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ResetPasswordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Password has been reset successfully.",
	}, logger)
}
