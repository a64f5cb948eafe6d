package handlers

import (
	"net/http"

	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/service"
	"fadeu/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register は新規ユーザーを登録し、そのままログイン状態のトークンを返します
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.RegisterRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid registration request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, model.AuthResponse{
		Success: true,
		Message: "Registration successful.",
		Access:  result.Tokens.AccessToken,
		Refresh: result.Tokens.RefreshToken,
		User:    model.NewUserResponse(result.User),
	}, logger)
}

// Login はユーザーを認証し、トークンの組を返します
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		// サービス層でログは出力済み
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.AuthResponse{
		Success: true,
		Message: "Login successful.",
		Access:  result.Tokens.AccessToken,
		Refresh: result.Tokens.RefreshToken,
		User:    model.NewUserResponse(result.User),
	}, logger)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.RefreshRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.TokenResponse{
		Success: true,
		Access:  pair.AccessToken,
		Refresh: pair.RefreshToken,
	}, logger)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.ChangePasswordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.DetailResponse{
		Success: true,
		Detail:  "Password changed successfully.",
	}, logger)
}

// CheckAuth はトークンが有効であればユーザー情報を返します
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.CheckAuthResponse{
		Authenticated: true,
		User:          model.NewUserResponse(user),
	}, logger)
}

func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.ProfileResponse{
		Success: true,
		User:    model.NewUserResponse(user),
	}, logger)
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateProfileRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.ProfileResponse{
		Success: true,
		User:    model.NewUserResponse(user),
	}, logger)
}

func (h *AuthHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return nil, false
	}
	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return nil, false
	}
	return user, true
}
