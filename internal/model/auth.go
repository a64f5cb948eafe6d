package model

// RegisterRequest はユーザー登録APIのリクエストボディ
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,max=72"`
	PasswordConfirm string `json:"password_confirm" validate:"required,max=72"`
	FirstName       string `json:"first_name" validate:"omitempty,max=150"`
	LastName        string `json:"last_name" validate:"omitempty,max=150"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenPair はアクセストークンとリフレッシュトークンの組です。
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// AuthResult は登録・ログイン成功時にサービスが返す内容です。
type AuthResult struct {
	User   *User
	Tokens TokenPair
}

// AuthResponse は登録・ログイン成功時のレスポンス
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    UserResponse `json:"user"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,max=72"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,max=72"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyCodeRequest は otp / code のどちらでも受け付ける
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"omitempty,len=6,numeric"`
	Code  string `json:"code" validate:"omitempty,len=6,numeric"`
}

// OneTimeCode は otp を優先して返します。
func (r *VerifyCodeRequest) OneTimeCode() string {
	if r.OTP != "" {
		return r.OTP
	}
	return r.Code
}

// ResetPasswordRequest は otp (または code) か、verify で得た reset_token のどちらかが必要
type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"omitempty,len=6,numeric"`
	Code            string `json:"code" validate:"omitempty,len=6,numeric"`
	ResetToken      string `json:"reset_token" validate:"omitempty,uuid"`
	Password        string `json:"password" validate:"required,max=72"`
	PasswordConfirm string `json:"password_confirm" validate:"required,max=72"`
}

func (r *ResetPasswordRequest) OneTimeCode() string {
	if r.OTP != "" {
		return r.OTP
	}
	return r.Code
}

type VerifyCodeResult struct {
	ResetToken string
}

type VerifyCodeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

// MessageResponse は本文がメッセージだけの成功レスポンス
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// DetailResponse はパスワード変更の成功レスポンス
type DetailResponse struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}
