// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternalServer  = errors.New("internal server error")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("resource conflict") // 一意制約違反
	ErrExpired         = errors.New("expired")
	ErrPermission      = errors.New("permission denied") // 読み取り専用ストアへの書き込み
	ErrMailDelivery    = errors.New("mail delivery failed")
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInvalidCode は (ユーザー, コード) に一致するリセットコードが無いことを表す。
	// 意味的には NotFound だが、HTTP では 400 として返す。
	ErrInvalidCode = fmt.Errorf("reset code %w", ErrNotFound)
)

// ErrorDetail はクライアントに返すエラーの中身です。
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// AppError はサービス層から返すエラー。Err に分類用のセンチネルを保持します。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}
