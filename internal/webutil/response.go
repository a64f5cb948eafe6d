// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fadeu/internal/model"

	"github.com/go-playground/validator/v10"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
// AppError 以外のエラーはログに残し、クライアントには汎用メッセージだけを返します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	statusCode := MapErrorToStatusCode(err)

	var appErr *model.AppError
	errResp := model.APIErrorResponse{Success: false}

	switch {
	case errors.As(err, &appErr) && statusCode != http.StatusInternalServerError:
		errResp.Error = appErr.Detail
		logger.Warn("Request failed", "code", appErr.Detail.Code, "status", statusCode, "error", err)
	case statusCode != http.StatusInternalServerError:
		// センチネルがそのまま届いた場合
		errResp.Error = model.ErrorDetail{
			Code:    strings.ToUpper(strings.ReplaceAll(http.StatusText(statusCode), " ", "_")),
			Message: http.StatusText(statusCode),
		}
		logger.Warn("Request failed", "status", statusCode, "error", err)
	default:
		// 500 は内部情報を出さない
		logger.Error("Unhandled error", "error", err, "status", statusCode)
		errResp.Error = model.ErrorDetail{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: "An unexpected error occurred.",
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	// AppErrorの場合は、ラップされたエラーで判定する
	if errors.As(err, &appErr) {
		err = appErr.Unwrap()
	}

	switch {
	// ErrInvalidCode は ErrNotFound を包んでいるので先に判定する
	case errors.Is(err, model.ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrExpired),
		errors.Is(err, model.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, model.ErrMailDelivery):
		return http.StatusBadGateway
	default:
		// ErrPermission を含め、その他は内部エラー
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":{"code":"INTERNAL_SERVER_ERROR","message":"An unexpected error occurred."}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// NewValidationErrorResponse は validator のエラーをリクエストの言語に合わせたメッセージにします。
func NewValidationErrorResponse(r *http.Request, errs validator.ValidationErrors) *model.AppError {
	trans := TranslatorFor(r)
	fields := make([]string, 0, len(errs))
	messages := make([]string, 0, len(errs))

	for _, fe := range errs {
		fields = append(fields, fe.Field())
		messages = append(messages, fe.Translate(trans))
	}

	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, "; "),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}
