package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fadeu/internal/config"
	"fadeu/internal/model"
	"fadeu/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errNoToken = errors.New("authorization header missing")

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを必須とするミドルウェアです。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			userID, err := userIDFromRequest(r, cfg)
			if err != nil {
				logger.Warn("JWT auth failed", "error", err)
				webutil.HandleError(w, logger, authError(err))
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWTAuth はトークンがあれば検証してユーザーを設定し、無ければ匿名で通します。
// トークンが付いているのに不正な場合は 401 です。
func OptionalJWTAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			userID, err := userIDFromRequest(r, cfg)
			switch {
			case errors.Is(err, errNoToken):
				next.ServeHTTP(w, r)
			case err != nil:
				logger.Warn("Optional JWT auth failed", "error", err)
				webutil.HandleError(w, logger, authError(err))
			default:
				ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

func authError(err error) *model.AppError {
	if errors.Is(err, errNoToken) {
		return model.NewAppError("UNAUTHORIZED", "Authentication credentials were not provided.", "", model.ErrUnauthorized)
	}
	return model.NewAppError("INVALID_TOKEN", "Given token not valid or expired.", "", model.ErrUnauthorized)
}

// userIDFromRequest は "Bearer {token}" を取り出して署名・有効期限・subject を検証します。
func userIDFromRequest(r *http.Request, cfg *config.Config) (uuid.UUID, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, errNoToken
	}

	headerParts := strings.Fields(authHeader)
	if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
		return uuid.Nil, errors.New("invalid authorization header format")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.App.Name),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("invalid subject claim")
	}
	return userID, nil
}

// GetUserIDFromContext は認証ミドルウェアが設定したユーザーIDを返します。
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "Authentication credentials were not provided.", "", model.ErrUnauthorized)
	}
	return value, nil
}

// OptionalUserID は匿名なら nil を返します。
func OptionalUserID(ctx context.Context) *uuid.UUID {
	if value, ok := ctx.Value(model.UserIDKey).(uuid.UUID); ok {
		return &value
	}
	return nil
}
