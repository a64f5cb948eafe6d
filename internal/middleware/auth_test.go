package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fadeu/internal/config"
	"fadeu/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "fadeu"},
		JWT: config.JWTConfig{SecretKey: "test-secret-key-0123456789"},
	}
}

func signToken(t *testing.T, secret, issuer, subject string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

// echoUser は認証結果をステータスで返すテスト用ハンドラです。
func echoUser(t *testing.T, want *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := middleware.OptionalUserID(r.Context())
		if want == nil {
			assert.Nil(t, got)
		} else {
			require.NotNil(t, got)
			assert.Equal(t, *want, *got)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()
	valid := signToken(t, cfg.JWT.SecretKey, "fadeu", userID.String(), time.Now().Add(time.Minute))

	testCases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"正常系: 有効なトークン", "Bearer " + valid, http.StatusNoContent},
		{"異常系: ヘッダーなし", "", http.StatusUnauthorized},
		{"異常系: Bearer 以外", "Token " + valid, http.StatusUnauthorized},
		{"異常系: 期限切れ", "Bearer " + signToken(t, cfg.JWT.SecretKey, "fadeu", userID.String(), time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"異常系: 署名キーが違う", "Bearer " + signToken(t, "another-secret-key-xxxxx", "fadeu", userID.String(), time.Now().Add(time.Minute)), http.StatusUnauthorized},
		{"異常系: 発行者が違う", "Bearer " + signToken(t, cfg.JWT.SecretKey, "other", userID.String(), time.Now().Add(time.Minute)), http.StatusUnauthorized},
		{"異常系: subject が UUID でない", "Bearer " + signToken(t, cfg.JWT.SecretKey, "fadeu", "42", time.Now().Add(time.Minute)), http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.JWTAuthMiddleware(cfg)(echoUser(t, &userID))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestOptionalJWTAuth(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()

	t.Run("正常系: トークンなしは匿名", func(t *testing.T) {
		rr := httptest.NewRecorder()
		middleware.OptionalJWTAuth(cfg)(echoUser(t, nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("正常系: 有効なトークンはユーザーを設定", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWT.SecretKey, "fadeu", userID.String(), time.Now().Add(time.Minute)))
		rr := httptest.NewRecorder()
		middleware.OptionalJWTAuth(cfg)(echoUser(t, &userID)).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("異常系: 不正なトークンは匿名扱いにしない", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()
		middleware.OptionalJWTAuth(cfg)(echoUser(t, nil)).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
