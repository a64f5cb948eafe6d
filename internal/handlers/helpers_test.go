package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fadeu/internal/config"
	"fadeu/internal/handlers"
	"fadeu/internal/model"
	"fadeu/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "fadeu-test"},
		JWT: config.JWTConfig{
			SecretKey:       "handler-test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

// testServer はモックのサービスを差し込んだルーター一式です。
type testServer struct {
	cfg      *config.Config
	router   chi.Router
	auth     *mocks.MockAuthService
	reset    *mocks.MockPasswordResetService
	words    *mocks.MockWordService
	progress *mocks.MockProgressService
}

func newTestServer(t *testing.T, pingErr error) *testServer {
	t.Helper()
	s := &testServer{
		cfg:      testConfig(),
		router:   chi.NewRouter(),
		auth:     mocks.NewMockAuthService(t),
		reset:    mocks.NewMockPasswordResetService(t),
		words:    mocks.NewMockWordService(t),
		progress: mocks.NewMockProgressService(t),
	}
	handlers.RegisterRoutes(s.router, s.cfg, handlers.Handlers{
		Auth:          handlers.NewAuthHandler(s.auth),
		PasswordReset: handlers.NewPasswordResetHandler(s.reset),
		Word:          handlers.NewWordHandler(s.words),
		Progress:      handlers.NewProgressHandler(s.progress),
		Health:        handlers.NewHealthHandler(fakePinger{err: pingErr}),
	})
	return s
}

// accessToken は本番と同じ形式 (HS256, iss=アプリ名, sub=ユーザーID) のトークンを作ります。
func (s *testServer) accessToken(t *testing.T, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.cfg.App.Name,
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	require.NoError(t, err)
	return signed
}

// do はリクエストを送ります。body が string ならそのまま送ります。
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	res := decodeBody[model.APIErrorResponse](t, rr)
	require.False(t, res.Success)
	return res.Error.Code
}

var errDB = errors.New("connection reset")
