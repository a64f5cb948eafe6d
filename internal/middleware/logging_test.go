package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskBody(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		contains []string
		excludes []string
	}{
		{
			name:     "正常系: パスワードとコードを伏せる",
			body:     `{"email":"a@b.com","password":"longpass1","otp":"123456"}`,
			contains: []string{`"email":"a@b.com"`, `"password":"[SENSITIVE]"`, `"otp":"[SENSITIVE]"`},
			excludes: []string{"longpass1", "123456"},
		},
		{
			name:     "正常系: ネストしたトークンも伏せる",
			body:     `{"data":[{"access":"tok-a","refresh":"tok-r"}]}`,
			excludes: []string{"tok-a", "tok-r"},
		},
		{
			name:     "正常系: JSON でないボディは中身を出さない",
			body:     `password=longpass1`,
			contains: []string{"[non-json body]"},
			excludes: []string{"longpass1"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := maskBody([]byte(tc.body))
			for _, c := range tc.contains {
				assert.Contains(t, got, c)
			}
			for _, e := range tc.excludes {
				assert.NotContains(t, got, e)
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var fromCtx *slog.Logger
	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetLogger(r.Context())
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"access":"secret-token"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(`{"password":"longpass1"}`))
	req.Header.Set("Authorization", "Bearer abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.NotNil(t, fromCtx)
	assert.NotSame(t, slog.Default(), fromCtx)
	assert.Equal(t, http.StatusCreated, rr.Code)

	out := buf.String()
	assert.Contains(t, out, "Request completed")
	assert.NotContains(t, out, "longpass1")
	assert.NotContains(t, out, "secret-token")
	assert.NotContains(t, out, "Bearer abc")
}

func TestGetLogger_Default(t *testing.T) {
	assert.Same(t, slog.Default(), GetLogger(context.Background()))
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/words/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/words/42", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	// パスの値ではなくパターンでラベル付けされる
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/words/{id}", "200")), float64(1))
	assert.Zero(t, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/words/42", "200")))
}
