package handlers

import (
	"fadeu/internal/config"
	"fadeu/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers はルーティングに必要なハンドラ一式です。
type Handlers struct {
	Auth          *AuthHandler
	PasswordReset *PasswordResetHandler
	Word          *WordHandler
	Progress      *ProgressHandler
	Health        *HealthHandler
}

// RegisterRoutes は /api/v1 以下の API と /health, /metrics を登録します。
// 共通ミドルウェア (ロギング・CORS など) は呼び出し側で設定します。
func RegisterRoutes(r chi.Router, cfg *config.Config, h Handlers) {
	requireAuth := middleware.JWTAuthMiddleware(cfg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/token", h.Auth.Login)
			r.Post("/token/refresh", h.Auth.Refresh)
			r.Post("/password-reset", h.PasswordReset.RequestReset)
			r.Post("/password-reset/verify", h.PasswordReset.VerifyCode)
			r.Post("/reset-password", h.PasswordReset.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/password/change", h.Auth.ChangePassword)
				r.Get("/check", h.Auth.CheckAuth)
			})
		})

		// 単語の参照は匿名でも可。トークンがあれば進捗を付ける
		r.Route("/words", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalJWTAuth(cfg))
				r.Get("/", h.Word.ListWords)
				r.Get("/{id}", h.Word.GetWord)
				r.Get("/{id}/audio", h.Word.AudioURL)
			})
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{id}/progress", h.Progress.RecordProgress)
				r.Post("/{id}/save", h.Word.ToggleSaved)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users/me", h.Auth.GetMe)
			r.Patch("/users/me", h.Auth.UpdateMe)

			r.Get("/progress", h.Progress.ListProgress)

			r.Route("/saved-words", func(r chi.Router) {
				r.Get("/", h.Word.ListSaved)
				r.Post("/", h.Word.SaveWord)
				r.Delete("/{word_id}", h.Word.UnsaveWord)
			})

			r.Post("/activity/sync", h.Progress.SyncActivity)
			r.Get("/activity", h.Progress.GetActivity)
		})
	})

	r.Get("/health", h.Health.Health)
	r.Handle("/metrics", promhttp.Handler())
}
