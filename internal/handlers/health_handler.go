package handlers

import (
	"context"
	"net/http"
	"time"

	"fadeu/internal/middleware"
	"fadeu/internal/webutil"
)

// Pinger は疎通確認できるストアです。repository.Stores が満たします。
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	stores Pinger
}

func NewHealthHandler(stores Pinger) *HealthHandler {
	return &HealthHandler{stores: stores}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health は両方のストアに ping し、どちらかが応答しなければ 503 を返します
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.stores.Ping(ctx); err != nil {
		logger.Error("Health check failed", "error", err)
		webutil.RespondWithJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"}, logger)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, healthResponse{Status: "ok"}, logger)
}
