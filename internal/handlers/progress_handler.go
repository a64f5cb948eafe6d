package handlers

import (
	"net/http"

	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/service"
	"fadeu/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(s service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: s}
}

// RecordProgress は初回 201、更新 200
func (h *ProgressHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	wordID, err := webutil.Int64URLParam(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.RecordProgressRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.service.RecordProgress(r.Context(), userID, wordID, *req.IsKnown)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	code, msg := http.StatusOK, "Progress updated."
	if result.Created {
		code, msg = http.StatusCreated, "Progress recorded."
	}
	webutil.RespondWithJSON(w, code, model.ProgressItemResponse{
		Success: true,
		Message: msg,
		Data:    model.NewProgressResponse(result.Progress, nil),
	}, logger)
}

func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	items, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.ProgressListResponse{
		Success: true,
		Count:   len(items),
		Data:    items,
	}, logger)
}

func (h *ProgressHandler) SyncActivity(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.ActivitySyncRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	snapshot, err := h.service.SyncActivity(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.ActivityResponse{
		Success: true,
		Message: "Activity synced successfully.",
		Data:    snapshot,
	}, logger)
}

func (h *ProgressHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	snapshot, err := h.service.GetActivity(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.ActivityResponse{Success: true, Data: snapshot}, logger)
}
