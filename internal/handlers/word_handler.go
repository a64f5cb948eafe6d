package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/service"
	"fadeu/internal/webutil"
)

type WordHandler struct {
	service service.WordService
}

func NewWordHandler(s service.WordService) *WordHandler {
	return &WordHandler{service: s}
}

// ListWords は ?level= ?search= ?shuffle= で絞り込んだ単語一覧を返します。
// トークン付きのリクエストには進捗と保存状態を付けます。
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	query := r.URL.Query()
	q := model.ListWordsQuery{
		Level:   query.Get("level"),
		Search:  strings.TrimSpace(query.Get("search")),
		Shuffle: parseFlag(query.Get("shuffle")),
	}
	if err := webutil.ValidateStruct(r, &q); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	words, err := h.service.ListWords(r.Context(), q, middleware.OptionalUserID(r.Context()))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.WordListResponse{
		Success: true,
		Count:   len(words),
		Data:    words,
	}, logger)
}

func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	wordID, err := webutil.Int64URLParam(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	word, err := h.service.GetWord(r.Context(), wordID, middleware.OptionalUserID(r.Context()))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.WordResponse{Success: true, Data: word}, logger)
}

func (h *WordHandler) AudioURL(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	wordID, err := webutil.Int64URLParam(r, "id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	u, err := h.service.AudioURL(r.Context(), wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.AudioURLResponse{Success: true, URL: u}, logger)
}

// ToggleSaved は保存したら 201、外したら 200 を返します
func (h *WordHandler) ToggleSaved(w http.ResponseWriter, r *http.Request) {
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

	status, err := h.service.ToggleSaved(r.Context(), userID, wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	code := http.StatusOK
	if status == model.ToggleSaved {
		code = http.StatusCreated
	}
	webutil.RespondWithJSON(w, code, model.ToggleSavedResponse{Success: true, Status: status}, logger)
}

func (h *WordHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	saved, err := h.service.ListSaved(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.SavedWordListResponse{
		Success: true,
		Count:   len(saved),
		Data:    saved,
	}, logger)
}

func (h *WordHandler) SaveWord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SaveWordRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	saved, err := h.service.SaveWord(r.Context(), userID, req.WordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, model.SavedWordItemResponse{Success: true, Data: saved}, logger)
}

func (h *WordHandler) UnsaveWord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	wordID, err := webutil.Int64URLParam(r, "word_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.UnsaveWord(r.Context(), userID, wordID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseFlag は "true" / "1" などを真とみなします。解釈できない値は偽。
func parseFlag(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
