package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"fadeu/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testWordView(id int64, german string) model.WordView {
	return model.NewWordView(model.Word{ID: id, German: german, English: "house", Persian: "خانه", Level: model.Level("A1")})
}

func TestWordHandler_ListWords(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 匿名ではユーザーIDが渡らない", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.words.On("ListWords", mock.Anything, model.ListWordsQuery{Level: "A1", Search: "haus", Shuffle: true}, (*uuid.UUID)(nil)).
			Return([]model.WordView{testWordView(1, "Haus")}, nil).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/words?level=A1&search=%20haus%20&shuffle=true", nil, "")

		require.Equal(t, http.StatusOK, rr.Code)
		res := decodeBody[model.WordListResponse](t, rr)
		assert.True(t, res.Success)
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, "Haus", res.Data[0].WordText)
	})

	t.Run("正常系: トークン付きならユーザーIDが渡る", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.words.On("ListWords", mock.Anything, model.ListWordsQuery{}, &userID).Return([]model.WordView{}, nil).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/words", nil, s.accessToken(t, userID, time.Minute))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 0, decodeBody[model.WordListResponse](t, rr).Count)
	})

	t.Run("異常系: 不正なトークンは匿名扱いにせず 401", func(t *testing.T) {
		s := newTestServer(t, nil)
		rr := s.do(t, http.MethodGet, "/api/v1/words", nil, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, rr))
	})

	t.Run("異常系: 不正なレベル", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.words.On("ListWords", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, model.NewAppError("INVALID_LEVEL", "Level must be one of A1, A2, B1, B2, C1, C2.", "level", model.ErrInvalidInput)).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/words?level=Z9", nil, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "INVALID_LEVEL", errorCode(t, rr))
	})

	t.Run("異常系: 内部エラーは詳細を返さない", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.words.On("ListWords", mock.Anything, mock.Anything, mock.Anything).Return(nil, errDB).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/words", nil, "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), errDB.Error())
	})
}

func TestWordHandler_GetWordAndAudio(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(s *testServer)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 単語詳細",
			path: "/api/v1/words/7",
			setupMock: func(s *testServer) {
				v := testWordView(7, "Haus")
				s.words.On("GetWord", mock.Anything, int64(7), (*uuid.UUID)(nil)).Return(&v, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: 数値でないID",
			path:           "/api/v1/words/abc",
			setupMock:      func(s *testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ID",
		},
		{
			name: "異常系: 存在しない単語",
			path: "/api/v1/words/99",
			setupMock: func(s *testServer) {
				s.words.On("GetWord", mock.Anything, int64(99), mock.Anything).
					Return(nil, model.NewAppError("WORD_NOT_FOUND", "Word not found.", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "WORD_NOT_FOUND",
		},
		{
			name: "正常系: 音声URL",
			path: "/api/v1/words/7/audio",
			setupMock: func(s *testServer) {
				s.words.On("AudioURL", mock.Anything, int64(7)).Return("https://cdn.example.com/audio/haus.mp3", nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "異常系: 音声なし",
			path: "/api/v1/words/8/audio",
			setupMock: func(s *testServer) {
				s.words.On("AudioURL", mock.Anything, int64(8)).
					Return("", model.NewAppError("AUDIO_NOT_AVAILABLE", "No audio available for this word.", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "AUDIO_NOT_AVAILABLE",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			tc.setupMock(s)

			rr := s.do(t, http.MethodGet, tc.path, nil, "")

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedCode != "" {
				assert.Equal(t, tc.expectedCode, errorCode(t, rr))
			}
		})
	}
}

func TestWordHandler_SavedWords(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: トグルは保存で 201、解除で 200", func(t *testing.T) {
		s := newTestServer(t, nil)
		token := s.accessToken(t, userID, time.Minute)
		s.words.On("ToggleSaved", mock.Anything, userID, int64(3)).Return(model.ToggleSaved, nil).Once()
		s.words.On("ToggleSaved", mock.Anything, userID, int64(3)).Return(model.ToggleUnsaved, nil).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/words/3/save", nil, token)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, model.ToggleSaved, decodeBody[model.ToggleSavedResponse](t, rr).Status)

		rr = s.do(t, http.MethodPost, "/api/v1/words/3/save", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, model.ToggleUnsaved, decodeBody[model.ToggleSavedResponse](t, rr).Status)
	})

	t.Run("異常系: トグルは認証が必要", func(t *testing.T) {
		s := newTestServer(t, nil)
		rr := s.do(t, http.MethodPost, "/api/v1/words/3/save", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("正常系: 一覧・保存・削除", func(t *testing.T) {
		s := newTestServer(t, nil)
		token := s.accessToken(t, userID, time.Minute)
		savedAt := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
		s.words.On("ListSaved", mock.Anything, userID).
			Return([]model.SavedWordResponse{{WordID: 3, SavedAt: savedAt}, {WordID: 4, SavedAt: savedAt}}, nil).Once()
		s.words.On("SaveWord", mock.Anything, userID, int64(5)).
			Return(&model.SavedWordResponse{WordID: 5, SavedAt: savedAt}, nil).Once()
		s.words.On("UnsaveWord", mock.Anything, userID, int64(5)).Return(nil).Once()

		rr := s.do(t, http.MethodGet, "/api/v1/saved-words", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		list := decodeBody[model.SavedWordListResponse](t, rr)
		assert.Equal(t, 2, list.Count)
		assert.Nil(t, list.Data[0].Word)

		rr = s.do(t, http.MethodPost, "/api/v1/saved-words", model.SaveWordRequest{WordID: 5}, token)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.EqualValues(t, 5, decodeBody[model.SavedWordItemResponse](t, rr).Data.WordID)

		rr = s.do(t, http.MethodDelete, "/api/v1/saved-words/5", nil, token)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("異常系: 保存済み・未保存・word_id 不正", func(t *testing.T) {
		s := newTestServer(t, nil)
		token := s.accessToken(t, userID, time.Minute)
		s.words.On("SaveWord", mock.Anything, userID, int64(5)).
			Return(nil, model.NewAppError("ALREADY_SAVED", "Word already saved.", "word_id", model.ErrConflict)).Once()
		s.words.On("UnsaveWord", mock.Anything, userID, int64(6)).
			Return(model.NewAppError("NOT_SAVED", "Word is not in your saved list.", "", model.ErrNotFound)).Once()

		rr := s.do(t, http.MethodPost, "/api/v1/saved-words", model.SaveWordRequest{WordID: 5}, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "ALREADY_SAVED", errorCode(t, rr))

		rr = s.do(t, http.MethodDelete, "/api/v1/saved-words/6", nil, token)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = s.do(t, http.MethodPost, "/api/v1/saved-words", `{"word_id":0}`, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rr))
	})
}
