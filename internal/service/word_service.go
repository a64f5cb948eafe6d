package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name WordService --output ./mocks --outpkg mocks --case=underscore --structname MockWordService
type WordService interface {
	ListWords(ctx context.Context, q model.ListWordsQuery, userID *uuid.UUID) ([]model.WordView, error)
	GetWord(ctx context.Context, wordID int64, userID *uuid.UUID) (*model.WordView, error)
	ToggleSaved(ctx context.Context, userID uuid.UUID, wordID int64) (model.ToggleStatus, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]model.SavedWordResponse, error)
	SaveWord(ctx context.Context, userID uuid.UUID, wordID int64) (*model.SavedWordResponse, error)
	UnsaveWord(ctx context.Context, userID uuid.UUID, wordID int64) error
	AudioURL(ctx context.Context, wordID int64) (string, error)
}

type wordService struct {
	db           *gorm.DB
	words        repository.WordReader
	progressRepo repository.ProgressRepository
	savedRepo    repository.SavedWordRepository
	audio        AudioLinker
	now          func() time.Time
}

func NewWordService(
	db *gorm.DB,
	words repository.WordReader,
	progressRepo repository.ProgressRepository,
	savedRepo repository.SavedWordRepository,
	audio AudioLinker,
	opts ...Option,
) WordService {
	o := applyOptions(opts)
	if audio == nil {
		audio = DisabledAudioLinker{}
	}
	return &wordService{
		db:           db,
		words:        words,
		progressRepo: progressRepo,
		savedRepo:    savedRepo,
		audio:        audio,
		now:          o.now,
	}
}

// ListWords は絞り込んだ単語を返します。ページングはせず、該当する全件を返します。
func (s *wordService) ListWords(ctx context.Context, q model.ListWordsQuery, userID *uuid.UUID) ([]model.WordView, error) {
	filter := model.WordFilter{Search: q.Search, Shuffle: q.Shuffle}
	if lv := strings.TrimSpace(q.Level); lv != "" && !strings.EqualFold(lv, "all") {
		level, ok := model.ParseLevel(lv)
		if !ok {
			return nil, model.NewAppError("INVALID_LEVEL", "Level must be one of A1, A2, B1, B2, C1, C2.", "level", model.ErrInvalidInput)
		}
		filter.Level = level
	}

	words, err := s.words.List(ctx, filter)
	if err != nil {
		return nil, internalError(err)
	}
	if filter.Shuffle {
		rand.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	}

	return s.decorate(ctx, words, userID)
}

func (s *wordService) GetWord(ctx context.Context, wordID int64, userID *uuid.UUID) (*model.WordView, error) {
	w, err := s.findWord(ctx, wordID)
	if err != nil {
		return nil, err
	}
	views, err := s.decorate(ctx, []*model.Word{w}, userID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// decorate は認証済みユーザーの進捗と保存状態を付けます。それぞれ1回のクエリでまとめて取得します。
func (s *wordService) decorate(ctx context.Context, words []*model.Word, userID *uuid.UUID) ([]model.WordView, error) {
	views := make([]model.WordView, 0, len(words))
	for _, w := range words {
		views = append(views, model.NewWordView(*w))
	}
	if userID == nil || len(words) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(words))
	for _, w := range words {
		ids = append(ids, w.ID)
	}
	progress, err := s.progressRepo.FindByWordIDs(ctx, s.db, *userID, ids)
	if err != nil {
		return nil, internalError(err)
	}
	saved, err := s.savedRepo.SavedWordIDs(ctx, s.db, *userID, ids)
	if err != nil {
		return nil, internalError(err)
	}

	for i := range views {
		if p, ok := progress[views[i].ID]; ok {
			views[i].Progress = p.Snapshot()
		}
		isSaved := saved[views[i].ID]
		views[i].IsSaved = &isSaved
	}
	return views, nil
}

// ToggleSaved は保存済みなら外し、未保存なら保存します。行の有無だけが状態です。
func (s *wordService) ToggleSaved(ctx context.Context, userID uuid.UUID, wordID int64) (model.ToggleStatus, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)

	if err := ensureWordExists(ctx, s.words, wordID); err != nil {
		return "", err
	}

	removed, err := s.savedRepo.Remove(ctx, s.db, userID, wordID)
	if err != nil {
		return "", internalError(err)
	}
	if removed {
		logger.Info("Word unsaved")
		return model.ToggleUnsaved, nil
	}

	if err := s.savedRepo.Add(ctx, s.db, &model.SavedWord{UserID: userID, WordID: wordID, SavedAt: s.now()}); err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Warn("Concurrent toggle on saved word")
			return "", model.NewAppError("SAVE_FAILED", "Failed to save word. Please retry.", "word_id", model.ErrConflict)
		}
		return "", internalError(err)
	}
	logger.Info("Word saved")
	return model.ToggleSaved, nil
}

// ListSaved は新しく保存した順に返します。辞書から消えた単語は word が null です。
func (s *wordService) ListSaved(ctx context.Context, userID uuid.UUID) ([]model.SavedWordResponse, error) {
	rows, err := s.savedRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, internalError(err)
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.WordID)
	}
	words, err := s.words.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internalError(err)
	}

	out := make([]model.SavedWordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.SavedWordResponse{WordID: r.WordID, Word: words[r.WordID], SavedAt: r.SavedAt})
	}
	return out, nil
}

func (s *wordService) SaveWord(ctx context.Context, userID uuid.UUID, wordID int64) (*model.SavedWordResponse, error) {
	w, err := s.findWord(ctx, wordID)
	if err != nil {
		return nil, err
	}
	saved := &model.SavedWord{UserID: userID, WordID: wordID, SavedAt: s.now()}
	if err := s.savedRepo.Add(ctx, s.db, saved); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("ALREADY_SAVED", "Word already saved.", "word_id", model.ErrConflict)
		}
		return nil, internalError(err)
	}
	return &model.SavedWordResponse{WordID: wordID, Word: w, SavedAt: saved.SavedAt}, nil
}

func (s *wordService) UnsaveWord(ctx context.Context, userID uuid.UUID, wordID int64) error {
	removed, err := s.savedRepo.Remove(ctx, s.db, userID, wordID)
	if err != nil {
		return internalError(err)
	}
	if !removed {
		return model.NewAppError("NOT_SAVED", "Word is not in your saved list.", "", model.ErrNotFound)
	}
	return nil
}

// AudioURL は単語の音声ファイルへのURLを返します。音声が無い単語や未設定の環境では 404 です。
func (s *wordService) AudioURL(ctx context.Context, wordID int64) (string, error) {
	w, err := s.findWord(ctx, wordID)
	if err != nil {
		return "", err
	}
	notAvailable := model.NewAppError("AUDIO_NOT_AVAILABLE", "No audio available for this word.", "", model.ErrNotFound)
	if w.AudioFilename == nil || *w.AudioFilename == "" {
		return "", notAvailable
	}

	u, err := s.audio.URL(ctx, *w.AudioFilename)
	if err != nil {
		if errors.Is(err, ErrAudioDisabled) {
			return "", notAvailable
		}
		middleware.GetLogger(ctx).Error("Failed to build audio URL", "error", err, "word_id", wordID)
		return "", internalError(err)
	}
	return u, nil
}

func (s *wordService) findWord(ctx context.Context, wordID int64) (*model.Word, error) {
	w, err := s.words.FindByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, wordNotFoundError()
		}
		return nil, internalError(err)
	}
	return w, nil
}
