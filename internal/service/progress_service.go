package service

import (
	"context"
	"errors"
	"time"

	"fadeu/internal/middleware"
	"fadeu/internal/model"
	"fadeu/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore --structname MockProgressService
type ProgressService interface {
	RecordProgress(ctx context.Context, userID uuid.UUID, wordID int64, isKnown bool) (*model.ProgressResult, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]model.ProgressResponse, error)
	SyncActivity(ctx context.Context, userID uuid.UUID, req *model.ActivitySyncRequest) (*model.ActivitySnapshot, error)
	GetActivity(ctx context.Context, userID uuid.UUID) (*model.ActivitySnapshot, error)
}

type progressService struct {
	db           *gorm.DB
	words        repository.WordReader
	progressRepo repository.ProgressRepository
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

func NewProgressService(
	db *gorm.DB,
	words repository.WordReader,
	progressRepo repository.ProgressRepository,
	activityRepo repository.ActivityRepository,
	opts ...Option,
) ProgressService {
	o := applyOptions(opts)
	return &progressService{
		db:           db,
		words:        words,
		progressRepo: progressRepo,
		activityRepo: activityRepo,
		now:          o.now,
	}
}

// RecordProgress は初回なら review_count=1 で作成し、以降は is_known が変わったときだけ更新します。
func (s *progressService) RecordProgress(ctx context.Context, userID uuid.UUID, wordID int64, isKnown bool) (*model.ProgressResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "word_id", wordID)

	if err := ensureWordExists(ctx, s.words, wordID); err != nil {
		return nil, err
	}

	existing, err := s.progressRepo.Find(ctx, s.db, userID, wordID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		p := &model.UserWordProgress{
			UserID:       userID,
			WordID:       wordID,
			IsKnown:      isKnown,
			ReviewCount:  1,
			LastReviewed: s.now(),
		}
		if err := s.progressRepo.Create(ctx, s.db, p); err != nil {
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Concurrent progress create")
				return nil, model.NewAppError("ALREADY_EXISTS", "Progress for this word already exists.", "word_id", model.ErrConflict)
			}
			return nil, internalError(err)
		}
		logger.Info("Progress created", "is_known", isKnown)
		return &model.ProgressResult{Progress: p, Created: true}, nil
	case err != nil:
		logger.Error("Failed to find progress", "error", err)
		return nil, internalError(err)
	}

	if existing.IsKnown == isKnown {
		return &model.ProgressResult{Progress: existing}, nil
	}

	existing.IsKnown = isKnown
	existing.ReviewCount++
	existing.LastReviewed = s.now()
	if err := s.progressRepo.Update(ctx, s.db, existing); err != nil {
		logger.Error("Failed to update progress", "error", err)
		return nil, internalError(err)
	}
	return &model.ProgressResult{Progress: existing}, nil
}

// ListProgress は辞書側の単語と組み合わせて返します。辞書から消えた単語は word が null です。
func (s *progressService) ListProgress(ctx context.Context, userID uuid.UUID) ([]model.ProgressResponse, error) {
	rows, err := s.progressRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, internalError(err)
	}

	ids := make([]int64, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.WordID)
	}
	words, err := s.words.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internalError(err)
	}

	out := make([]model.ProgressResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, model.NewProgressResponse(p, words[p.WordID]))
	}
	return out, nil
}

// SyncActivity は差分を累積値に加算し、連続日数とレベルを再計算します。
func (s *progressService) SyncActivity(ctx context.Context, userID uuid.UUID, req *model.ActivitySyncRequest) (*model.ActivitySnapshot, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)
	if err := validateDeltas(req); err != nil {
		return nil, err
	}

	if err := s.ensureActivity(ctx, userID); err != nil {
		return nil, err
	}

	var snapshot *model.ActivitySnapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := s.activityRepo.FindByUserForUpdate(ctx, tx, userID)
		if err != nil {
			return internalError(err)
		}

		now := s.now()
		a.WatchTimeSeconds += req.WatchTimeSeconds
		a.WordsSearched += req.WordsSearched
		a.WordsSaved += req.WordsSaved
		a.FlashcardsCompleted += req.FlashcardsCompleted
		a.LongestStreak += req.LongestStreak
		a.ExperiencePoints += req.ExperiencePoints

		a.CurrentStreak = NextStreak(a.LastStudied, now, a.CurrentStreak)
		a.LongestStreak = max(a.LongestStreak, a.CurrentStreak)
		a.Level = max(a.Level, LevelFor(a.ExperiencePoints))
		a.LastStudied = &now
		a.UpdatedAt = now

		if err := s.activityRepo.Save(ctx, tx, a); err != nil {
			return internalError(err)
		}
		snapshot = a.Snapshot()
		return nil
	})
	if err != nil {
		logger.Error("Failed to sync activity", "error", err)
		return nil, err
	}

	logger.Info("Activity synced", "current_streak", snapshot.CurrentStreak, "level", snapshot.Level)
	return snapshot, nil
}

// GetActivity は記録が無ければゼロ値 (レベル1) を返します。
func (s *progressService) GetActivity(ctx context.Context, userID uuid.UUID) (*model.ActivitySnapshot, error) {
	a, err := s.activityRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return (&model.UserActivity{UserID: userID, Level: 1}).Snapshot(), nil
		}
		return nil, internalError(err)
	}
	return a.Snapshot(), nil
}

// ensureActivity はユーザーの行が無ければ作成します。並行作成で負けた場合はそのまま進みます。
func (s *progressService) ensureActivity(ctx context.Context, userID uuid.UUID) error {
	_, err := s.activityRepo.FindByUser(ctx, s.db, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return internalError(err)
	}

	now := s.now()
	a := &model.UserActivity{UserID: userID, Level: 1, CreatedAt: now, UpdatedAt: now}
	if err := s.activityRepo.Create(ctx, s.db, a); err != nil && !errors.Is(err, model.ErrConflict) {
		return internalError(err)
	}
	return nil
}

func validateDeltas(req *model.ActivitySyncRequest) error {
	fields := []struct {
		name  string
		value int64
	}{
		{"watch_time_seconds", req.WatchTimeSeconds},
		{"words_searched", req.WordsSearched},
		{"words_saved", req.WordsSaved},
		{"flashcards_completed", req.FlashcardsCompleted},
		{"longest_streak", int64(req.LongestStreak)},
		{"experience_points", req.ExperiencePoints},
	}
	for _, f := range fields {
		if f.value < 0 {
			return model.NewAppError("NEGATIVE_DELTA", "Activity deltas must not be negative.", f.name, model.ErrInvalidInput)
		}
	}
	return nil
}

func ensureWordExists(ctx context.Context, words repository.WordReader, wordID int64) error {
	ok, err := words.Exists(ctx, wordID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to check word existence", "error", err, "word_id", wordID)
		return internalError(err)
	}
	if !ok {
		return wordNotFoundError()
	}
	return nil
}

func wordNotFoundError() *model.AppError {
	return model.NewAppError("WORD_NOT_FOUND", "Word not found.", "", model.ErrNotFound)
}
