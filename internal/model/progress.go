// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserWordProgress はユーザーごとの単語の習得状況です。
// WordID は辞書ストアの単語IDで、外部キー制約はありません。
type UserWordProgress struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_word_progress"`
	WordID       int64     `gorm:"not null;uniqueIndex:uq_user_word_progress"`
	IsKnown      bool      `gorm:"not null"`
	ReviewCount  int       `gorm:"not null"`
	LastReviewed time.Time `gorm:"not null"`
}

func (UserWordProgress) TableName() string {
	return "user_word_progress"
}

func (p *UserWordProgress) Snapshot() *ProgressSnapshot {
	return &ProgressSnapshot{
		IsKnown:      p.IsKnown,
		LastReviewed: p.LastReviewed,
		ReviewCount:  p.ReviewCount,
	}
}

// is_known は false も有効な値なので、ポインタで必須チェックする
type RecordProgressRequest struct {
	IsKnown *bool `json:"is_known" validate:"required"`
}

type ProgressResult struct {
	Progress *UserWordProgress
	Created  bool
}

type ProgressResponse struct {
	ID           uint      `json:"id"`
	WordID       int64     `json:"word_id"`
	Word         *Word     `json:"word"`
	IsKnown      bool      `json:"is_known"`
	LastReviewed time.Time `json:"last_reviewed"`
	ReviewCount  int       `json:"review_count"`
}

func NewProgressResponse(p *UserWordProgress, w *Word) ProgressResponse {
	return ProgressResponse{
		ID:           p.ID,
		WordID:       p.WordID,
		Word:         w,
		IsKnown:      p.IsKnown,
		LastReviewed: p.LastReviewed,
		ReviewCount:  p.ReviewCount,
	}
}

// SavedWord は保存 (スター) 済みの単語です。行の存在そのものが状態を表します。
type SavedWord struct {
	ID      uint      `gorm:"primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_saved_word"`
	WordID  int64     `gorm:"not null;uniqueIndex:uq_saved_word"`
	SavedAt time.Time `gorm:"not null;index"`
}

func (SavedWord) TableName() string {
	return "saved_words"
}

type SaveWordRequest struct {
	WordID int64 `json:"word_id" validate:"required,gt=0"`
}

type SavedWordResponse struct {
	WordID  int64     `json:"word_id"`
	Word    *Word     `json:"word"`
	SavedAt time.Time `json:"saved_at"`
}

// ToggleStatus は保存トグルの結果です。
type ToggleStatus string

const (
	ToggleSaved   ToggleStatus = "saved"
	ToggleUnsaved ToggleStatus = "unsaved"
)

type ToggleSavedResponse struct {
	Success bool         `json:"success"`
	Status  ToggleStatus `json:"status"`
}

type ProgressItemResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    ProgressResponse `json:"data"`
}

type ProgressListResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []ProgressResponse `json:"data"`
}

type SavedWordListResponse struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Data    []SavedWordResponse `json:"data"`
}

type SavedWordItemResponse struct {
	Success bool               `json:"success"`
	Data    *SavedWordResponse `json:"data"`
}
