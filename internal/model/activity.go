package model

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity はユーザーごとに1行の累積学習データです。
// 数値カウンタは同期のたびに加算され、上書きされることはありません。
type UserActivity struct {
	ID                  uint      `gorm:"primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	WatchTimeSeconds    int64     `gorm:"not null"`
	WordsSearched       int64     `gorm:"not null"`
	WordsSaved          int64     `gorm:"not null"`
	FlashcardsCompleted int64     `gorm:"not null"`
	CurrentStreak       int       `gorm:"not null"`
	LongestStreak       int       `gorm:"not null"`
	Level               int       `gorm:"not null"`
	ExperiencePoints    int64     `gorm:"not null"`
	LastStudied         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (UserActivity) TableName() string {
	return "user_activities"
}

// ActivitySyncRequest は前回同期からの差分です。すべて省略可能で、負の値は不可。
type ActivitySyncRequest struct {
	WatchTimeSeconds    int64 `json:"watch_time_seconds" validate:"gte=0"`
	WordsSearched       int64 `json:"words_searched" validate:"gte=0"`
	WordsSaved          int64 `json:"words_saved" validate:"gte=0"`
	FlashcardsCompleted int64 `json:"flashcards_completed" validate:"gte=0"`
	LongestStreak       int   `json:"longest_streak" validate:"gte=0"`
	ExperiencePoints    int64 `json:"experience_points" validate:"gte=0"`
}

type ActivitySnapshot struct {
	WatchTimeSeconds    int64      `json:"watch_time_seconds"`
	WordsSearched       int64      `json:"words_searched"`
	WordsSaved          int64      `json:"words_saved"`
	FlashcardsCompleted int64      `json:"flashcards_completed"`
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	LastStudied         *time.Time `json:"last_studied"`
	Level               int        `json:"level"`
	ExperiencePoints    int64      `json:"experience_points"`
}

func (a *UserActivity) Snapshot() *ActivitySnapshot {
	return &ActivitySnapshot{
		WatchTimeSeconds:    a.WatchTimeSeconds,
		WordsSearched:       a.WordsSearched,
		WordsSaved:          a.WordsSaved,
		FlashcardsCompleted: a.FlashcardsCompleted,
		CurrentStreak:       a.CurrentStreak,
		LongestStreak:       a.LongestStreak,
		LastStudied:         a.LastStudied,
		Level:               a.Level,
		ExperiencePoints:    a.ExperiencePoints,
	}
}

type ActivityResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    *ActivitySnapshot `json:"data"`
}
