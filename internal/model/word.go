// internal/model/word.go
package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Level は CEFR レベル (A1〜C2) です。
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

var allLevels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// ParseLevel は大文字小文字を区別せずにレベルを解釈します。
func ParseLevel(s string) (Level, bool) {
	up := Level(strings.ToUpper(strings.TrimSpace(s)))
	for _, l := range allLevels {
		if l == up {
			return l, true
		}
	}
	return "", false
}

// Word は辞書ストア (読み取り専用) の単語です。
// アプリケーションから作成・更新・削除されることはありません。
type Word struct {
	ID             int64          `gorm:"primaryKey" db:"id" json:"id"`
	German         string         `gorm:"not null" db:"german" json:"german"`
	English        string         `gorm:"not null" db:"english" json:"english"`
	Persian        string         `gorm:"not null" db:"persian" json:"persian"`
	Level          Level          `gorm:"size:2;not null" db:"level" json:"level"`
	Example        *string        `db:"example" json:"example"`
	ExampleEnglish *string        `db:"example_english" json:"example_english"`
	ExamplePersian *string        `db:"example_persian" json:"example_persian"`
	PartOfSpeech   *string        `gorm:"size:50" db:"part_of_speech" json:"part_of_speech"`
	Article        *string        `gorm:"size:10" db:"article" json:"article"` // der, die, das
	Plural         *string        `gorm:"size:100" db:"plural" json:"plural"`
	Cases          datatypes.JSON `db:"cases" json:"cases"`
	Tenses         datatypes.JSON `db:"tenses" json:"tenses"`
	AudioFilename  *string        `gorm:"size:255" db:"audio_filename" json:"audio_filename"`
}

func (Word) TableName() string {
	return "words"
}

// WordFilter は単語一覧の絞り込み条件です。
type WordFilter struct {
	Level   Level  // 空なら全レベル
	Search  string // german/english/persian の部分一致 (OR)
	Shuffle bool
}

// ProgressSnapshot は単語に付加するユーザーの学習状況です。
type ProgressSnapshot struct {
	IsKnown      bool      `json:"is_known"`
	LastReviewed time.Time `json:"last_reviewed"`
	ReviewCount  int       `json:"review_count"`
}

// WordView は単語 + (認証済みなら) ユーザーの進捗と保存状態です。
type WordView struct {
	Word
	// 旧クライアント互換のエイリアス
	WordText    string            `json:"word"`
	Translation string            `json:"translation"`
	Progress    *ProgressSnapshot `json:"progress"`
	IsSaved     *bool             `json:"is_saved,omitempty"`
}

func NewWordView(w Word) WordView {
	return WordView{Word: w, WordText: w.German, Translation: w.English}
}

// ListWordsQuery は GET /words のクエリパラメータです。
type ListWordsQuery struct {
	Level   string `validate:"omitempty"`
	Search  string `validate:"omitempty,max=100"`
	Shuffle bool
}

type AudioURLResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type WordListResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Data    []WordView `json:"data"`
}

type WordResponse struct {
	Success bool      `json:"success"`
	Data    *WordView `json:"data"`
}
