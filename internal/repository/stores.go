package repository

import (
	"context"
	"errors"
	"fmt"

	"fadeu/internal/model"

	"gorm.io/gorm"
)

// Entity はストアの振り分け単位です。
type Entity string

const (
	EntityUser              Entity = "user"
	EntityPasswordResetCode Entity = "password_reset_code"
	EntityUserWordProgress  Entity = "user_word_progress"
	EntitySavedWord         Entity = "saved_word"
	EntityUserActivity      Entity = "user_activity"
	EntityRefreshToken      Entity = "refresh_token"
	EntityWord              Entity = "word"
)

// Stores はプライマリストアと辞書ストアを保持し、エンティティごとに読み書き先を決めます。
// 起動時に一度だけ作成し、各リポジトリの生成に使います。
type Stores struct {
	primary    *gorm.DB
	dictionary *gorm.DB
}

func NewStores(primary, dictionary *gorm.DB) *Stores {
	return &Stores{primary: primary, dictionary: dictionary}
}

// ReadStore は読み取り先のストアを返します。Word だけが辞書ストアです。
func (s *Stores) ReadStore(e Entity) (*gorm.DB, error) {
	switch e {
	case EntityWord:
		return s.dictionary, nil
	case EntityUser, EntityPasswordResetCode, EntityUserWordProgress,
		EntitySavedWord, EntityUserActivity, EntityRefreshToken:
		return s.primary, nil
	default:
		return nil, fmt.Errorf("unknown entity %q", e)
	}
}

// WriteStore は書き込み先のストアを返します。辞書ストアへの書き込みは常に拒否します。
func (s *Stores) WriteStore(e Entity) (*gorm.DB, error) {
	if e == EntityWord {
		return nil, fmt.Errorf("write to %s: %w", e, model.ErrPermission)
	}
	return s.ReadStore(e)
}

// TxStore はサービスが書き込む全エンティティの書き込み先を解決します。
// 1つのトランザクションで扱うため、書き込み先は同じストアでなければなりません。
func (s *Stores) TxStore(entities ...Entity) (*gorm.DB, error) {
	if len(entities) == 0 {
		return nil, errors.New("no entities given")
	}
	var store *gorm.DB
	for _, e := range entities {
		db, err := s.WriteStore(e)
		if err != nil {
			return nil, err
		}
		if store != nil && db != store {
			return nil, fmt.Errorf("entities %s and %s live in different stores", entities[0], e)
		}
		store = db
	}
	return store, nil
}

// MigrationTarget はスキーマ変更を受け付ける唯一のストアです。
func (s *Stores) MigrationTarget() *gorm.DB {
	return s.primary
}

// Ping は両方のストアへの疎通を確認します。
func (s *Stores) Ping(ctx context.Context) error {
	for name, db := range map[string]*gorm.DB{"primary": s.primary, "dictionary": s.dictionary} {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("%s store: %w", name, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("%s store: %w", name, err)
		}
	}
	return nil
}

// Close は両方のストアの接続を閉じます。
func (s *Stores) Close() error {
	var firstErr error
	for _, db := range []*gorm.DB{s.primary, s.dictionary} {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
