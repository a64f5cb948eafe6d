package dictimport

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// schema は API プロセスが読み取る words テーブルと同じ列構成です。
const schema = `
CREATE TABLE IF NOT EXISTS words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	german TEXT NOT NULL,
	english TEXT NOT NULL,
	persian TEXT NOT NULL,
	level VARCHAR(2) NOT NULL,
	example TEXT,
	example_english TEXT,
	example_persian TEXT,
	part_of_speech VARCHAR(50),
	article VARCHAR(10),
	plural VARCHAR(100),
	cases TEXT,
	tenses TEXT,
	audio_filename VARCHAR(255),
	UNIQUE (german, english)
);
CREATE INDEX IF NOT EXISTS idx_words_level ON words (level);
`

const insertWord = `
INSERT INTO words (
	german, english, persian, level, example, example_english, example_persian,
	part_of_speech, article, plural, cases, tenses, audio_filename
) VALUES (
	:german, :english, :persian, :level, :example, :example_english, :example_persian,
	:part_of_speech, :article, :plural, :cases, :tenses, :audio_filename
)
ON CONFLICT (german, english) DO NOTHING`

// Store は辞書ファイルへの書き込み口です。API からは読み取り専用で開かれます。
type Store struct {
	db *sqlx.DB
}

// OpenStore は辞書ファイルを開き (無ければ作成し) words テーブルを用意します。
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("dictimport.OpenStore: %w", err)
	}
	// SQLite は書き込みが1本
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("dictimport.OpenStore: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Insert は1行を追加します。(german, english) が既にあれば false を返します。
func (s *Store) Insert(ctx context.Context, row *Row) (bool, error) {
	res, err := s.db.NamedExecContext(ctx, insertWord, row)
	if err != nil {
		return false, fmt.Errorf("dictimport.Insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("dictimport.Insert: %w", err)
	}
	return n > 0, nil
}

// Count はテスト・レポート用
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, fmt.Errorf("dictimport.Count: %w", err)
	}
	return n, nil
}
