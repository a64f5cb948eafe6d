package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fadeu/internal/middleware"
	"fadeu/internal/model"

	"gorm.io/gorm"
)

// WordReader は辞書ストアの読み取り専用アクセスです。書き込みメソッドは持ちません。
//
//go:generate mockery --name WordReader --output ./mocks --outpkg mocks --case=underscore
type WordReader interface {
	FindByID(ctx context.Context, id int64) (*model.Word, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*model.Word, error)
	List(ctx context.Context, filter model.WordFilter) ([]*model.Word, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type gormWordReader struct {
	db *gorm.DB
}

// NewGormWordReader は Stores が Word の読み取り先として返すストアに束縛されます。
func NewGormWordReader(stores *Stores) (WordReader, error) {
	db, err := stores.ReadStore(EntityWord)
	if err != nil {
		return nil, fmt.Errorf("NewGormWordReader: %w", err)
	}
	return &gormWordReader{db: db}, nil
}

func (r *gormWordReader) FindByID(ctx context.Context, id int64) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var w model.Word
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find word", "error", err, "word_id", id)
		return nil, fmt.Errorf("gormWordReader.FindByID: %w", err)
	}
	return &w, nil
}

func (r *gormWordReader) FindByIDs(ctx context.Context, ids []int64) (map[int64]*model.Word, error) {
	result := make(map[int64]*model.Word, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&words).Error; err != nil {
		logger.Error("Failed to find words by ids", "error", err)
		return nil, fmt.Errorf("gormWordReader.FindByIDs: %w", err)
	}
	for _, w := range words {
		result[w.ID] = w
	}
	return result, nil
}

// List は ID 順に返します。シャッフルは呼び出し側の責務です。
func (r *gormWordReader) List(ctx context.Context, filter model.WordFilter) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	query := r.db.WithContext(ctx).Model(&model.Word{})
	if filter.Level != "" {
		query = query.Where("level = ?", string(filter.Level))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		query = query.Where(
			`LOWER(german) LIKE ? ESCAPE '\' OR LOWER(english) LIKE ? ESCAPE '\' OR LOWER(persian) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	var words []*model.Word
	if err := query.Order("id ASC").Find(&words).Error; err != nil {
		logger.Error("Failed to list words", "error", err)
		return nil, fmt.Errorf("gormWordReader.List: %w", err)
	}
	return words, nil
}

func (r *gormWordReader) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Word{}).Where("id = ?", id).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to check word existence", "error", err, "word_id", id)
		return false, fmt.Errorf("gormWordReader.Exists: %w", err)
	}
	return count > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
