package dictimport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fadeu/internal/model"
)

// Columns は取り込む列の並びです。ヘッダー行の名前で位置を決めます。
var Columns = []string{
	"german", "english", "persian", "level",
	"example", "example_english", "example_persian",
	"part_of_speech", "article", "plural",
	"cases", "tenses", "audio_filename",
}

var required = []string{"german", "english", "persian", "level"}

// Row は辞書の1行です。任意列は空なら NULL になります。
type Row struct {
	German         string  `db:"german"`
	English        string  `db:"english"`
	Persian        string  `db:"persian"`
	Level          string  `db:"level"`
	Example        *string `db:"example"`
	ExampleEnglish *string `db:"example_english"`
	ExamplePersian *string `db:"example_persian"`
	PartOfSpeech   *string `db:"part_of_speech"`
	Article        *string `db:"article"`
	Plural         *string `db:"plural"`
	Cases          *string `db:"cases"`
	Tenses         *string `db:"tenses"`
	AudioFilename  *string `db:"audio_filename"`
}

// header は列名 → 位置 の対応です。
type header map[string]int

func parseHeader(cells []string) (header, error) {
	h := header{}
	for i, c := range cells {
		name := strings.ToLower(strings.TrimSpace(c))
		if name != "" {
			h[name] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing required columns: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) cell(cells []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func (h header) optional(cells []string, col string) *string {
	v := h.cell(cells, col)
	if v == "" {
		return nil
	}
	return &v
}

var errBlankRow = errors.New("blank row")

// parseRow は1行を検証して Row にします。レベルは大文字に揃えます。
func (h header) parseRow(cells []string) (*Row, error) {
	blank := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil, errBlankRow
	}

	row := &Row{
		German:         h.cell(cells, "german"),
		English:        h.cell(cells, "english"),
		Persian:        h.cell(cells, "persian"),
		Example:        h.optional(cells, "example"),
		ExampleEnglish: h.optional(cells, "example_english"),
		ExamplePersian: h.optional(cells, "example_persian"),
		PartOfSpeech:   h.optional(cells, "part_of_speech"),
		Article:        h.optional(cells, "article"),
		Plural:         h.optional(cells, "plural"),
		Cases:          h.optional(cells, "cases"),
		Tenses:         h.optional(cells, "tenses"),
		AudioFilename:  h.optional(cells, "audio_filename"),
	}
	for _, col := range required[:3] {
		if h.cell(cells, col) == "" {
			return nil, fmt.Errorf("%s is empty", col)
		}
	}

	level, ok := model.ParseLevel(h.cell(cells, "level"))
	if !ok {
		return nil, fmt.Errorf("invalid level %q", h.cell(cells, "level"))
	}
	row.Level = string(level)

	for col, v := range map[string]*string{"cases": row.Cases, "tenses": row.Tenses} {
		if v != nil && !json.Valid([]byte(*v)) {
			return nil, fmt.Errorf("%s is not valid JSON", col)
		}
	}
	return row, nil
}
