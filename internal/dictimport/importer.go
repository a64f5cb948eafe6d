// Package dictimport は Excel / CSV の単語表を SQLite の辞書ファイルに取り込みます。
package dictimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const DefaultSheet = "Sheet1"

type Config struct {
	FilePath  string
	SheetName string // xlsx のみ
}

type Result struct {
	Processed int
	Created   int
	Skipped   int // 既に辞書にある語
	Errors    []string
}

// Import はファイルの全行を取り込みます。行単位のエラーは Result.Errors に積み、処理は続けます。
func Import(ctx context.Context, store *Store, cfg Config, logger *slog.Logger) (*Result, error) {
	rows, err := readRows(cfg)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("file has no header row")
	}

	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}
	for i, cells := range rows[1:] {
		lineNo := i + 2
		row, err := h.parseRow(cells)
		if errors.Is(err, errBlankRow) {
			continue
		}
		result.Processed++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", lineNo, err))
			continue
		}

		created, err := store.Insert(ctx, row)
		if err != nil {
			return result, fmt.Errorf("row %d: %w", lineNo, err)
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
			logger.Debug("Word already in dictionary", "row", lineNo, "german", row.German, "english", row.English)
		}
	}
	return result, nil
}

func readRows(cfg Config) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(cfg.FilePath)) {
	case ".csv":
		return readCSV(cfg.FilePath)
	case ".xlsx", ".xlsm":
		return readExcel(cfg)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", cfg.FilePath)
	}
}

func readExcel(cfg Config) ([][]string, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = DefaultSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
