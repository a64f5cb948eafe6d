// importwords は単語表 (xlsx / csv) を辞書ファイルに取り込みます。
// API サーバーは辞書を読み取り専用で開くため、辞書への書き込みはこのコマンドだけが行います。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"fadeu/internal/config"
	"fadeu/internal/dictimport"
)

func main() {
	_ = godotenv.Load()

	defaultDB := os.Getenv("DICTIONARY_PATH")
	if defaultDB == "" {
		defaultDB = config.DefaultDictionaryPath
	}

	file := flag.String("file", "", "path to the .xlsx or .csv word list")
	sheet := flag.String("sheet", dictimport.DefaultSheet, "sheet name (xlsx only)")
	dbPath := flag.String("db", defaultDB, "path to the SQLite dictionary file")
	verbose := flag.Bool("v", false, "log skipped rows")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.RFC3339}))

	if *file == "" {
		logger.Error("-file is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	store, err := dictimport.OpenStore(ctx, *dbPath)
	if err != nil {
		logger.Error("Failed to open dictionary", slog.String("path", *dbPath), slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	res, err := dictimport.Import(ctx, store, dictimport.Config{FilePath: *file, SheetName: *sheet}, logger)
	if err != nil {
		logger.Error("Import failed", slog.String("file", *file), slog.Any("error", err))
		os.Exit(1)
	}

	for _, e := range res.Errors {
		logger.Warn("Row rejected", slog.String("detail", e))
	}
	logger.Info("Import finished",
		slog.Int("processed", res.Processed),
		slog.Int("created", res.Created),
		slog.Int("skipped", res.Skipped),
		slog.Int("errors", len(res.Errors)),
		slog.String("dictionary", *dbPath),
	)
	if len(res.Errors) > 0 && strings.EqualFold(os.Getenv("IMPORT_STRICT"), "true") {
		os.Exit(1)
	}
}
