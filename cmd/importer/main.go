// Command importer loads the corpus JSON files into the database. By default
// it empties the words and variants tables first, then inserts every entry
// with its homograph occurrence number and normalized columns.
//
// Flags:
//
//	--config         path to the application YAML config file (database, log)
//	--import-config  path to import YAML config file
//	--data-dir       directory holding the corpus JSON files
//	--dry-run        parse files without writing to DB
//	--no-truncate    append instead of replacing the existing corpus
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/variant"
	"github.com/etimoloji/clauson-dictionary/internal/adapter/postgres/word"
	"github.com/etimoloji/clauson-dictionary/internal/app"
	"github.com/etimoloji/clauson-dictionary/internal/config"
	"github.com/etimoloji/clauson-dictionary/internal/importer"
)

func main() {
	configFlag := flag.String("config", "", "path to application YAML config file")
	importConfigFlag := flag.String("import-config", "", "path to import YAML config file")
	dataDirFlag := flag.String("data-dir", "", "directory holding the corpus JSON files")
	dryRunFlag := flag.Bool("dry-run", false, "parse files without writing to DB")
	noTruncateFlag := flag.Bool("no-truncate", false, "keep existing entries")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	importCfg, err := importer.LoadConfig(*importConfigFlag)
	if err != nil {
		logger.Error("load import config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dataDirFlag != "" {
		importCfg.DataDir = *dataDirFlag
	}
	if *dryRunFlag {
		importCfg.DryRun = true
	}
	if *noTruncateFlag {
		importCfg.Truncate = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	im := importer.New(logger, word.New(pool), variant.New(pool), postgres.NewTxManager(pool), *importCfg)

	sum, err := im.Run(ctx)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if sum.HasErrors() {
		logger.Warn("import completed with errors",
			slog.Int("entries", sum.Entries),
			slog.Int("variants", sum.Variants),
		)
		os.Exit(1)
	}

	logger.Info("import completed successfully",
		slog.Int("entries", sum.Entries),
		slog.Int("variants", sum.Variants),
		slog.Int("skipped", sum.Skipped),
		slog.Duration("duration", sum.Duration),
	)
}
