package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/japaniel/jmconj/pkg/conjugate"
	"github.com/japaniel/jmconj/pkg/db"
	"github.com/japaniel/jmconj/pkg/dictionary"
	"github.com/japaniel/jmconj/pkg/ingest"
	"github.com/japaniel/jmconj/pkg/script"
)

func importCmd(a *app) *cobra.Command {
	var (
		dictPath  string
		dbPath    string
		format    string
		workers   int
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import JMdict and its conjugations into SQLite",
		Long: `Load the dictionary, generate conjugations for every conjugatable entry
and write everything to the SQLite database in batched transactions.

When the dictionary file is missing and dictionary.auto_download is on, the
latest jmdict-simplified common-words release is downloaded first.

Readings and conjugated forms are already kana, so they are rendered with the
kana table; the kagome tokenizer is only needed by "conjugate" for kanji input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("dict") {
				cfg.Dictionary.Path = dictPath
			}
			if flags.Changed("db") {
				cfg.Database.Path = dbPath
			}
			if flags.Changed("format") {
				cfg.Dictionary.Format = format
			}
			if flags.Changed("workers") {
				cfg.Ingest.Workers = workers
			}
			if flags.Changed("batch-size") {
				cfg.Ingest.BatchSize = batchSize
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := a.logger

			f, err := dictionary.DetectFormat(cfg.Dictionary.Path, dictionary.Format(cfg.Dictionary.Format))
			if err != nil {
				return err
			}
			if cfg.Dictionary.AutoDownload && f == dictionary.FormatJSON {
				if err := dictionary.EnsureDictionary(ctx, cfg.Dictionary.Path, logger); err != nil {
					return fmt.Errorf("failed to ensure dictionary at %s: %w", cfg.Dictionary.Path, err)
				}
			}

			logger.Info("loading dictionary", zap.String("path", cfg.Dictionary.Path), zap.String("format", string(f)))
			start := time.Now()
			entries, err := dictionary.LoadJMdict(cfg.Dictionary.Path, f)
			if err != nil {
				return fmt.Errorf("failed to load dictionary: %w", err)
			}
			logger.Info("dictionary loaded", zap.Int("entries", len(entries)), zap.Duration("elapsed", time.Since(start)))

			conn, err := db.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer conn.Close()

			style, err := conjugate.ParseNegationStyle(cfg.Conjugation.NegationStyle)
			if err != nil {
				return err
			}

			ig := ingest.NewIngester(conn, conjugate.New(conjugate.WithNegationStyle(style)), script.KanaConverter{})
			ig.Workers = cfg.Ingest.Workers
			ig.BatchSize = cfg.Ingest.BatchSize
			ig.FlushInterval = cfg.Ingest.FlushInterval
			ig.Logger = logger
			ig.OnProgress = func(current, total int) {
				logger.Info("progress", zap.Int("current", current), zap.Int("total", total))
			}

			stats, err := ig.Ingest(ctx, entries)
			if err != nil {
				return fmt.Errorf("import failed after %d entries: %w", stats.Entries, err)
			}
			fmt.Fprintf(a.out, "Imported %d entries into %s: %d conjugated, %d forms, %d skipped, %d categories dropped.\n",
				stats.Entries, cfg.Database.Path, stats.Conjugated, stats.Forms, stats.Skipped, stats.Dropped)
			return nil
		},
	}

	cmd.Flags().StringVar(&dictPath, "dict", "", "Path to the dictionary file (JSON or XML)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	cmd.Flags().StringVar(&format, "format", "", "Dictionary format: auto, json or xml")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of conversion workers")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Entries per transaction")
	return cmd
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
