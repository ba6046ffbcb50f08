package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/japaniel/jmconj/pkg/conjugate"
	"github.com/japaniel/jmconj/pkg/db"
	"github.com/japaniel/jmconj/pkg/dictionary"
	"github.com/japaniel/jmconj/pkg/pos"
	"github.com/japaniel/jmconj/pkg/script"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx attempts to enqueue a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Ingester stores dictionary entries together with their generated
// conjugations.
type Ingester struct {
	DB         *sql.DB
	Conjugator *conjugate.Conjugator
	// Converter renders kana in every script. Failures fall back to the
	// kana table converter.
	Converter script.Converter
	// BatchSize is the number of entries committed per transaction.
	BatchSize     int
	FlushInterval time.Duration
	Logger        *zap.Logger
	// OnProgress is called periodically with the number of processed entries and total entries.
	OnProgress func(current, total int)

	// Concurrency settings
	Workers int

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// Stats summarises one Ingest run.
type Stats struct {
	Entries    int
	Conjugated int
	Forms      int
	// Skipped counts entries with a conjugatable part of speech that
	// produced no forms.
	Skipped int
	// Dropped counts eligible categories, across all entries, that produced
	// no forms. An entry can drop one category and still be conjugated.
	Dropped int
}

// NewIngester creates a new Ingester.
func NewIngester(conn *sql.DB, conj *conjugate.Conjugator, conv script.Converter) *Ingester {
	if conj == nil {
		conj = conjugate.New()
	}
	if conv == nil {
		conv = script.KanaConverter{}
	}
	return &Ingester{
		DB:            conn,
		Conjugator:    conj,
		Converter:     conv,
		BatchSize:     1000,
		FlushInterval: time.Second,
		Workers:       4, // Default worker count
	}
}

// preparedEntry holds the rows of one entry before they are written.
type preparedEntry struct {
	Entry        db.Entry
	Conjugations []db.Conjugation
	Paradigms    int
	Skipped      bool
	Dropped      int
}

func (ig *Ingester) logger() *zap.Logger {
	if ig.Logger == nil {
		return zap.NewNop()
	}
	return ig.Logger
}

// Ingest converts entries on the worker pool and writes them in batched
// transactions. Entries are independent, so no ordering is kept between them.
// A canceled ctx stops submission; entries already buffered are still
// committed and ctx.Err() is returned.
func (ig *Ingester) Ingest(ctx context.Context, entries []dictionary.JMdictEntry) (Stats, error) {
	logger := ig.logger()
	total := len(entries)
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	if total == 0 {
		return Stats{}, nil
	}

	workers := ig.Workers
	if workers <= 0 {
		workers = 1
	}
	var wp WorkerPoolInterface
	if ig.PoolFactory != nil {
		wp = ig.PoolFactory(workers, workers*2)
	} else {
		wp = NewWorkerPool(workers, workers*2)
	}
	resultCh := make(chan preparedEntry, workers*2)

	bw := NewBatchWriter(ig.DB, ig.BatchSize, ig.FlushInterval).WithLogger(logger)
	var entriesWritten, conjugated, forms, skipped, dropped atomic.Int64
	var batchErr error
	var batchErrMu sync.Mutex
	bw.OnError = func(e error) {
		batchErrMu.Lock()
		if batchErr == nil {
			batchErr = e
		}
		batchErrMu.Unlock()
	}
	bw.OnCommit = func(items int) {
		logger.Debug("entries committed", zap.Int("items", items), zap.Int64("total", bw.Committed()))
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	wp.Start(runCtx)

	consumerDone := make(chan error, 1)
	go func() {
		processed := 0
		for item := range resultCh {
			p := item
			err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
				id, err := db.UpsertEntry(tx, p.Entry)
				if err != nil {
					return fmt.Errorf("failed to persist entry %s: %w", p.Entry.EntSeq, err)
				}
				if len(p.Conjugations) > 0 {
					if err := db.InsertConjugations(tx, id, p.Conjugations); err != nil {
						return fmt.Errorf("failed to persist conjugations of %s: %w", p.Entry.EntSeq, err)
					}
				}
				entriesWritten.Add(1)
				forms.Add(int64(len(p.Conjugations)))
				if p.Paradigms > 0 {
					conjugated.Add(1)
				}
				if p.Skipped {
					skipped.Add(1)
				}
				dropped.Add(int64(p.Dropped))
				return nil
			})
			if err != nil {
				// Stop producers and keep draining so workers never block.
				cancel()
				consumerDone <- err
				for range resultCh {
				}
				return
			}
			processed++
			if ig.OnProgress != nil && processed%ig.progressStep() == 0 {
				ig.OnProgress(processed, total)
			}
		}
		if ig.OnProgress != nil {
			ig.OnProgress(processed, total)
		}
		consumerDone <- nil
	}()

	var submitErr error
Loop:
	for i := range entries {
		e := entries[i]
		job := func(ctx context.Context) error {
			p := ig.prepare(e)
			select {
			case resultCh <- p:
			case <-ctx.Done():
			}
			return nil
		}
		if err := wp.SubmitCtx(runCtx, job); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || err == ErrPoolClosed {
				break Loop
			}
			submitErr = fmt.Errorf("submit entry %s: %w", e.Id, err)
			break Loop
		}
	}

	// Workers are gone once Close returns, so nothing sends on resultCh.
	wp.Close()
	close(resultCh)
	consumerErr := <-consumerDone

	closeErr := bw.Close()

	stats := Stats{
		Entries:    int(entriesWritten.Load()),
		Conjugated: int(conjugated.Load()),
		Forms:      int(forms.Load()),
		Skipped:    int(skipped.Load()),
		Dropped:    int(dropped.Load()),
	}

	batchErrMu.Lock()
	defer batchErrMu.Unlock()
	switch {
	case submitErr != nil:
		return stats, submitErr
	case consumerErr != nil:
		return stats, consumerErr
	case batchErr != nil:
		return stats, batchErr
	case closeErr != nil:
		return stats, closeErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	logger.Info("ingest finished",
		zap.Int("entries", stats.Entries),
		zap.Int("conjugated", stats.Conjugated),
		zap.Int("forms", stats.Forms),
		zap.Int("skipped", stats.Skipped),
		zap.Int("dropped", stats.Dropped))
	return stats, nil
}

func (ig *Ingester) progressStep() int {
	if ig.BatchSize > 0 {
		return ig.BatchSize
	}
	return 100
}

// prepare converts a dictionary entry into its rows. It only touches the
// conjugator and converter, so it is safe to run on any worker.
func (ig *Ingester) prepare(e dictionary.JMdictEntry) preparedEntry {
	out := preparedEntry{Entry: db.Entry{EntSeq: e.Id}}

	for _, k := range e.Kanji {
		out.Entry.Kanji = append(out.Entry.Kanji, db.KanjiElement{
			Text:     k.Text,
			Common:   k.Common,
			Info:     k.Tags,
			Priority: k.Priority,
		})
	}
	for _, k := range e.Kana {
		r := ig.readings(e.Id, k.Text)
		out.Entry.Readings = append(out.Entry.Readings, db.ReadingElement{
			Hiragana: r.Hiragana,
			Katakana: r.Katakana,
			Romaji:   r.Romaji,
			NoKanji:  k.NoKanji,
			Common:   k.Common,

			AppliesToKanji: k.AppliesToKanji,
		})
	}
	for _, s := range e.Sense {
		var sense db.Sense
		for _, raw := range s.PartOfSpeech {
			sense.POS = append(sense.POS, db.POS{Raw: raw, Code: pos.Normalize(raw)})
		}
		for _, g := range s.Gloss {
			sense.Glosses = append(sense.Glosses, db.Gloss{Text: g.Text, Lang: g.Lang, Type: g.Type})
		}
		out.Entry.Senses = append(out.Entry.Senses, sense)
	}

	conj := ig.Conjugator
	if conj == nil {
		conj = conjugate.New()
	}
	results := e.Conjugate(conj)
	out.Paradigms = len(results)
	categories := conjugate.Categories(e.Senses())
	produced := make(map[string]bool, len(results))
	for _, res := range results {
		produced[res.Code()] = true
	}
	for _, code := range categories {
		if produced[code] {
			continue
		}
		out.Dropped++
		ig.logger().Warn("category produced no conjugations",
			zap.String("ent_seq", e.Id),
			zap.String("category", code))
	}
	if len(results) == 0 && len(categories) > 0 {
		out.Skipped = true
		ig.logger().Warn("no conjugations generated",
			zap.String("ent_seq", e.Id),
			zap.Strings("categories", categories))
	}
	for _, res := range results {
		for _, f := range res.Forms {
			r := ig.readings(e.Id, f.Kana)
			out.Conjugations = append(out.Conjugations, db.Conjugation{
				Category:  res.Code(),
				Type:      string(f.Type),
				KanjiForm: f.Kanji,
				Hiragana:  r.Hiragana,
				Katakana:  r.Katakana,
				Romaji:    r.Romaji,
			})
		}
	}
	return out
}

func (ig *Ingester) readings(entSeq, kana string) script.Readings {
	conv := ig.Converter
	if conv == nil {
		conv = script.KanaConverter{}
	}
	r, err := conv.Convert(kana)
	if err != nil {
		ig.logger().Warn("script conversion failed, using kana table",
			zap.String("ent_seq", entSeq),
			zap.String("text", kana),
			zap.Error(err))
		r, _ = script.KanaConverter{}.Convert(kana)
	}
	return r
}
