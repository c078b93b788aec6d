// Package cleaner runs one batch: load every source, normalize and merge,
// write the cleaned dataset and report what was dropped.
package cleaner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/idiomset/internal/adapter/postgres"
	"github.com/heartmarshall/idiomset/internal/config"
	"github.com/heartmarshall/idiomset/internal/dedup"
	"github.com/heartmarshall/idiomset/internal/domain"
	"github.com/heartmarshall/idiomset/internal/output"
	"github.com/heartmarshall/idiomset/internal/report"
	"github.com/heartmarshall/idiomset/internal/script"
	"github.com/heartmarshall/idiomset/internal/source"
	"github.com/heartmarshall/idiomset/pkg/ctxutil"
)

// Stage names, in execution order.
const (
	StageLoad   = "load"
	StageMerge  = "merge"
	StageWrite  = "write"
	StageReport = "report"
)

// StageResult holds the outcome of a single pipeline stage.
type StageResult struct {
	Rows     int
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Options configures a Pipeline.
type Options struct {
	// Sources in priority order: index 0 is rank 0 and wins collisions.
	Sources    []config.SourceConfig
	OutputPath string
	DryRun     bool

	// Normalizer defaults to the table normalizer.
	Normalizer script.Normalizer
	// Reporter defaults to plain text; ReportOut defaults to io.Discard.
	Reporter  report.Reporter
	ReportOut io.Writer
	// DB is required only for postgres sources.
	DB postgres.Querier
}

// Outcome is what a successful run produced.
type Outcome struct {
	RunID   uuid.UUID
	Result  *dedup.Result
	Summary report.Summary
}

// Pipeline orchestrates the load → merge → write → report sequence.
type Pipeline struct {
	log     *slog.Logger
	opts    Options
	results map[string]StageResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, opts Options) *Pipeline {
	if opts.Normalizer == nil {
		opts.Normalizer = script.Default
	}
	if opts.Reporter == nil {
		opts.Reporter = &report.TextReporter{}
	}
	if opts.ReportOut == nil {
		opts.ReportOut = io.Discard
	}
	return &Pipeline{
		log:     log,
		opts:    opts,
		results: make(map[string]StageResult),
	}
}

// Results returns stage results after Run completes.
func (p *Pipeline) Results() map[string]StageResult {
	return p.results
}

// Run executes the pipeline. Any load, merge or write failure aborts the run;
// nothing is written unless every source loaded and merged cleanly. A report
// failure is logged and does not fail the run.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = ctxutil.NewRunID()
		ctx = ctxutil.WithRunID(ctx, runID)
	}
	p.log.InfoContext(ctx, "pipeline started",
		slog.Int("sources", len(p.opts.Sources)),
		slog.Bool("dry_run", p.opts.DryRun),
	)

	// Step 1: Load every source before merging anything.
	chunks, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: Normalize keys, merge and deduplicate.
	res, err := p.merge(ctx, chunks)
	if err != nil {
		return nil, err
	}

	summary := report.FromResult(runID.String(), res)

	// Step 3: Persist the cleaned dataset.
	writeErr := p.write(ctx, res)
	if writeErr == nil && !p.opts.DryRun {
		summary.OutputPath = p.opts.OutputPath
	}

	// Step 4: Report. Runs even when the write failed.
	p.report(ctx, summary)

	if writeErr != nil {
		return nil, writeErr
	}

	p.log.InfoContext(ctx, "pipeline completed",
		slog.Int("total", summary.Total),
		slog.Int("duplicate_groups", summary.DuplicateGroups),
		slog.Int("final", summary.Final),
	)
	return &Outcome{RunID: runID, Result: res, Summary: summary}, nil
}

func (p *Pipeline) load(ctx context.Context) ([]dedup.Chunk, error) {
	start := time.Now()
	chunks := make([]dedup.Chunk, 0, len(p.opts.Sources))
	total := 0

	for rank, src := range p.opts.Sources {
		srcStart := time.Now()
		records, err := source.Load(ctx, src, p.opts.DB)
		if err != nil {
			p.fail(ctx, StageLoad, start, err, slog.String("source", src.Name))
			return nil, err
		}
		p.log.InfoContext(ctx, "source loaded",
			slog.String("source", src.Name),
			slog.String("kind", src.Kind),
			slog.Int("rank", rank),
			slog.Int("rows", len(records)),
			slog.Duration("duration", time.Since(srcStart)),
		)

		chunks = append(chunks, dedup.Chunk{
			Source:  domain.Source{Name: src.Name, Rank: rank},
			Records: records,
		})
		total += len(records)
	}

	p.done(ctx, StageLoad, start, total)
	return chunks, nil
}

func (p *Pipeline) merge(ctx context.Context, chunks []dedup.Chunk) (*dedup.Result, error) {
	start := time.Now()

	res, err := dedup.New(p.opts.Normalizer).Merge(chunks)
	if err != nil {
		p.fail(ctx, StageMerge, start, err)
		return nil, fmt.Errorf("merge: %w", err)
	}

	for _, g := range res.Duplicates {
		p.log.DebugContext(ctx, "duplicate key",
			slog.String("key", g.Key),
			slog.Int("records", len(g.Records)),
			slog.String("kept_source", g.Survivor().Source),
		)
	}
	p.done(ctx, StageMerge, start, len(res.Cleaned),
		slog.Int("duplicate_groups", len(res.Duplicates)),
		slog.Int("duplicate_records", res.DuplicateRecords()),
	)
	return res, nil
}

func (p *Pipeline) write(ctx context.Context, res *dedup.Result) error {
	start := time.Now()

	if p.opts.DryRun {
		p.results[StageWrite] = StageResult{Skipped: true, Rows: len(res.Cleaned)}
		p.log.InfoContext(ctx, "dry run: output not written", slog.Int("rows", len(res.Cleaned)))
		return nil
	}

	if err := output.WriteFile(p.opts.OutputPath, res.Cleaned); err != nil {
		p.fail(ctx, StageWrite, start, err, slog.String("path", p.opts.OutputPath))
		return err
	}
	p.done(ctx, StageWrite, start, len(res.Cleaned), slog.String("path", p.opts.OutputPath))
	return nil
}

func (p *Pipeline) report(ctx context.Context, s report.Summary) {
	start := time.Now()

	if err := p.opts.Reporter.Write(p.opts.ReportOut, s); err != nil {
		p.results[StageReport] = StageResult{Err: err, Duration: time.Since(start)}
		p.log.WarnContext(ctx, "report failed", slog.String("error", err.Error()))
		return
	}
	p.results[StageReport] = StageResult{Rows: s.Final, Duration: time.Since(start)}
}

func (p *Pipeline) done(ctx context.Context, stage string, start time.Time, rows int, attrs ...any) {
	result := StageResult{Rows: rows, Duration: time.Since(start)}
	p.results[stage] = result

	args := append([]any{
		slog.String("stage", stage),
		slog.Int("rows", rows),
		slog.Duration("duration", result.Duration),
	}, attrs...)
	p.log.InfoContext(ctx, "stage completed", args...)
}

func (p *Pipeline) fail(ctx context.Context, stage string, start time.Time, err error, attrs ...any) {
	result := StageResult{Err: err, Duration: time.Since(start)}
	p.results[stage] = result

	args := append([]any{
		slog.String("stage", stage),
		slog.String("error", err.Error()),
		slog.Duration("duration", result.Duration),
	}, attrs...)
	p.log.ErrorContext(ctx, "stage failed", args...)
}
