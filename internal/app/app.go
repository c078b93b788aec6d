package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/heartmarshall/idiomset/internal/adapter/postgres"
	"github.com/heartmarshall/idiomset/internal/app/cleaner"
	"github.com/heartmarshall/idiomset/internal/config"
	"github.com/heartmarshall/idiomset/internal/report"
	"github.com/heartmarshall/idiomset/internal/script"
)

// RunOptions carry command-line overrides applied on top of the loaded
// configuration. Zero values leave the configuration unchanged.
type RunOptions struct {
	ConfigPath   string
	EnvFile      string
	OutputPath   string
	ReportFormat string
	// DryRun overrides output.dry_run in either direction when non-nil.
	DryRun *bool

	// Color enables coloured text reports.
	Color bool
	// ReportOut receives the report; defaults to os.Stdout.
	ReportOut io.Writer
}

// Run is the application entry point. It loads the environment and
// configuration, initializes the logger, wires the pipeline and runs it once.
func Run(ctx context.Context, opts RunOptions) (*cleaner.Outcome, error) {
	envFile, err := LoadEnvFile(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.InfoContext(ctx, "starting idiomset",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("env_file", envFile),
		slog.String("normalizer", cfg.Normalizer.Backend),
	)

	normalizer, err := script.New(cfg.Normalizer)
	if err != nil {
		return nil, err
	}

	reporter, err := report.New(cfg.Output.ReportFormat, opts.Color)
	if err != nil {
		return nil, err
	}

	reportOut := opts.ReportOut
	if reportOut == nil {
		reportOut = os.Stdout
	}

	pipelineOpts := cleaner.Options{
		Sources:    cfg.Sources,
		OutputPath: cfg.Output.Path,
		DryRun:     cfg.Output.DryRun,
		Normalizer: normalizer,
		Reporter:   reporter,
		ReportOut:  reportOut,
	}

	if cfg.NeedsDatabase() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		pipelineOpts.DB = pool
	}

	return cleaner.NewPipeline(logger, pipelineOpts).Run(ctx)
}

func applyOverrides(cfg *config.Config, opts RunOptions) error {
	changed := false
	if opts.OutputPath != "" {
		cfg.Output.Path = opts.OutputPath
		changed = true
	}
	if opts.ReportFormat != "" {
		cfg.Output.ReportFormat = opts.ReportFormat
		changed = true
	}
	if opts.DryRun != nil {
		cfg.Output.DryRun = *opts.DryRun
		changed = true
	}
	if !changed {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}
