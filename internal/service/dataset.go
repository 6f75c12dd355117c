// Package service runs the collect, clean and write stages of a dataset build.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/casepairs/internal/cleaner"
	"github.com/raphaelgruber/casepairs/internal/collector"
	"github.com/raphaelgruber/casepairs/internal/metrics"
	"github.com/raphaelgruber/casepairs/internal/models"
	"github.com/raphaelgruber/casepairs/internal/writer"
)

// DatasetService builds a judgement/summary dataset from a directory tree.
type DatasetService struct {
	layout collector.Options
	logger *slog.Logger
}

// NewDatasetService creates a new dataset service.
// A nil logger falls back to slog.Default().
func NewDatasetService(layout collector.Options, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		layout: layout,
		logger: logger,
	}
}

// BuildOptions configures a dataset build.
type BuildOptions struct {
	// OutputName is the CSV file name written inside the root.
	// Defaults to writer.DefaultFileName.
	OutputName string
	// DryRun collects and cleans without writing the CSV file.
	DryRun bool
}

// BuildResult summarizes a dataset build.
type BuildResult struct {
	RunID      string
	OutputPath string

	// Collected holds the raw pairs in traversal order.
	Collected models.RawDataset
	// Dataset holds the rows that were (or would be) written.
	Dataset models.Dataset

	Report  cleaner.Report
	Stats   collector.Stats
	Metrics metrics.Snapshot
}

// Build collects pairs under root, cleans them and writes the CSV file.
// Any filesystem error aborts the run; nothing is written unless collection
// and cleaning succeeded.
func (s *DatasetService) Build(ctx context.Context, root string, opts BuildOptions) (*BuildResult, error) {
	if opts.OutputName == "" {
		opts.OutputName = writer.DefaultFileName
	}

	runID := uuid.New().String()[:8] // Short ID for convenience
	logger := s.logger.With("run_id", runID)
	result := &BuildResult{
		RunID:      runID,
		OutputPath: filepath.Join(root, opts.OutputName),
	}

	logger.Info("building dataset", "root", root, "dry_run", opts.DryRun)

	runMetrics := metrics.NewCollector()
	coll := collector.New(s.layout, logger, runMetrics)
	err := runMetrics.Time(metrics.OpCollect, func() error {
		var err error
		result.Collected, err = coll.Collect(ctx, root)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("collect pairs: %w", err)
	}
	result.Stats = coll.Stats()

	logger.Info("collected pairs",
		"pairs", len(result.Collected),
		"judgement_dirs", result.Stats.JudgementDirs,
		"missing_summary", result.Stats.MissingSummary,
		"unmatched", result.Stats.FilesUnmatched,
	)

	start := time.Now()
	result.Dataset, result.Report = cleaner.Clean(result.Collected)
	runMetrics.RecordTiming(metrics.OpClean, time.Since(start))

	logger.Info("cleaned dataset",
		"before", result.Report.Before,
		"after", result.Report.After,
		"dropped_missing", result.Report.DroppedMissing,
		"dropped_blank", result.Report.DroppedBlank,
	)

	if opts.DryRun {
		result.Metrics = runMetrics.Snapshot()
		return result, nil
	}

	// Last chance to stop before the output file is touched.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = runMetrics.Time(metrics.OpWrite, func() error {
		return writer.WriteFile(result.OutputPath, result.Dataset)
	})
	if err != nil {
		return nil, fmt.Errorf("write dataset: %w", err)
	}
	runMetrics.Add(metrics.CounterRowsWritten, int64(len(result.Dataset)))

	logger.Info("wrote dataset", "path", result.OutputPath, "rows", len(result.Dataset))

	result.Metrics = runMetrics.Snapshot()
	return result, nil
}

// SourcePaths returns the judgement and summary file paths a raw pair was
// read from.
func (s *DatasetService) SourcePaths(p models.RawPair) (judgement, summary string) {
	layout := s.layout
	if layout.JudgementDir == "" {
		layout.JudgementDir = collector.DefaultJudgementDir
	}
	if layout.SummaryDir == "" {
		layout.SummaryDir = collector.DefaultSummaryDir
	}
	return filepath.Join(p.Dir, layout.JudgementDir, p.Name),
		filepath.Join(p.Dir, layout.SummaryDir, p.Name)
}
