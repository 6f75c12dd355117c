// Package collector finds judgement/summary document pairs under a dataset root.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/raphaelgruber/casepairs/internal/metrics"
	"github.com/raphaelgruber/casepairs/internal/models"
	"github.com/raphaelgruber/casepairs/internal/textio"
)

// Sentinel errors for root validation.
var (
	ErrRootNotFound = errors.New("dataset root not found")
	ErrRootNotDir   = errors.New("dataset root is not a directory")
)

// Default directory names and document extension.
const (
	DefaultJudgementDir = "judgement"
	DefaultSummaryDir   = "summary"
	DefaultExtension    = ".txt"
)

// Options configures which directories and files are paired.
type Options struct {
	// JudgementDir is the directory name searched for at any depth.
	JudgementDir string
	// SummaryDir is the sibling directory name holding summaries.
	SummaryDir string
	// Extension is the filename suffix of documents, including the dot.
	Extension string
}

// DefaultOptions returns the standard judgement/summary/.txt layout.
func DefaultOptions() Options {
	return Options{
		JudgementDir: DefaultJudgementDir,
		SummaryDir:   DefaultSummaryDir,
		Extension:    DefaultExtension,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.JudgementDir == "" {
		o.JudgementDir = d.JudgementDir
	}
	if o.SummaryDir == "" {
		o.SummaryDir = d.SummaryDir
	}
	if o.Extension == "" {
		o.Extension = d.Extension
	}
	return o
}

// Stats summarizes one collection pass.
type Stats struct {
	JudgementDirs  int
	MissingSummary int
	FilesMatched   int
	FilesUnmatched int
	LossyFiles     int
}

// Collector walks a dataset root and joins same-named documents.
type Collector struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Collector
	stats   Stats
}

// New creates a collector. A nil logger discards output; a nil metrics
// collector gets a private one.
func New(opts Options, logger *slog.Logger, m *metrics.Collector) *Collector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if m == nil {
		m = metrics.NewCollector()
	}
	return &Collector{
		opts:    opts.withDefaults(),
		logger:  logger,
		metrics: m,
	}
}

// Collect is a convenience wrapper using default options.
func Collect(ctx context.Context, root string) (models.RawDataset, error) {
	return New(DefaultOptions(), nil, nil).Collect(ctx, root)
}

// Stats returns the statistics of the last Collect call.
func (c *Collector) Stats() Stats {
	return c.stats
}

// Collect finds every judgement directory under root that has a summary
// sibling and returns one RawPair per filename present on both sides.
// Pairs are ordered by judgement directory path, then by filename.
func (c *Collector) Collect(ctx context.Context, root string) (models.RawDataset, error) {
	c.stats = Stats{}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}

	judgementDirs, err := c.findJudgementDirs(root)
	if err != nil {
		return nil, err
	}
	c.stats.JudgementDirs = len(judgementDirs)
	c.metrics.Add(metrics.CounterJudgementDirs, int64(len(judgementDirs)))

	var rows models.RawDataset
	for _, rel := range judgementDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pairs, err := c.collectDir(ctx, root, rel)
		if err != nil {
			return nil, err
		}
		rows = append(rows, pairs...)
	}

	return rows, nil
}

// findJudgementDirs returns slash-separated paths, relative to root, of every
// descendant directory named like the judgement directory.
func (c *Collector) findJudgementDirs(root string) ([]string, error) {
	pattern := "**/" + escapeMeta(c.opts.JudgementDir)

	var dirs []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			dirs = append(dirs, p)
		}
		return nil
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(dirs)
	return dirs, nil
}

// collectDir pairs the documents of one judgement directory with its sibling.
func (c *Collector) collectDir(ctx context.Context, root, rel string) (models.RawDataset, error) {
	judgementDir := filepath.Join(root, filepath.FromSlash(rel))
	parent := filepath.Dir(judgementDir)
	summaryDir := filepath.Join(parent, c.opts.SummaryDir)

	if info, err := os.Stat(summaryDir); err != nil || !info.IsDir() {
		c.stats.MissingSummary++
		c.metrics.Add(metrics.CounterMissingSummary, 1)
		c.logger.Debug("no summary sibling, skipping", "dir", judgementDir)
		return nil, nil
	}

	summaries, err := c.listDocuments(summaryDir)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(summaries))
	for _, name := range summaries {
		byName[name] = filepath.Join(summaryDir, name)
	}

	judgements, err := c.listDocuments(judgementDir)
	if err != nil {
		return nil, err
	}

	var rows models.RawDataset
	for _, name := range judgements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		summaryPath, ok := byName[name]
		if !ok {
			c.stats.FilesUnmatched++
			c.metrics.Add(metrics.CounterFilesUnmatched, 1)
			c.logger.Debug("no matching summary", "file", name, "dir", judgementDir)
			continue
		}

		judgement, err := c.read(filepath.Join(judgementDir, name))
		if err != nil {
			return nil, err
		}
		summary, err := c.read(summaryPath)
		if err != nil {
			return nil, err
		}

		c.stats.FilesMatched++
		c.metrics.Add(metrics.CounterFilesMatched, 1)
		rows = append(rows, models.NewRawPair(parent, name, judgement, summary))
	}

	c.logger.Debug("collected directory",
		"dir", judgementDir,
		"judgements", len(judgements),
		"summaries", len(summaries),
		"pairs", len(rows),
	)

	return rows, nil
}

// listDocuments returns the names of regular entries directly inside dir
// carrying the configured extension, sorted.
func (c *Collector) listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), c.opts.Extension) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (c *Collector) read(path string) (string, error) {
	start := time.Now()
	text, lossy, err := textio.ReadTextLossy(path)
	c.metrics.RecordTiming(metrics.OpRead, time.Since(start))
	if err != nil {
		return "", err
	}
	if lossy {
		c.stats.LossyFiles++
		c.metrics.Add(metrics.CounterLossyFiles, 1)
		c.logger.Debug("replaced invalid UTF-8", "file", path)
	}
	return text, nil
}

// escapeMeta backslash-escapes glob metacharacters so name matches literally.
func escapeMeta(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
