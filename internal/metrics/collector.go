// Package metrics provides in-memory statistics for a dataset build.
package metrics

import (
	"math"
	"sync"
	"time"
)

// StageMetrics holds aggregated timings for a single pipeline stage.
type StageMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// StageSnapshot provides computed stats from raw stage metrics.
type StageSnapshot struct {
	Count       int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64
}

// Snapshot represents the run statistics at a point in time.
type Snapshot struct {
	ElapsedSeconds float64
	Collect        *StageSnapshot
	Read           *StageSnapshot
	Clean          *StageSnapshot
	Write          *StageSnapshot

	// Counters keyed by name (see the Counter* constants).
	Counters map[string]int64
}

// Stage names for the collector.
const (
	OpCollect = "collect"
	OpRead    = "read"
	OpClean   = "clean"
	OpWrite   = "write"
)

// Counter names.
const (
	CounterJudgementDirs  = "judgement_dirs"
	CounterMissingSummary = "missing_summary_dirs"
	CounterFilesMatched   = "files_matched"
	CounterFilesUnmatched = "files_unmatched"
	CounterLossyFiles     = "lossy_files"
	CounterRowsWritten    = "rows_written"
)

// Collector aggregates in-memory run statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*StageMetrics
	counters  map[string]int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*StageMetrics),
		counters:  make(map[string]int64),
	}
}

// getOrCreate returns existing metrics or creates new ones for a stage.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *StageMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &StageMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for a stage.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Time runs fn and records its duration under op.
func (c *Collector) Time(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	c.RecordTiming(op, time.Since(start))
	return err
}

// Add increments a named counter by n.
func (c *Collector) Add(counter string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[counter] += n
}

// Counter returns the current value of a named counter.
func (c *Collector) Counter(counter string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counters[counter]
}

// snapshotOp creates a snapshot for a stage, returning nil if no data.
func snapshotOp(m *StageMetrics) *StageSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}

	return &StageSnapshot{
		Count:       m.Count,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counters := make(map[string]int64, len(c.counters))
	for k, v := range c.counters {
		counters[k] = v
	}

	return Snapshot{
		ElapsedSeconds: time.Since(c.startTime).Seconds(),
		Collect:        snapshotOp(c.ops[OpCollect]),
		Read:           snapshotOp(c.ops[OpRead]),
		Clean:          snapshotOp(c.ops[OpClean]),
		Write:          snapshotOp(c.ops[OpWrite]),
		Counters:       counters,
	}
}
