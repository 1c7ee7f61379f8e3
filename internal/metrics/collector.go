// Package metrics records timing, counters and threshold histograms for
// ranking runs and persists them as JSON.
package metrics

import (
	"crypto/rand"
	"encoding/hex"
	"runtime"
	"strconv"
	"time"

	"fuzzymatch/pkg/fuzzy"
)

// Unmatched is the histogram key for items no bucket admitted.
const Unmatched = "none"

// Stage holds timing and counters for one phase of a run.
type Stage struct {
	Name       string             `json:"name"`
	Start      time.Time          `json:"start"`
	DurationMs int64              `json:"duration_ms"`
	Counters   map[string]int64   `json:"counters,omitempty"`
	Gauges     map[string]float64 `json:"gauges,omitempty"`
}

// Run is the persisted record of one ranking run.
type Run struct {
	RunID       string                 `json:"run_id"`
	Timestamp   time.Time              `json:"timestamp"`
	Pattern     string                 `json:"pattern"`
	Input       string                 `json:"input"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
	Stages      []*Stage               `json:"stages"`
	Totals      *Totals                `json:"totals"`
	Environment *Environment           `json:"environment"`
}

// Totals aggregates a run. ByThreshold maps each admitting rank threshold
// ("0.1" .. "1.0", or Unmatched) to the number of items it admitted.
type Totals struct {
	DurationMs   int64            `json:"duration_ms"`
	PeakMemoryMB float64          `json:"peak_memory_mb"`
	Items        int64            `json:"items"`
	Matched      int64            `json:"matched"`
	Throughput   float64          `json:"throughput_items_per_sec"`
	ByThreshold  map[string]int64 `json:"by_threshold,omitempty"`
}

// Environment describes the machine a run was measured on.
type Environment struct {
	GoVersion string `json:"go_version"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	NumCPU    int    `json:"num_cpu"`
	MaxProcs  int    `json:"max_procs"`
}

// Collector gathers metrics for a single run. It is not safe for concurrent
// use; record from the goroutine driving the run.
type Collector struct {
	run        *Run
	start      time.Time
	peakMemory uint64
}

// NewCollector starts a run ranking input against pattern.
func NewCollector(pattern, input string) *Collector {
	now := time.Now()
	return &Collector{
		start: now,
		run: &Run{
			RunID:     newRunID(now),
			Timestamp: now,
			Pattern:   pattern,
			Input:     input,
			Settings:  make(map[string]interface{}),
			Totals:    &Totals{ByThreshold: make(map[string]int64)},
		},
	}
}

func newRunID(now time.Time) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return now.Format("20060102-150405") + "-" + hex.EncodeToString(suffix)
}

// Settings records run parameters such as distance or worker count.
func (c *Collector) Settings(settings map[string]interface{}) {
	for k, v := range settings {
		c.run.Settings[k] = v
	}
}

// StageTimer measures one stage started by Begin.
type StageTimer struct {
	c     *Collector
	stage *Stage
}

// Begin starts timing the named stage.
func (c *Collector) Begin(name string) *StageTimer {
	c.sampleMemory()
	stage := &Stage{
		Name:     name,
		Start:    time.Now(),
		Counters: make(map[string]int64),
		Gauges:   make(map[string]float64),
	}
	c.run.Stages = append(c.run.Stages, stage)
	return &StageTimer{c: c, stage: stage}
}

// Count sets a counter on the stage.
func (t *StageTimer) Count(name string, value int64) {
	t.stage.Counters[name] = value
}

// Gauge sets a gauge on the stage.
func (t *StageTimer) Gauge(name string, value float64) {
	t.stage.Gauges[name] = value
}

// End stops the stage and returns its duration.
func (t *StageTimer) End() time.Duration {
	d := time.Since(t.stage.Start)
	t.stage.DurationMs = d.Milliseconds()
	t.c.sampleMemory()
	return d
}

// RecordRanking adds ranked results to the run totals and threshold
// histogram.
func (c *Collector) RecordRanking(ranked []fuzzy.Ranked) {
	totals := c.run.Totals
	for _, r := range ranked {
		totals.Items++
		if !r.Matched {
			totals.ByThreshold[Unmatched]++
			continue
		}
		totals.Matched++
		totals.ByThreshold[ThresholdKey(r.Threshold)]++
	}
}

// ThresholdKey is the histogram key for a rank threshold.
func ThresholdKey(threshold float64) string {
	return strconv.FormatFloat(threshold, 'f', 1, 64)
}

func (c *Collector) sampleMemory() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	if m.Alloc > c.peakMemory {
		c.peakMemory = m.Alloc
	}
}

// Finalize closes the run and returns its record.
func (c *Collector) Finalize() *Run {
	c.sampleMemory()
	elapsed := time.Since(c.start)

	totals := c.run.Totals
	totals.DurationMs = elapsed.Milliseconds()
	totals.PeakMemoryMB = float64(c.peakMemory) / 1024 / 1024
	if elapsed > 0 {
		totals.Throughput = float64(totals.Items) / elapsed.Seconds()
	}

	c.run.Environment = &Environment{
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		MaxProcs:  runtime.GOMAXPROCS(0),
	}
	return c.run
}
