package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"fuzzymatch/internal/config"
	"fuzzymatch/internal/corpus"
	"fuzzymatch/internal/metrics"
	"fuzzymatch/internal/ui"
	"fuzzymatch/pkg/fuzzy"

	"github.com/spf13/cobra"
)

type rankFlags struct {
	matchFlags
	input     string
	format    string
	limit     int
	parallel  bool
	workers   int
	metrics   bool
	outputDir string
	benchmark bool
}

// benchmarkLine is the single JSON line printed in --benchmark mode.
type benchmarkLine struct {
	RunID      string  `json:"run_id"`
	DurationMs int64   `json:"duration_ms"`
	Throughput float64 `json:"throughput"`
	Items      int64   `json:"items"`
	Matched    int64   `json:"matched"`
	Parallel   bool    `json:"parallel"`
	Workers    int     `json:"workers"`
}

func newRankCmd(g *globalFlags) *cobra.Command {
	f := &rankFlags{}

	cmd := &cobra.Command{
		Use:   "rank <pattern>",
		Short: "Rank a corpus by how closely each item matches pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := g.prepare(cmd, f.json || f.benchmark)
			if err != nil {
				return err
			}
			return runRank(cmd, term, f, args[0])
		},
	}

	fs := cmd.Flags()
	f.matchFlags.register(fs, false)
	fs.StringVarP(&f.input, "input", "i", "", "Corpus file or directory")
	fs.StringVar(&f.format, "format", config.DefaultFormat(), "Corpus format: auto, lines, hunspell, json")
	fs.IntVarP(&f.limit, "limit", "n", config.DefaultLimit(), "Maximum results to show (0 = all)")
	fs.BoolVarP(&f.parallel, "parallel", "p", config.DefaultParallel(), "Enable parallel ranking")
	fs.IntVarP(&f.workers, "workers", "w", config.DefaultWorkers(), "Number of parallel workers (0 = auto)")
	fs.BoolVar(&f.metrics, "metrics", config.DefaultMetrics(), "Write metrics to output directory")
	fs.StringVarP(&f.outputDir, "output-dir", "o", config.DefaultOutputDir(), "Output directory for metrics")
	fs.BoolVar(&f.benchmark, "benchmark", false, "Run in benchmark mode (JSON output only)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runRank(cmd *cobra.Command, term *ui.UI, f *rankFlags, pattern string) error {
	if err := fuzzy.CheckPattern(pattern); err != nil {
		return err
	}

	// Auto-detect workers
	if f.workers <= 0 {
		f.workers = runtime.NumCPU()
		if f.workers > config.MaxWorkers {
			f.workers = config.MaxWorkers
		}
	}
	workers := f.workers
	if !f.parallel {
		workers = 1
	}

	interactive := !f.json && !f.benchmark
	if interactive {
		term.Banner()
		term.Config(pattern, f.loc, f.distance, f.parallel, workers)
	}

	collector := metrics.NewCollector(pattern, f.input)
	collector.Settings(map[string]interface{}{
		"loc":      f.loc,
		"distance": f.distance,
		"format":   f.format,
		"parallel": f.parallel,
		"workers":  workers,
	})

	// Phase 1: load the corpus
	load := collector.Begin("load")
	if interactive {
		term.Phase(1, 2, "Loading corpus")
	}
	spinner := term.Spinner(fmt.Sprintf("Reading %s...", f.input))
	loaded, err := corpus.Load(f.input, corpus.Format(f.format))
	spinner.Stop()
	if err != nil {
		if errors.Is(err, corpus.ErrUnknownFormat) {
			return fmt.Errorf("%w (use auto, lines, hunspell or json)", err)
		}
		return err
	}
	load.Count("sources", int64(len(loaded.Sources)))
	load.Count("items_raw", int64(loaded.TotalRaw))
	load.Count("duplicates", int64(loaded.TotalDuplicates))
	load.Count("items", int64(len(loaded.Items)))
	elapsed := load.End()

	for _, source := range loaded.Sources {
		term.Debug("source loaded", "path", source)
	}
	if interactive {
		term.SourceStatus(f.input, "ok", fmt.Sprintf("%d items from %d sources (%d duplicates)",
			len(loaded.Items), len(loaded.Sources), loaded.TotalDuplicates))
	}
	if len(loaded.Items) == 0 {
		term.Warning("corpus is empty")
	}

	// Phase 2: rank
	rank := collector.Begin("rank")
	if interactive {
		term.Phase(2, 2, "Ranking")
	}

	pb := term.Progress("Ranking", len(loaded.Items))
	var progress func(int, fuzzy.Ranked)
	if pb != nil {
		var mu sync.Mutex
		progress = func(int, fuzzy.Ranked) {
			mu.Lock()
			pb.Increment()
			mu.Unlock()
		}
	}
	ranked, err := fuzzy.ParallelRank(cmd.Context(), loaded.Items, pattern, f.loc, f.distance,
		fuzzy.ParallelConfig{Workers: workers}, progress)
	if pb != nil {
		pb.Stop()
	}
	if err != nil {
		return fmt.Errorf("ranking interrupted: %w", err)
	}
	collector.RecordRanking(ranked)
	rank.Count("workers", int64(workers))
	elapsed += rank.End()

	run := collector.Finalize()
	rank.Gauge("match_ratio", ratio(run.Totals.Matched, len(loaded.Items)))

	if f.metrics || f.benchmark {
		writeMetrics(term, f.outputDir, run, interactive)
	}

	shown := ranked
	if f.limit > 0 && len(shown) > f.limit {
		shown = shown[:f.limit]
	}

	switch {
	case f.benchmark:
		line, err := json.Marshal(benchmarkLine{
			RunID:      run.RunID,
			DurationMs: run.Totals.DurationMs,
			Throughput: run.Totals.Throughput,
			Items:      run.Totals.Items,
			Matched:    run.Totals.Matched,
			Parallel:   f.parallel,
			Workers:    workers,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(line))
	case f.json:
		return writeJSON(cmd, shown)
	default:
		term.Ranked(shown)
		term.FinalReport(len(loaded.Items), int(run.Totals.Matched), elapsed)
		term.Done()
	}
	return nil
}

// writeMetrics persists the run and compares it with the previous run of
// the same pattern over the same corpus. Failures are reported but never
// fail the command.
func writeMetrics(term *ui.UI, outputDir string, run *metrics.Run, interactive bool) {
	reporter := metrics.NewReporter(outputDir)
	previous, err := reporter.Previous(run.Pattern, run.Input)
	if err != nil {
		term.Debug("metrics history unreadable", "err", err)
	}

	if err := reporter.Write(run); err != nil {
		term.Warning(fmt.Sprintf("Failed to write metrics: %v", err))
		return
	}
	term.Debug("metrics written", "run_id", run.RunID, "dir", outputDir)
	if !interactive {
		return
	}
	term.Success(fmt.Sprintf("Metrics written: %s", run.RunID))
	if comparison := metrics.Compare(run, previous); comparison != nil {
		term.Info(comparison.String())
	}
}

func ratio(n int64, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
