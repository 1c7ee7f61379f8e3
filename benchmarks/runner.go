// Benchmark runner for fuzzymatch.
// Run with: go run runner.go [options]
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

type Config struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Parallel bool   `json:"parallel"`
	Workers  int    `json:"workers"`
}

type Group struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Corpus      string   `json:"corpus"`
	Patterns    []string `json:"patterns"`
	Configs     []Config `json:"configs"`
}

type ConfigFile struct {
	Groups []Group `json:"groups"`
}

type BenchmarkResult struct {
	ConfigID   string  `json:"config_id"`
	Group      string  `json:"group"`
	Pattern    string  `json:"pattern"`
	DurationMs int64   `json:"duration_ms"`
	Throughput float64 `json:"throughput"`
	Items      int64   `json:"items"`
	Matched    int64   `json:"matched"`
	Parallel   bool    `json:"parallel"`
	Workers    int     `json:"workers"`
}

func main() {
	configPath := pflag.String("config", "configs.json", "Path to benchmark configs")
	outputDir := pflag.String("output", "results", "Output directory for results")
	group := pflag.String("group", "", "Run only this group (empty = all)")
	iterations := pflag.Int("iterations", 1, "Number of iterations per config")
	binary := pflag.String("binary", "", "Path to the fuzzymatch binary (default: search)")
	pflag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}

	var cfg ConfigFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
		os.Exit(1)
	}

	bin := *binary
	if bin == "" {
		bin = findBinary()
	}
	if bin == "" {
		fmt.Fprintln(os.Stderr, "Error: fuzzymatch binary not found. Build with 'go build ./cmd/fuzzymatch' first.")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	var results []BenchmarkResult
	total := countRuns(cfg.Groups, *group)
	current := 0

	for _, g := range cfg.Groups {
		if *group != "" && g.Name != *group {
			continue
		}

		fmt.Printf("\n=== Group: %s (%s) ===\n", g.Name, g.Description)
		fmt.Printf("Corpus: %s\n", g.Corpus)

		for _, pattern := range g.Patterns {
			for _, c := range g.Configs {
				current++
				fmt.Printf("\n[%d/%d] Running: %s, pattern %q\n", current, total, c.Name, pattern)

				var durations []int64
				var lastResult BenchmarkResult

				for i := 0; i < *iterations; i++ {
					if *iterations > 1 {
						fmt.Printf("  Iteration %d/%d...", i+1, *iterations)
					}

					result, err := runBenchmark(bin, *outputDir, g, c, pattern)
					if err != nil {
						fmt.Printf(" ERROR: %v\n", err)
						continue
					}

					durations = append(durations, result.DurationMs)
					lastResult = result

					if *iterations > 1 {
						fmt.Printf(" %dms\n", result.DurationMs)
					} else {
						fmt.Printf("  Duration: %dms, Items: %d, Matched: %d\n",
							result.DurationMs, result.Items, result.Matched)
					}
				}

				if len(durations) > 0 {
					if *iterations > 1 {
						var sum int64
						for _, d := range durations {
							sum += d
						}
						lastResult.DurationMs = sum / int64(len(durations))
						fmt.Printf("  Average: %dms\n", lastResult.DurationMs)
					}
					results = append(results, lastResult)
				}
			}
		}
	}

	resultsFile := filepath.Join(*outputDir, fmt.Sprintf("benchmark_%s.json",
		time.Now().Format("2006-01-02_15-04-05")))

	output := map[string]interface{}{
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"iterations": *iterations,
		"results":    results,
	}

	data, _ = json.MarshalIndent(output, "", "  ")
	if err := os.WriteFile(resultsFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
	} else {
		fmt.Printf("\nResults written to: %s\n", resultsFile)
	}

	printSummary(results)
}

func findBinary() string {
	candidates := []string{
		"../fuzzymatch",
		"../fuzzymatch.exe",
		"fuzzymatch",
		"fuzzymatch.exe",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	path, err := exec.LookPath("fuzzymatch")
	if err == nil {
		return path
	}

	return ""
}

func countRuns(groups []Group, filter string) int {
	count := 0
	for _, g := range groups {
		if filter != "" && g.Name != filter {
			continue
		}
		count += len(g.Configs) * len(g.Patterns)
	}
	return count
}

func runBenchmark(bin, outputDir string, g Group, c Config, pattern string) (BenchmarkResult, error) {
	args := []string{
		"rank", pattern,
		"--benchmark",
		"--input", g.Corpus,
		"--output-dir", outputDir,
		"--workers", fmt.Sprintf("%d", c.Workers),
	}

	if c.Parallel {
		args = append(args, "--parallel")
	} else {
		args = append(args, "--parallel=false")
	}

	cmd := exec.Command(bin, args...)
	output, err := cmd.Output()
	if err != nil {
		return BenchmarkResult{}, fmt.Errorf("command failed: %w", err)
	}

	var result struct {
		RunID      string  `json:"run_id"`
		DurationMs int64   `json:"duration_ms"`
		Throughput float64 `json:"throughput"`
		Items      int64   `json:"items"`
		Matched    int64   `json:"matched"`
		Parallel   bool    `json:"parallel"`
		Workers    int     `json:"workers"`
	}

	if err := json.Unmarshal(output, &result); err != nil {
		return BenchmarkResult{}, fmt.Errorf("failed to parse output: %w (output: %s)", err, string(output))
	}

	return BenchmarkResult{
		ConfigID:   c.ID,
		Group:      g.Name,
		Pattern:    pattern,
		DurationMs: result.DurationMs,
		Throughput: result.Throughput,
		Items:      result.Items,
		Matched:    result.Matched,
		Parallel:   result.Parallel,
		Workers:    result.Workers,
	}, nil
}

func printSummary(results []BenchmarkResult) {
	if len(results) == 0 {
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 78))
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("%-30s %-12s %10s %10s %8s\n", "Config", "Pattern", "Duration", "Items", "Speedup")
	fmt.Println(strings.Repeat("-", 78))

	// Group results by group name, keeping first-seen order
	var order []string
	groups := make(map[string][]BenchmarkResult)
	for _, r := range results {
		if _, ok := groups[r.Group]; !ok {
			order = append(order, r.Group)
		}
		groups[r.Group] = append(groups[r.Group], r)
	}

	for _, groupName := range order {
		groupResults := groups[groupName]
		fmt.Printf("\n[%s]\n", groupName)

		// Sequential run per pattern is the baseline
		baselines := make(map[string]int64)
		for _, r := range groupResults {
			if _, ok := baselines[r.Pattern]; !ok && !r.Parallel {
				baselines[r.Pattern] = r.DurationMs
			}
		}

		for _, r := range groupResults {
			speedup := "-"
			if baseline := baselines[r.Pattern]; baseline > 0 && r.DurationMs > 0 {
				speedup = fmt.Sprintf("%.2fx", float64(baseline)/float64(r.DurationMs))
			}

			name := r.ConfigID
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			pattern := r.Pattern
			if len(pattern) > 12 {
				pattern = pattern[:9] + "..."
			}

			fmt.Printf("%-30s %-12s %8dms %10d %8s\n",
				name, pattern, r.DurationMs, r.Items, speedup)
		}
	}

	fmt.Println(strings.Repeat("=", 78))
}
