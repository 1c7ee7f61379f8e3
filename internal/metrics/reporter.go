package metrics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Reporter persists runs under <output>/metrics: latest.json, one
// run_<id>.json per run and an append-only history.jsonl.
type Reporter struct {
	dir string
}

// NewReporter creates a reporter writing under outputDir/metrics.
func NewReporter(outputDir string) *Reporter {
	return &Reporter{dir: filepath.Join(outputDir, "metrics")}
}

func (r *Reporter) historyPath() string {
	return filepath.Join(r.dir, "history.jsonl")
}

// Write stores run and appends it to the history.
func (r *Reporter) Write(run *Run) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create metrics dir: %w", err)
	}

	for _, name := range []string{"latest.json", "run_" + run.RunID + ".json"} {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(r.dir, name), append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	f, err := os.OpenFile(r.historyPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(run); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// History returns every recorded run, oldest first. Malformed lines are
// skipped; a missing history is empty.
func (r *Reporter) History() ([]*Run, error) {
	f, err := os.Open(r.historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var runs []*Run
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var run Run
		if err := json.Unmarshal(scanner.Bytes(), &run); err != nil {
			continue
		}
		runs = append(runs, &run)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Previous returns the most recent run that ranked input against pattern,
// or nil when there is none.
func (r *Reporter) Previous(pattern, input string) (*Run, error) {
	runs, err := r.History()
	if err != nil {
		return nil, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Pattern == pattern && runs[i].Input == input {
			return runs[i], nil
		}
	}
	return nil, nil
}

// Comparison is the difference between two runs of the same query.
type Comparison struct {
	CurrentRunID  string           `json:"current_run_id"`
	PreviousRunID string           `json:"previous_run_id"`
	SpeedupFactor float64          `json:"speedup_factor"`
	TimeSavedMs   int64            `json:"time_saved_ms"`
	ItemsDiff     int64            `json:"items_diff"`
	MatchedDiff   int64            `json:"matched_diff"`
	ThresholdDiff map[string]int64 `json:"threshold_diff,omitempty"`
}

// Compare returns how current differs from previous, or nil if either run
// lacks totals.
func Compare(current, previous *Run) *Comparison {
	if current == nil || previous == nil || current.Totals == nil || previous.Totals == nil {
		return nil
	}
	cur, prev := current.Totals, previous.Totals

	speedup := float64(1)
	if cur.DurationMs > 0 {
		speedup = float64(prev.DurationMs) / float64(cur.DurationMs)
	}

	diff := make(map[string]int64)
	for k, n := range cur.ByThreshold {
		if d := n - prev.ByThreshold[k]; d != 0 {
			diff[k] = d
		}
	}
	for k, n := range prev.ByThreshold {
		if _, ok := cur.ByThreshold[k]; !ok {
			diff[k] = -n
		}
	}

	return &Comparison{
		CurrentRunID:  current.RunID,
		PreviousRunID: previous.RunID,
		SpeedupFactor: speedup,
		TimeSavedMs:   prev.DurationMs - cur.DurationMs,
		ItemsDiff:     cur.Items - prev.Items,
		MatchedDiff:   cur.Matched - prev.Matched,
		ThresholdDiff: diff,
	}
}

// String renders the comparison on one line, listing shifted thresholds
// in ascending order with Unmatched last.
func (c *Comparison) String() string {
	if c == nil {
		return "No previous run to compare"
	}

	direction := "faster"
	if c.SpeedupFactor < 1 {
		direction = "slower"
	}
	line := fmt.Sprintf("%.2fx %s than previous run (%+dms), matched %+d",
		c.SpeedupFactor, direction, -c.TimeSavedMs, c.MatchedDiff)

	if len(c.ThresholdDiff) == 0 {
		return line
	}
	keys := make([]string, 0, len(c.ThresholdDiff))
	for k := range c.ThresholdDiff {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == Unmatched || keys[j] == Unmatched {
			return keys[j] == Unmatched && keys[i] != Unmatched
		}
		return keys[i] < keys[j]
	})
	shifts := make([]string, len(keys))
	for i, k := range keys {
		shifts[i] = fmt.Sprintf("%s: %+d", k, c.ThresholdDiff[k])
	}
	return line + " [" + strings.Join(shifts, ", ") + "]"
}
