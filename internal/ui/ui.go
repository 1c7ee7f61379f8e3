// Package ui provides terminal UI components using pterm.
package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"fuzzymatch/internal/normalizer"
	"fuzzymatch/pkg/fuzzy"
)

// Theme colors for consistent styling
var (
	ColorPrimary   = pterm.FgCyan
	ColorSecondary = pterm.FgLightBlue
	ColorSuccess   = pterm.FgGreen
	ColorWarning   = pterm.FgYellow
	ColorMuted     = pterm.FgGray
)

// UI wraps pterm components for fuzzymatch. Results always go to out;
// banners, sections, spinners and progress bars are skipped when quiet.
type UI struct {
	out     io.Writer
	quiet   bool
	verbose bool
	logger  *pterm.Logger
}

// New creates a new UI instance writing results to out. Quiet also raises
// the log level to errors; verbose lowers it to debug.
func New(out io.Writer, quiet, verbose bool) *UI {
	level := pterm.LogLevelInfo
	switch {
	case quiet:
		level = pterm.LogLevelError
	case verbose:
		level = pterm.LogLevelDebug
	}
	logger := pterm.DefaultLogger.WithLevel(level).WithWriter(os.Stderr)

	return &UI{out: out, quiet: quiet, verbose: verbose, logger: logger}
}

// Banner prints the application banner.
func (u *UI) Banner() {
	if u.quiet {
		return
	}
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("fuzzy", pterm.NewStyle(ColorPrimary)),
		pterm.NewLettersFromStringWithStyle("match", pterm.NewStyle(ColorSecondary)),
	).Render()

	pterm.DefaultCenter.Println(
		ColorMuted.Sprint("Bitap fuzzy substring matching"),
	)
	pterm.Println()
}

// Config prints the ranking configuration summary.
func (u *UI) Config(pattern string, loc int, distance float64, parallel bool, workers int) {
	if u.quiet {
		return
	}
	pterm.DefaultSection.Println("Configuration")

	mode := "sequential"
	if parallel {
		mode = fmt.Sprintf("parallel (%d workers)", workers)
	}

	data := [][]string{
		{"Pattern", pattern},
		{"Location", fmt.Sprintf("%d", loc)},
		{"Distance", fmt.Sprintf("%g", distance)},
		{"Mode", mode},
	}

	pterm.DefaultTable.WithData(data).Render()
	pterm.Println()
}

// Phase prints a phase header.
func (u *UI) Phase(number int, total int, name string) {
	if u.quiet {
		return
	}
	pterm.DefaultSection.WithLevel(2).Println(
		fmt.Sprintf("[%d/%d] %s", number, total, name),
	)
}

// SpinnerWrapper is a spinner that is safe to stop when output is disabled.
type SpinnerWrapper struct {
	spinner *pterm.SpinnerPrinter
}

// Stop stops the spinner.
func (s *SpinnerWrapper) Stop() {
	if s == nil || s.spinner == nil {
		return
	}
	s.spinner.Stop()
}

// Spinner creates a spinner for long operations.
func (u *UI) Spinner(message string) *SpinnerWrapper {
	if u.quiet {
		return &SpinnerWrapper{}
	}
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start(message)
	return &SpinnerWrapper{spinner: spinner}
}

// Progress creates a progress bar. It returns nil in quiet mode.
func (u *UI) Progress(title string, total int) *pterm.ProgressbarPrinter {
	if u.quiet || total <= 0 {
		return nil
	}
	pb, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(true).
		Start()
	return pb
}

// SourceStatus prints status for a corpus source.
func (u *UI) SourceStatus(source string, status string, details string) {
	if u.quiet {
		return
	}
	prefix := ColorPrimary.Sprintf("[%s]", source)
	switch status {
	case "ok":
		pterm.Success.Println(prefix, details)
	case "skip":
		pterm.Warning.Println(prefix, details)
	case "error":
		pterm.Error.Println(prefix, details)
	default:
		pterm.Info.Println(prefix, details)
	}
}

// MatchResult prints the outcome of a single match.
func (u *UI) MatchResult(text, pattern string, loc, offset int, found bool) {
	if !found {
		fmt.Fprint(u.out, pterm.Warning.Sprintfln("no match for %q near %d", pattern, loc))
		return
	}
	fmt.Fprint(u.out, pterm.Success.Sprintfln("%q found at %d", pattern, offset))
	fmt.Fprintln(u.out, highlight(text, pattern, offset))
}

// ConfidenceResult prints the lowest threshold accepting a match.
func (u *UI) ConfidenceResult(pattern string, confidence float64, found bool) {
	if !found {
		fmt.Fprint(u.out, pterm.Warning.Sprintfln("%q never matches", pattern))
		return
	}
	panel := pterm.DefaultBox.WithTitle("Confidence").Sprintf(
		"  Pattern:    %s\n  Threshold:  %s",
		ColorPrimary.Sprint(pattern),
		ColorSuccess.Sprintf("%.3f", confidence),
	)
	fmt.Fprintln(u.out, panel)
}

// Ranked prints ranked items in a table.
func (u *UI) Ranked(results []fuzzy.Ranked) {
	if len(results) == 0 {
		fmt.Fprint(u.out, pterm.Info.Sprintln("no items"))
		return
	}

	data := pterm.TableData{{"#", "Item", "Threshold"}}
	for i, r := range results {
		threshold := ColorMuted.Sprint("-")
		if r.Matched {
			threshold = fmt.Sprintf("%.1f", r.Threshold)
		}
		data = append(data, []string{fmt.Sprintf("%d", i+1), r.Text, threshold})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		u.logger.Error("render ranking", u.logger.Args("err", err))
		return
	}
	fmt.Fprintln(u.out, table)
}

// FinalReport prints the final summary report.
func (u *UI) FinalReport(items int, matched int, duration time.Duration) {
	if u.quiet {
		return
	}
	pterm.DefaultSection.Println("Summary")

	throughput := float64(0)
	if duration > 0 {
		throughput = float64(items) / duration.Seconds()
	}

	panel := pterm.DefaultBox.WithTitle("Results").Sprint(
		fmt.Sprintf(
			"  Items:       %s\n"+
				"  Matched:     %s\n"+
				"  Duration:    %s\n"+
				"  Throughput:  %s items/sec",
			ColorSuccess.Sprint(humanize.Comma(int64(items))),
			ColorPrimary.Sprint(humanize.Comma(int64(matched))),
			ColorWarning.Sprint(duration.Round(time.Millisecond)),
			pterm.FgMagenta.Sprint(humanize.Commaf(math.Round(throughput))),
		),
	)
	pterm.Println(panel)
}

// Success prints a success message.
func (u *UI) Success(message string) {
	if u.quiet {
		return
	}
	pterm.Success.Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	u.logger.Warn(message)
}

// Info prints an info message.
func (u *UI) Info(message string) {
	u.logger.Info(message)
}

// Debug prints a debug message with key/value pairs (only in verbose mode).
func (u *UI) Debug(message string, args ...any) {
	u.logger.Debug(message, u.logger.Args(args...))
}

// Done prints the completion message.
func (u *UI) Done() {
	if u.quiet {
		return
	}
	pterm.Println()
	pterm.DefaultCenter.Println(
		ColorSuccess.Sprint("✓ Done!"),
	)
}

// highlight marks the matched window in text. loc and the window width are
// counted in grapheme clusters.
func highlight(text, pattern string, loc int) string {
	chars := normalizer.Graphemes(text)
	width := normalizer.Length(pattern)
	if loc < 0 || loc > len(chars) {
		return text
	}
	end := loc + width
	if end > len(chars) {
		end = len(chars)
	}
	return strings.Join(chars[:loc], "") +
		ColorSuccess.Sprint(strings.Join(chars[loc:end], "")) +
		strings.Join(chars[end:], "")
}
