package main

import (
	"encoding/json"

	"fuzzymatch/internal/config"
	"fuzzymatch/pkg/fuzzy"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type matchFlags struct {
	loc       int
	threshold float64
	distance  float64
	json      bool
}

// register adds the shared matching flags. withThreshold is false for
// commands that search over thresholds themselves.
func (f *matchFlags) register(fs *pflag.FlagSet, withThreshold bool) {
	fs.IntVarP(&f.loc, "loc", "L", config.DefaultLocation(), "Expected location of the pattern (in characters)")
	fs.Float64VarP(&f.distance, "distance", "d", config.DefaultDistance(), "Proximity weight (0 = exact location only)")
	fs.BoolVar(&f.json, "json", false, "Output as JSON")
	if withThreshold {
		fs.Float64VarP(&f.threshold, "threshold", "t", config.DefaultThreshold(), "Score cut-off (0.0 exact .. 1.0 loose)")
	}
}

type matchOutput struct {
	Text    string `json:"text"`
	Pattern string `json:"pattern"`
	Loc     int    `json:"loc"`
	Offset  *int   `json:"offset,omitempty"`
	Found   bool   `json:"found"`
}

type confidenceOutput struct {
	Text       string   `json:"text"`
	Pattern    string   `json:"pattern"`
	Loc        int      `json:"loc"`
	Confidence *float64 `json:"confidence,omitempty"`
	Found      bool     `json:"found"`
}

func newMatchCmd(g *globalFlags) *cobra.Command {
	f := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match <text> <pattern>",
		Short: "Find the best fuzzy match of pattern in text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := g.prepare(cmd, f.json)
			if err != nil {
				return err
			}
			text, pattern := args[0], args[1]
			if err := fuzzy.CheckPattern(pattern); err != nil {
				return err
			}

			matcher := fuzzy.NewMatcher(
				fuzzy.WithThreshold(f.threshold),
				fuzzy.WithDistance(f.distance),
			)
			offset, ok := matcher.Match(text, pattern, f.loc)
			term.Debug("match", "offset", offset, "found", ok, "threshold", f.threshold, "distance", f.distance)

			if f.json {
				out := matchOutput{Text: text, Pattern: pattern, Loc: f.loc, Found: ok}
				if ok {
					out.Offset = &offset
				}
				return writeJSON(cmd, out)
			}
			term.MatchResult(text, pattern, f.loc, offset, ok)
			return nil
		},
	}

	f.register(cmd.Flags(), true)
	return cmd
}

func newConfidenceCmd(g *globalFlags) *cobra.Command {
	f := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "confidence <text> <pattern>",
		Short: "Report the lowest threshold at which pattern matches text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, err := g.prepare(cmd, f.json)
			if err != nil {
				return err
			}
			text, pattern := args[0], args[1]
			if err := fuzzy.CheckPattern(pattern); err != nil {
				return err
			}

			matcher := fuzzy.NewMatcher(fuzzy.WithDistance(f.distance))
			confidence, ok := matcher.Confidence(text, pattern, f.loc)

			if f.json {
				out := confidenceOutput{Text: text, Pattern: pattern, Loc: f.loc, Found: ok}
				if ok {
					out.Confidence = &confidence
				}
				return writeJSON(cmd, out)
			}
			term.ConfidenceResult(pattern, confidence, ok)
			return nil
		},
	}

	f.register(cmd.Flags(), false)
	return cmd
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
