// fuzzymatch CLI - bitap fuzzy substring matching and corpus ranking.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"fuzzymatch/internal/config"
	"fuzzymatch/internal/ui"

	search "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	quiet      bool
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "fuzzymatch",
		Short:         "Bitap fuzzy substring matching",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return unknownCommand(cmd, args[0])
		},
	}

	fs := root.PersistentFlags()
	fs.StringVar(&g.configPath, "config", "", "Path to a "+config.FileName+" file")
	fs.BoolVarP(&g.quiet, "quiet", "q", config.DefaultQuiet(), "Suppress progress output")
	fs.BoolVarP(&g.verbose, "verbose", "v", config.DefaultVerbose(), "Verbose logging")

	root.AddCommand(
		newMatchCmd(g),
		newConfidenceCmd(g),
		newRankCmd(g),
	)
	return root
}

// prepare loads an explicit --config file, applies its values to every flag
// the user did not set, and returns the terminal UI.
func (g *globalFlags) prepare(cmd *cobra.Command, silent bool) (*ui.UI, error) {
	if g.configPath != "" {
		cfg, err := config.LoadFrom(g.configPath)
		if err != nil {
			return nil, err
		}
		if err := applyDefaults(cmd.Flags(), cfg); err != nil {
			return nil, err
		}
	}

	term := ui.New(cmd.OutOrStdout(), g.quiet || silent, g.verbose)
	if g.configPath != "" {
		term.Debug("config loaded", "path", g.configPath)
	}
	return term, nil
}

// applyDefaults copies config values onto flags left at their defaults.
// Flags a command does not define are skipped.
func applyDefaults(fs *pflag.FlagSet, cfg *config.ConfigFile) error {
	d := cfg.Defaults
	values := map[string]string{
		"threshold":  fmt.Sprint(d.Threshold),
		"distance":   fmt.Sprint(d.Distance),
		"loc":        fmt.Sprint(d.Location),
		"limit":      fmt.Sprint(d.Limit),
		"format":     d.Format,
		"output-dir": d.OutputDir,
		"parallel":   fmt.Sprint(d.Parallel),
		"workers":    fmt.Sprint(d.Workers),
		"metrics":    fmt.Sprint(d.Metrics),
		"quiet":      fmt.Sprint(d.Quiet),
		"verbose":    fmt.Sprint(d.Verbose),
	}

	for name, value := range values {
		if fs.Lookup(name) == nil || fs.Changed(name) {
			continue
		}
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("invalid config value for %s: %w", name, err)
		}
	}
	return nil
}

// unknownCommand reports name with the closest command names, if any.
func unknownCommand(root *cobra.Command, name string) error {
	var names []string
	for _, c := range root.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}

	suggestions := suggest(name, names)
	if len(suggestions) == 0 {
		return fmt.Errorf("unknown command %q for %q", name, root.CommandPath())
	}
	return fmt.Errorf("unknown command %q for %q, did you mean %s?",
		name, root.CommandPath(), strings.Join(suggestions, " or "))
}

// suggest returns quoted candidates that contain name as a subsequence, or
// failing that, those within two edits of it.
func suggest(name string, candidates []string) []string {
	ranks := search.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		for _, c := range candidates {
			if d := search.LevenshteinDistance(strings.ToLower(name), c); d <= 2 {
				ranks = append(ranks, search.Rank{Source: name, Target: c, Distance: d})
			}
		}
	}
	sort.Sort(ranks)

	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = fmt.Sprintf("%q", r.Target)
	}
	return out
}
