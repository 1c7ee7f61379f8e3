package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fuzzymatch/internal/config"
	"fuzzymatch/pkg/fuzzy"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMatchCommandJSON(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		found  bool
		offset int
	}{
		{"exact", []string{"match", "hello world", "world", "-L", "6", "--json"}, true, 6},
		{"fuzzy", []string{"match", "hello world", "wrld", "-L", "6", "--json"}, true, 6},
		{"strict threshold", []string{"match", "abc", "xyz", "-t", "0", "--json"}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)

			var got matchOutput
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.found, got.Found)
			if tt.found {
				require.NotNil(t, got.Offset)
				assert.InDelta(t, tt.offset, *got.Offset, 1)
			} else {
				assert.Nil(t, got.Offset)
			}
		})
	}
}

func TestMatchCommandQuiet(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"flag", []string{"match", "-q", "hello world", "world"}, `"world" found at 6`},
		{"no match", []string{"match", "-q", "-t", "0", "abc", "xyz"}, `no match for "xyz"`},
		{"confidence", []string{"confidence", "-q", "hello world", "world", "-L", "6"}, "0.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestConfidenceCommandJSON(t *testing.T) {
	out, err := execute(t, "confidence", "hello world", "world", "-L", "6", "--json")
	require.NoError(t, err)

	var got confidenceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.True(t, got.Found)
	assert.Equal(t, 0.0, *got.Confidence)
}

func TestMatchCommandRejectsLongPattern(t *testing.T) {
	_, err := execute(t, "match", "text", strings.Repeat("a", fuzzy.MaxPatternLength+1), "--json")
	assert.ErrorIs(t, err, fuzzy.ErrPatternTooLong)
}

func TestRankCommandJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fruit.txt")
	require.NoError(t, os.WriteFile(input, []byte("# fruit\nbanana\nzzzz\napple\ngrape\napple\n"), 0644))

	for _, workers := range []string{"1", "4"} {
		t.Run("workers="+workers, func(t *testing.T) {
			out, err := execute(t, "rank", "aple", "-i", input, "-w", workers, "--json", "-o", dir)
			require.NoError(t, err)

			var got []fuzzy.Ranked
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			require.Len(t, got, 4)
			assert.Equal(t, "apple", got[0].Text)
			assert.True(t, got[0].Matched)
			assert.Equal(t, "zzzz", got[3].Text)
			assert.False(t, got[3].Matched)
		})
	}
}

func TestRankCommandBenchmark(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(input, []byte("apple\nbanana\n"), 0644))

	out, err := execute(t, "rank", "aple", "-i", input, "--benchmark", "-o", dir, "-w", "2")
	require.NoError(t, err)

	var line benchmarkLine
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.NotEmpty(t, line.RunID)
	assert.Equal(t, int64(2), line.Items)
	assert.Equal(t, 2, line.Workers)
	assert.FileExists(t, filepath.Join(dir, "metrics", "latest.json"))
}

func TestRankCommandErrors(t *testing.T) {
	_, err := execute(t, "rank", "aple", "--json")
	assert.Error(t, err)

	_, err = execute(t, "rank", "aple", "-i", filepath.Join(t.TempDir(), "missing.txt"), "--json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nthreshold = 0.0\n"), 0644))

	// Threshold 0 from the file only admits the exact location.
	out, err := execute(t, "--config", path, "match", "hello world", "world", "-L", "3", "--json")
	require.NoError(t, err)
	var got matchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Found)

	// An explicit flag wins over the file.
	out, err = execute(t, "--config", path, "match", "hello world", "world", "-L", "3", "-t", "0.5", "--json")
	require.NoError(t, err)
	got = matchOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Found)

	_, err = execute(t, "--config", filepath.Join(dir, "missing.toml"), "match", "a", "a", "--json")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnknownCommand(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		contains string
	}{
		{"typo", "rnak", `did you mean "rank"`},
		{"prefix", "conf", `did you mean "confidence"`},
		{"nothing close", "zzzzzzzz", `unknown command "zzzzzzzz"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.arg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSuggest(t *testing.T) {
	names := []string{"match", "confidence", "rank"}

	assert.Equal(t, []string{`"match"`}, suggest("mtch", names))
	assert.Equal(t, []string{`"rank"`}, suggest("RANK", names))
	assert.Empty(t, suggest("qqqqqq", names))
}

func TestConfigQuietKeepsResults(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nquiet = true\n"), 0644))

	out, err := execute(t, "--config", path, "match", "hello world", "world")
	require.NoError(t, err)
	assert.Contains(t, out, `"world" found at 6`)
}
