// Package corpus loads candidate collections for ranking from word lists,
// Hunspell dictionaries and JSON dictionary files.
package corpus

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format selects how a corpus file is parsed.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatLines    Format = "lines"
	FormatHunspell Format = "hunspell"
	FormatJSON     Format = "json"
)

// ErrUnknownFormat is returned for a Format value Load does not recognise.
var ErrUnknownFormat = errors.New("unknown corpus format")

// LoadResult holds the items read from one or more corpus files.
type LoadResult struct {
	Items           []string
	Sources         []string
	TotalRaw        int
	TotalDuplicates int
}

// Load reads the corpus at path. A directory is walked in lexical order and
// every .txt, .dic and .json file not starting with "_" is read. Items are
// deduplicated, keeping the first occurrence.
func Load(path string, format Format) (*LoadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}

	var files []string
	if info.IsDir() {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || strings.HasPrefix(d.Name(), "_") {
				return nil
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".txt", ".dic", ".json":
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking corpus directory: %w", err)
		}
	} else {
		files = []string{path}
	}

	result := &LoadResult{}
	var raw []string
	for _, file := range files {
		items, err := loadFile(file, format)
		if err != nil {
			return nil, err
		}
		raw = append(raw, items...)
		result.Sources = append(result.Sources, file)
	}

	result.TotalRaw = len(raw)
	result.Items = Dedupe(raw)
	result.TotalDuplicates = result.TotalRaw - len(result.Items)
	return result, nil
}

func loadFile(path string, format Format) ([]string, error) {
	if format == "" || format == FormatAuto {
		format = detectFormat(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var items []string
	switch format {
	case FormatLines:
		items, err = ReadLines(file)
	case FormatHunspell:
		items, err = ReadHunspell(file)
	case FormatJSON:
		var data []byte
		data, err = io.ReadAll(file)
		if err == nil {
			items, err = ParseDictionary(data)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return items, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dic":
		return FormatHunspell
	case ".json":
		return FormatJSON
	default:
		return FormatLines
	}
}

// ReadLines returns one item per non-blank line. Lines starting with '#'
// are comments. Surrounding whitespace is trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ReadHunspell reads a Hunspell .dic file: an optional leading word count,
// then one word per line with optional "/FLAGS" affix suffixes.
func ReadHunspell(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Skip first line if it's a word count
		if lineNum == 1 && isDigits(line) {
			continue
		}

		word := line
		if idx := strings.Index(line, "/"); idx != -1 {
			word = line[:idx]
		}
		if word == "" {
			continue
		}
		items = append(items, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ParseDictionary extracts words from a JSON dictionary. Three shapes are
// accepted under a top-level "words" key: an object keyed by word with a
// "normalized" field, an array of such objects, or an array of strings.
// Object-keyed entries come back sorted.
func ParseDictionary(data []byte) ([]string, error) {
	var dictMap struct {
		Words map[string]struct {
			Normalized string `json:"normalized"`
		} `json:"words"`
	}
	if err := json.Unmarshal(data, &dictMap); err == nil && len(dictMap.Words) > 0 {
		words := make([]string, 0, len(dictMap.Words))
		for key, w := range dictMap.Words {
			if w.Normalized != "" {
				words = append(words, w.Normalized)
			} else {
				words = append(words, key)
			}
		}
		sort.Strings(words)
		return words, nil
	}

	var dictArray struct {
		Words []struct {
			Normalized string `json:"normalized"`
		} `json:"words"`
	}
	if err := json.Unmarshal(data, &dictArray); err == nil && len(dictArray.Words) > 0 {
		words := make([]string, 0, len(dictArray.Words))
		for _, w := range dictArray.Words {
			if w.Normalized != "" {
				words = append(words, w.Normalized)
			}
		}
		return words, nil
	}

	var dictSimple struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal(data, &dictSimple); err != nil {
		return nil, fmt.Errorf("unrecognised dictionary layout: %w", err)
	}
	return dictSimple.Words, nil
}

// Dedupe removes repeated items, keeping the first occurrence.
func Dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			unique = append(unique, item)
		}
	}
	return unique
}
