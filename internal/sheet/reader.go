package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedOverrideFile is returned when a keyword-bid file lacks the
// required "Keyword" and "Bid" columns. A hard error, not a soft validation
// result: the file itself is unusable.
var ErrMalformedOverrideFile = errors.New("keyword bid file must contain 'Keyword' and 'Bid' columns")

// SplitInput normalizes pasted keyword or SKU text: newlines count as
// commas, items are trimmed and blanks dropped.
func SplitInput(text string) []string {
	var items []string
	for _, item := range strings.Split(strings.ReplaceAll(text, "\n", ","), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ReadColumn loads the first column of a CSV file, skipping the header row.
func ReadColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty: %s", path)
	}

	values := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) > 0 {
			values = append(values, record[0])
		}
	}
	return values, nil
}

// ParseKeywordBids reads a two-column keyword-bid table. Rows whose Bid is
// not numeric are dropped; missing either required column fails with
// ErrMalformedOverrideFile.
func ParseKeywordBids(r io.Reader) (map[string]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword bid file: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMalformedOverrideFile
	}

	keywordIdx, bidIdx := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case "Keyword":
			keywordIdx = i
		case "Bid":
			bidIdx = i
		}
	}
	if keywordIdx < 0 || bidIdx < 0 {
		return nil, ErrMalformedOverrideFile
	}

	bids := make(map[string]float64)
	for _, record := range records[1:] {
		if len(record) <= keywordIdx || len(record) <= bidIdx {
			continue
		}
		bid, err := strconv.ParseFloat(strings.TrimSpace(record[bidIdx]), 64)
		if err != nil {
			continue
		}
		bids[record[keywordIdx]] = bid
	}
	return bids, nil
}

// LoadKeywordBids is ParseKeywordBids over a file on disk.
func LoadKeywordBids(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ParseKeywordBids(f)
}

// EnsureDirs creates the working directories for uploads, templates and
// generated sheets.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LoadTemplate returns the content of an input template file such as
// keywords_template.csv, or "" when none exists.
func LoadTemplate(dir, kind string) string {
	data, err := os.ReadFile(filepath.Join(dir, kind+"_template.csv"))
	if err != nil {
		return ""
	}
	return string(data)
}

// SaveTemplate persists a template file so the form can prefill it next
// session.
func SaveTemplate(dir, kind, content string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, kind+"_template.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
