// Package output writes collected results to CSV or JSON files and
// owns the default output-naming rules.
package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Row pairs one root keyword with one collected question.
type Row struct {
	Keyword  string
	Question string
}

// WriteCSV writes keyword/question rows with a header line.
func WriteCSV(rows []Row, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"keyword", "question"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Keyword, row.Question}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

type jsonEntry struct {
	Keyword  string   `json:"keyword"`
	Question []string `json:"question"`
}

// WriteJSON groups questions per keyword. Keywords that were processed
// successfully but yielded nothing still appear, with an empty list,
// so "no data" stays distinguishable from "keyword was skipped".
func WriteJSON(rows []Row, processedKeywords []string, path string) error {
	grouped := make(map[string][]string)
	for _, row := range rows {
		grouped[row.Keyword] = append(grouped[row.Keyword], row.Question)
	}

	entries := make([]jsonEntry, 0, len(processedKeywords))
	for _, keyword := range processedKeywords {
		questions := grouped[keyword]
		if questions == nil {
			questions = []string{}
		}
		entries = append(entries, jsonEntry{Keyword: keyword, Question: questions})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// WriteRecords writes arbitrary tabular data with a header, for the
// locations, sitemap, schema and SERP exports.
func WriteRecords(header []string, records [][]string, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// AppendRecords appends rows to an existing CSV, writing the header
// only when the file is new (top-stories tracking style).
func AppendRecords(header []string, records [][]string, path string) error {
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if isNew {
		if err := writer.Write(header); err != nil {
			return err
		}
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

var (
	nonFilenameChars = regexp.MustCompile(`[^a-z0-9-]`)
	dashRuns         = regexp.MustCompile(`-+`)
)

// SanitizeKeyword turns a keyword into a filesystem-friendly filename
// part: lowercase, spaces to dashes, everything else stripped.
func SanitizeKeyword(keyword string) string {
	sanitized := strings.ToLower(keyword)
	sanitized = strings.ReplaceAll(sanitized, " ", "-")
	sanitized = nonFilenameChars.ReplaceAllString(sanitized, "")
	sanitized = dashRuns.ReplaceAllString(sanitized, "-")
	return strings.Trim(sanitized, "-")
}

// DefaultPath applies the naming rules when no explicit --output was
// given: a keywords file yields <stem>_questions.<ext> next to it, a
// single keyword yields <sanitized>_questions.<ext> in baseDir.
func DefaultPath(keyword, keywordsFile, explicit string, format Format, baseDir string) string {
	if explicit != "" {
		return explicit
	}
	ext := string(format)
	if keywordsFile != "" {
		stem := strings.TrimSuffix(filepath.Base(keywordsFile), filepath.Ext(keywordsFile))
		return filepath.Join(filepath.Dir(keywordsFile), stem+"_questions."+ext)
	}
	if keyword != "" {
		return filepath.Join(baseDir, SanitizeKeyword(keyword)+"_questions."+ext)
	}
	return filepath.Join(baseDir, "output."+ext)
}
