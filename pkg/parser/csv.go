package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseWarning represents a non-fatal issue encountered during CSV parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult contains the parsed records alongside any warnings.
type ParseResult struct {
	Headers  []string            `json:"headers"`
	Records  []map[string]string `json:"records"`
	Warnings []ParseWarning      `json:"warnings"`
	Encoding string              `json:"encoding"`
}

// ErrNoRows is returned when a file has a header row but no data rows.
var ErrNoRows = errors.New("file contains no data rows")

// StreamParse parses CSV bytes into a slice of maps (header -> value per row).
func StreamParse(data []byte) ([]map[string]string, error) {
	result, err := StreamParseWithWarnings(data)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// StreamParseWithWarnings parses CSV bytes and returns both records and any warnings.
// Rows with too few columns are padded, rows with too many are truncated, and rows
// the csv reader rejects are skipped; each case is reported as a warning.
func StreamParseWithWarnings(data []byte) (*ParseResult, error) {
	decoded, enc, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	for i, h := range headers {
		headers[i] = cleanHeader(h)
	}

	headerCount := len(headers)
	var records []map[string]string
	var warnings []ParseWarning
	rowNum := 1 // header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		if isBlank(row) {
			continue
		}

		if len(row) < headerCount {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
			})
			padded := make([]string, headerCount)
			copy(padded, row)
			row = padded
		} else if len(row) > headerCount {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
			})
			row = row[:headerCount]
		}

		record := make(map[string]string, headerCount)
		for i, h := range headers {
			if h == "" {
				continue
			}
			record[h] = strings.TrimSpace(row[i])
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}

	return &ParseResult{
		Headers:  headers,
		Records:  records,
		Warnings: warnings,
		Encoding: enc,
	}, nil
}

// cleanHeader trims whitespace, surrounding quotes and stray BOM characters.
func cleanHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
