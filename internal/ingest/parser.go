package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Record is one raw parsed row before answer decoding.
type Record struct {
	Question  string
	RawAnswer string
}

// FormatError means a file could not be interpreted by either parsing tier.
type FormatError struct {
	Filename string
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// SchemaError means the file parsed but lacks the required
// question/answer columns.
type SchemaError struct {
	Filename string
	Reason   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// recoveryLine matches a double-quoted question field (with "" as an embedded
// quote) followed by a double-quoted answer field holding a JSON array
// literal. Used by the recovery tier when the CSV reader mis-splits rows.
var recoveryLine = regexp.MustCompile(`^"([^"]*(?:""[^"]*)*)","(\[.*\])"`)

// Parser turns raw quiz file bytes into question/answer records.
//
// Some upstream CSV producers emit answer cells whose embedded JSON arrays
// contain commas and quotes that confuse a delimiter-aware reader. The parser
// first tries a strict CSV read and sniffs the first answer cell for array
// brackets; if that cell does not look like an intact JSON array the strict
// result is distrusted and a line-by-line regexp recovery pass runs instead.
type Parser struct {
	log zerolog.Logger
}

// NewParser creates a Parser.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log.With().Str("component", "parser").Logger()}
}

// Parse extracts records from one uploaded file. Column names are
// case-normalized, so Question/Answer headers are accepted in any casing.
// Rows the recovery tier cannot match are skipped with a warning; a file
// yielding no interpretable rows at all is a FormatError and a file without
// question/answer columns is a SchemaError.
func (p *Parser) Parse(filename string, data []byte) ([]Record, error) {
	header, rows, err := p.parseStrict(data)
	if err != nil {
		p.log.Debug().Str("file", filename).Err(err).Msg("Strict parse rejected, trying recovery")
		header, rows, err = p.parseRecovery(filename, data)
		if err != nil {
			return nil, err
		}
	}

	qIdx, aIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "question":
			qIdx = i
		case "answer":
			aIdx = i
		}
	}
	if qIdx < 0 || aIdx < 0 {
		return nil, &SchemaError{
			Filename: filename,
			Reason:   "must have 'question' and 'answer' columns",
		}
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{Question: row[qIdx], RawAnswer: row[aIdx]}
	}
	return records, nil
}

// parseStrict reads the file as a regular two-column CSV. The error return
// only signals that the strict tier is not trustworthy for this file; the
// caller falls through to recovery, never to the client.
func (p *Parser) parseStrict(data []byte) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	header := all[0]
	if len(header) != 2 {
		return nil, nil, fmt.Errorf("expected 2 columns, got %d", len(header))
	}
	rows := all[1:]

	// Bracket sniff: if the first answer cell is not an intact JSON array
	// literal, the reader almost certainly mis-split a quoted field.
	sample := ""
	if len(rows) > 0 {
		sample = strings.TrimSpace(rows[0][1])
	}
	if !strings.HasPrefix(sample, "[") || !strings.HasSuffix(sample, "]") {
		return nil, nil, fmt.Errorf("answer cell is not a JSON array, data looks corrupted")
	}

	return header, rows, nil
}

// parseRecovery re-splits the raw bytes into lines and matches each data line
// against the quoted-field pattern. Unmatched lines are skipped.
func (p *Parser) parseRecovery(filename string, data []byte) ([]string, [][]string, error) {
	text := strings.TrimSpace(string(data))
	lines := strings.Split(text, "\n")

	header := strings.Split(lines[0], ",")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) != 2 {
		return nil, nil, &FormatError{
			Filename: filename,
			Reason:   fmt.Sprintf("header should have 2 columns, found %d", len(header)),
		}
	}

	var rows [][]string
	for i, line := range lines[1:] {
		m := recoveryLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			p.log.Warn().
				Str("file", filename).
				Int("line", i+1).
				Str("snippet", truncate(line, 100)).
				Msg("Could not parse line, skipping")
			continue
		}
		question := strings.ReplaceAll(m[1], `""`, `"`)
		rows = append(rows, []string{question, m[2]})
	}

	if len(rows) == 0 {
		return nil, nil, &FormatError{Filename: filename, Reason: "no valid data rows found"}
	}
	return header, rows, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
