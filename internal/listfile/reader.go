package listfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/statemod/internal/fixedformat"
)

// Table is a list file in memory. Values are kept as text; typed accessors
// parse them on demand.
type Table struct {
	index  map[string]int
	Fields []string
	Rows   [][]string
}

// Read reads the list file at path.
func Read(path string, opts Options) (*Table, error) {
	var t *Table
	err := fixedformat.ReadFile(path, opts.Options, func(r io.Reader) error {
		var err error
		t, err = Parse(r, opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read list file %s: %w", path, err)
	}
	return t, nil
}

// Parse reads a list file from r. Comment and blank lines are dropped before
// the rows are split; the first remaining row holds the field names.
func Parse(r io.Reader, opts Options) (*Table, error) {
	delim := opts.delimiter()
	if utf8.RuneCountInString(delim) != 1 {
		return nil, fmt.Errorf("%w: %q", ErrBadDelimiter, delim)
	}

	var body strings.Builder
	lr := fixedformat.NewLineReader(r, "", opts.Options)
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(strings.NewReader(body.String()))
	cr.Comma, _ = utf8.DecodeRuneInString(delim)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to split list rows: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMissingHeader
	}

	t := &Table{Fields: records[0], Rows: records[1:], index: make(map[string]int, len(records[0]))}
	for i, f := range t.Fields {
		key := strings.ToLower(strings.TrimSpace(f))
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the position of a field; names match case-insensitively.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[strings.ToLower(name)]
	return i, ok
}

// String returns the trimmed value of a field, "" when the field or value is missing.
func (t *Table) String(row int, name string) string {
	i, ok := t.Column(name)
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// Int parses a field as an integer.
func (t *Table) Int(row int, name string) (int, bool) {
	n, err := strconv.Atoi(t.String(row, name))
	return n, err == nil
}

// Float parses a field as a float.
func (t *Table) Float(row int, name string) (float64, bool) {
	f, err := strconv.ParseFloat(t.String(row, name), 64)
	return f, err == nil
}
