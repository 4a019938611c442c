package taxreport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Row is a raw input row: field values by column name.
type Row struct {
	Line   int // 1-based line number in the source, 0 if unknown
	fields map[string]string
}

// NewRow returns a Row from a map of column name to raw value.
func NewRow(line int, fields map[string]string) Row { return Row{Line: line, fields: fields} }

// Get returns the raw value of the named column, or "" if absent.
func (r Row) Get(column string) string { return r.fields[column] }

// RowSource is an ordered sequence of raw rows with named fields.
type RowSource interface {
	// Columns returns the column names available in every row.
	Columns() []string
	// Rows iterates over the rows in source order.
	Rows() iter.Seq[Row]
}

// Rows is an in-memory RowSource.
type Rows struct {
	columns []string
	rows    []Row
}

// NewRows returns an in-memory RowSource.
func NewRows(columns []string, rows ...Row) *Rows {
	return &Rows{columns: columns, rows: rows}
}

func (s *Rows) Columns() []string { return s.columns }

func (s *Rows) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range s.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of rows.
func (s *Rows) Len() int { return len(s.rows) }

// ReadCSV reads a semicolon separated broker export.
//
// The header is the first non blank line. Blank lines are skipped, short rows are
// padded with empty values.
func ReadCSV(r io.Reader) (*Rows, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var header []string
	src := &Rows{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		if header == nil {
			header = make([]string, len(record))
			for i, name := range record {
				header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
			}
			continue
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				fields[name] = record[i]
			} else {
				fields[name] = ""
			}
		}
		src.rows = append(src.rows, Row{Line: line, fields: fields})
	}
	if header == nil {
		return nil, fmt.Errorf("cannot read CSV: no header line")
	}
	src.columns = header
	return src, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
