// Package csv iterates header-mapped CSV records.
//
// Header names are normalized to lower_snake ("Sales Rank" -> "sales_rank"),
// a UTF-8 BOM on the first header cell is stripped, and values are
// whitespace-trimmed. The run is single-threaded, so records are delivered
// through a callback rather than a channel.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Record is one data row addressed by normalized header name.
type Record struct {
	// Line is the 1-based physical line of the row (header included).
	Line int

	cols map[string]int
	vals []string
}

// Get returns the trimmed value for a column, or "" when the column is
// missing or the row is short.
func (r Record) Get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.vals) {
		return ""
	}
	return r.vals[i]
}

// EachRecord reads all rows and invokes fn per data row. A malformed row is
// reported through onErr (when non-nil) and skipped; a non-nil error from fn
// stops the iteration and is returned.
func EachRecord(src io.Reader, fn func(rec Record) error, onErr func(line int, err error)) error {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	line := 0
	read := func() ([]string, error) {
		line++
		return cr.Read()
	}

	hdr, err := read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(hdr))
	for i, h := range hdr {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		h = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		cols[h] = i
	}

	for {
		rec, err := read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if onErr != nil {
				onErr(line, fmt.Errorf("csv read: %w", err))
			}
			continue
		}

		vals := make([]string, len(rec))
		for i, v := range rec {
			vals[i] = strings.TrimSpace(v)
		}

		if err := fn(Record{Line: line, cols: cols, vals: vals}); err != nil {
			return err
		}
	}
}
