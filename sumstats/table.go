// Package sumstats models GWAS summary-statistic tables with loosely
// specified schemas: loading delimited text, normalizing arbitrary column
// names onto the canonical schema, and deriving missing statistical fields.
package sumstats

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Table is an in-memory, column-labelled grid of string cells: one row per
// variant, one column per source field. Cells hold the original text so
// that passenger columns we never interpret still round-trip to the output.
type Table struct {
	// Label names the table in diagnostics, e.g. "Exposure" or "Outcome".
	Label string
	Path  string
	Cols  []string
	Rows  [][]string

	index map[string]int
}

// NewTable builds a table from a header and rows. Header whitespace is
// trimmed before any comparison happens downstream.
func NewTable(label string, cols []string, rows [][]string) *Table {
	t := &Table{Label: label, Cols: make([]string, len(cols)), Rows: rows}
	for i, c := range cols {
		t.Cols[i] = strings.TrimSpace(c)
	}
	t.reindex()

	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Cols))
	for i, c := range t.Cols {
		t.index[c] = i
	}
}

// NRows returns the number of data rows.
func (t *Table) NRows() int {
	return len(t.Rows)
}

// ColIndex returns the position of the named column.
func (t *Table) ColIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasCol reports whether the named column exists.
func (t *Table) HasCol(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Rename relabels a column in place. Renaming a missing column is a no-op.
func (t *Table) Rename(old, new string) {
	if old == new {
		return
	}
	i, ok := t.index[old]
	if !ok {
		return
	}
	t.Cols[i] = new
	t.reindex()
}

// AddCol appends a column. If a column of that name already exists, its
// cells are replaced instead.
func (t *Table) AddCol(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("AddCol %s: %d values for %d rows", name, len(values), len(t.Rows))
	}

	if i, ok := t.index[name]; ok {
		for j := range t.Rows {
			t.Rows[j][i] = values[j]
		}
		return nil
	}

	t.Cols = append(t.Cols, name)
	for j := range t.Rows {
		t.Rows[j] = append(t.Rows[j], values[j])
	}
	t.reindex()

	return nil
}

// Value returns the cell at row i for the named column, or "" if the
// column does not exist.
func (t *Table) Value(i int, col string) string {
	j, ok := t.index[col]
	if !ok {
		return ""
	}

	return t.Rows[i][j]
}

// Set overwrites the cell at row i for the named column.
func (t *Table) Set(i int, col, value string) {
	if j, ok := t.index[col]; ok {
		t.Rows[i][j] = value
	}
}

// Float parses the cell at row i for the named column. Missing cells,
// missing columns, and unparseable text all come back as NaN so callers can
// treat them uniformly as absent.
func (t *Table) Float(i int, col string) float64 {
	v := t.Value(i, col)
	if IsMissing(v) {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return math.NaN()
	}

	return f
}

// Filter keeps only rows for which keep returns true, preserving order, and
// returns the number of rows removed.
func (t *Table) Filter(keep func(i int) bool) int {
	kept := t.Rows[:0]
	for i := range t.Rows {
		if keep(i) {
			kept = append(kept, t.Rows[i])
		}
	}

	removed := len(t.Rows) - len(kept)
	t.Rows = kept

	return removed
}

// WriteCSV writes the table as comma-delimited text with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Cols); err != nil {
		return pfx.Err(err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteFile writes the table as CSV to the named file.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	return t.WriteCSV(f)
}

// IsMissing reports whether a cell should be treated as absent. These are
// the spellings pandas-produced GWAS files actually contain.
func IsMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "null", "NULL":
		return true
	}

	return false
}

// FormatFloat renders a derived value for storage in a cell. NaN becomes
// the missing marker so downstream completeness filtering drops it.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NA"
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}
