// Package table provides the loosely-schematized in-memory table the
// dashboards compute over: ordered columns, rows of string/number/null cells,
// and the reconciliation primitives (column resolution, inner join, melt)
// shared by the election and energy pipelines.
package table

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

type kind uint8

const (
	kindNull kind = iota
	kindString
	kindNumber
)

// Value is a single cell: a string, a number, or null.
type Value struct {
	k   kind
	s   string
	num float64
}

// Null returns the null cell.
func Null() Value { return Value{} }

// String returns a string cell.
func String(s string) Value { return Value{k: kindString, s: s} }

// Number returns a numeric cell.
func Number(f float64) Value { return Value{k: kindNumber, num: f} }

// IsNull reports whether the cell holds no value.
func (v Value) IsNull() bool { return v.k == kindNull }

// Float returns the cell as a float64. Numeric strings parse; null and
// non-numeric strings report false.
func (v Value) Float() (float64, bool) {
	switch v.k {
	case kindNumber:
		return v.num, true
	case kindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text returns the cell's string form. Numbers render without a forced
// decimal point, so a FIPS code read as 6037 round-trips to "6037".
func (v Value) Text() string {
	switch v.k {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindString:
		return v.s
	default:
		return ""
	}
}

// Row is one observation, positionally aligned with the table's columns.
type Row []Value

// Table is an ordered sequence of rows over a dynamic column set. No schema
// is assumed beyond column names being unique.
type Table struct {
	cols  []string
	index map[string]int
	rows  []Row
}

// New creates an empty table with the given column names.
func New(cols ...string) (*Table, error) {
	t := &Table{
		cols:  make([]string, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if _, dup := t.index[c]; dup {
			return nil, eris.Errorf("table: duplicate column %q", c)
		}
		t.index[c] = len(t.cols)
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// Append adds a row. The value count must match the column count.
func (t *Table) Append(vals ...Value) error {
	if len(vals) != len(t.cols) {
		return eris.Errorf("table: row has %d values, want %d", len(vals), len(t.cols))
	}
	row := make(Row, len(vals))
	copy(row, vals)
	t.rows = append(t.rows, row)
	return nil
}

// Value returns the cell at (row, col). Unknown columns read as null.
func (t *Table) Value(row int, col string) Value {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.rows) {
		return Null()
	}
	return t.rows[row][i]
}

// Float returns the cell at (row, col) as a float64.
func (t *Table) Float(row int, col string) (float64, bool) {
	return t.Value(row, col).Float()
}

// Set overwrites the cell at (row, col).
func (t *Table) Set(row int, col string, v Value) error {
	i, ok := t.index[col]
	if !ok {
		return eris.Errorf("table: unknown column %q", col)
	}
	if row < 0 || row >= len(t.rows) {
		return eris.Errorf("table: row %d out of range", row)
	}
	t.rows[row][i] = v
	return nil
}

// AddColumn appends a new column, filling each row from fill.
func (t *Table) AddColumn(name string, fill func(row int) Value) error {
	if t.Has(name) {
		return eris.Errorf("table: column %q already exists", name)
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill(i))
	}
	return nil
}

// Rename changes a column's name in place.
func (t *Table) Rename(old, new string) error {
	i, ok := t.index[old]
	if !ok {
		return eris.Errorf("table: unknown column %q", old)
	}
	if old == new {
		return nil
	}
	if t.Has(new) {
		return eris.Errorf("table: column %q already exists", new)
	}
	delete(t.index, old)
	t.index[new] = i
	t.cols[i] = new
	return nil
}

// DropColumns returns a new table without the named columns. Unknown names
// are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var kept []string
	var keptIdx []int
	for i, c := range t.cols {
		if !drop[c] {
			kept = append(kept, c)
			keptIdx = append(keptIdx, i)
		}
	}
	out, _ := New(kept...)
	for _, row := range t.rows {
		vals := make(Row, len(keptIdx))
		for j, i := range keptIdx {
			vals[j] = row[i]
		}
		out.rows = append(out.rows, vals)
	}
	return out
}

// Clone returns a deep copy. Loaders hand out clones so cached tables are
// never mutated by downstream derivations.
func (t *Table) Clone() *Table {
	out, _ := New(t.cols...)
	out.rows = make([]Row, len(t.rows))
	for i, row := range t.rows {
		r := make(Row, len(row))
		copy(r, row)
		out.rows[i] = r
	}
	return out
}

// Filter returns a new table with only the rows for which keep is true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out, _ := New(t.cols...)
	for i, row := range t.rows {
		if keep(i) {
			r := make(Row, len(row))
			copy(r, row)
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Records renders the table as one map per row for JSON output. Numbers
// stay float64, strings stay strings, nulls become nil.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, len(t.rows))
	for i, row := range t.rows {
		rec := make(map[string]any, len(t.cols))
		for j, c := range t.cols {
			v := row[j]
			switch v.k {
			case kindNumber:
				rec[c] = v.num
			case kindString:
				rec[c] = v.s
			default:
				rec[c] = nil
			}
		}
		out[i] = rec
	}
	return out
}

// MaxAbs returns the maximum absolute value over the column's non-null
// numeric cells. ok is false when the column has no numeric cell.
func (t *Table) MaxAbs(col string) (float64, bool) {
	max := 0.0
	found := false
	for row := range t.rows {
		f, ok := t.Float(row, col)
		if !ok {
			continue
		}
		if a := math.Abs(f); !found || a > max {
			max = a
			found = true
		}
	}
	return max, found
}
